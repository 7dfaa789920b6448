package export_test

import (
	"encoding/csv"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"kurva/internal/export"
	"kurva/internal/model"
)

func testPoints(date time.Time) []*model.CurvePoint {
	forward1 := 0.060023809524
	forward2 := 0.064875240218

	return []*model.CurvePoint{
		{Date: date, TenorYears: 1, ParYield: 0.050, SpotRate: 0.050},
		{Date: date, TenorYears: 2, ParYield: 0.055, SpotRate: 0.055, ForwardRate: &forward1},
		{Date: date, TenorYears: 10, ParYield: 0.068, SpotRate: 0.058, ForwardRate: &forward2},
	}
}

func Test_ExportCSV(t *testing.T) {
	dir := t.TempDir()
	date := time.Date(2026, time.August, 27, 0, 0, 0, 0, time.UTC)

	exporter := export.NewExporter(slog.Default(), dir)
	require.NoError(t, exporter.ExportCSV(date, testPoints(date)))

	f, err := os.Open(filepath.Join(dir, "2026-08-27_yield_curve.csv"))
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)

	require.Equal(t, []string{"tenor_years", "ibpa_yield", "spot_rate", "forward_rate"}, records[0])
	// The shortest tenor has no preceding forward period
	require.Equal(t, []string{"1", "0.05", "0.05", ""}, records[1])
	require.Equal(t, "2", records[2][0])

	forward, err := strconv.ParseFloat(records[2][3], 64)
	require.NoError(t, err)
	require.InDelta(t, 0.060023809524, forward, 1e-15)

	// No temp file should survive a successful export
	matches, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	require.NoError(t, err)
	require.Empty(t, matches)
}

func Test_ExportCSV_FailedWriteLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	date := time.Date(2026, time.August, 27, 0, 0, 0, 0, time.UTC)

	// Given: The temp path is occupied by a directory, so the write fails
	require.NoError(t, os.Mkdir(filepath.Join(dir, "2026-08-27_yield_curve.csv.tmp"), 0o755))

	// When: We export the curve
	exporter := export.NewExporter(slog.Default(), dir)
	err := exporter.ExportCSV(date, testPoints(date))

	// Then: The export fails and no truncated csv is left behind
	require.Error(t, err)
	require.NoFileExists(t, filepath.Join(dir, "2026-08-27_yield_curve.csv"))
}

func Test_ExportJSON(t *testing.T) {
	dir := t.TempDir()
	date := time.Date(2026, time.August, 27, 0, 0, 0, 0, time.UTC)
	scrapedAt := time.Date(2026, time.August, 27, 17, 31, 2, 0, time.UTC)

	exporter := export.NewExporter(slog.Default(), dir)
	require.NoError(t, exporter.ExportJSON(date, scrapedAt, "https://example.test/curve", testPoints(date)))

	data, err := os.ReadFile(filepath.Join(dir, "2026-08-27_yield_curve.json"))
	require.NoError(t, err)

	var doc struct {
		Metadata struct {
			Date            string `json:"date"`
			ScrapeTimestamp string `json:"scrape_timestamp"`
			SourceURL       string `json:"source_url"`
			TenorCount      int    `json:"tenor_count"`
		} `json:"metadata"`
		YieldCurve []struct {
			TenorYears  float64  `json:"tenor_years"`
			ParYield    float64  `json:"ibpa_yield"`
			SpotRate    float64  `json:"spot_rate"`
			ForwardRate *float64 `json:"forward_rate"`
		} `json:"yield_curve"`
		KeyMetrics map[string]string `json:"key_metrics"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))

	require.Equal(t, "2026-08-27", doc.Metadata.Date)
	require.Equal(t, "https://example.test/curve", doc.Metadata.SourceURL)
	require.Equal(t, 3, doc.Metadata.TenorCount)

	require.Len(t, doc.YieldCurve, 3)
	require.Nil(t, doc.YieldCurve[0].ForwardRate)
	require.NotNil(t, doc.YieldCurve[1].ForwardRate)

	require.Equal(t, "0.0680", doc.KeyMetrics["current_10y_yield"])
	require.Equal(t, "0.0180", doc.KeyMetrics["yield_range"])
	// 0.068 - 0.055 = 130bp between the 10Y and the first tenor >= 2Y
	require.Equal(t, "130bp", doc.KeyMetrics["steepness_10y_2y"])
}
