// Package export writes the per-tenor rate table to date-keyed CSV and
// JSON files for downstream consumers.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"kurva/internal/model"
)

const fileDateLayout = "2006-01-02"

type Exporter struct {
	logger    *slog.Logger
	outputDir string
}

func NewExporter(logger *slog.Logger, outputDir string) *Exporter {
	return &Exporter{
		logger:    logger.With("component", "export"),
		outputDir: outputDir,
	}
}

// row mirrors one curve point in the JSON export.
type row struct {
	TenorYears  float64  `json:"tenor_years"`
	ParYield    float64  `json:"ibpa_yield"`
	SpotRate    float64  `json:"spot_rate"`
	ForwardRate *float64 `json:"forward_rate"` // null on the shortest tenor
}

type metadata struct {
	Date            string `json:"date"`
	ScrapeTimestamp string `json:"scrape_timestamp"`
	SourceURL       string `json:"source_url"`
	TenorCount      int    `json:"tenor_count"`
}

type document struct {
	Metadata   metadata          `json:"metadata"`
	YieldCurve []row             `json:"yield_curve"`
	KeyMetrics map[string]string `json:"key_metrics"`
}

// ExportCSV writes <date>_yield_curve.csv with one line per tenor in
// ascending order; the forward cell of the first tenor stays empty.
func (that *Exporter) ExportCSV(date time.Time, points []*model.CurvePoint) error {
	if err := os.MkdirAll(that.outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(that.outputDir, date.Format(fileDateLayout)+"_yield_curve.csv")

	// Write to a temp file and rename, so a failed run never leaves a
	// truncated export behind.
	tmp := path + ".tmp"
	if err := that.writeCSV(tmp, points); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename csv file: %w", err)
	}

	that.logger.Info("exported csv", "path", path, "rows", len(points))
	return nil
}

func (that *Exporter) writeCSV(path string, points []*model.CurvePoint) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err = w.Write([]string{"tenor_years", "ibpa_yield", "spot_rate", "forward_rate"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, p := range points {
		forward := ""
		if p.ForwardRate != nil {
			forward = strconv.FormatFloat(*p.ForwardRate, 'f', -1, 64)
		}

		record := []string{
			strconv.FormatFloat(p.TenorYears, 'f', -1, 64),
			strconv.FormatFloat(p.ParYield, 'f', -1, 64),
			strconv.FormatFloat(p.SpotRate, 'f', -1, 64),
			forward,
		}
		if err = w.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}

	w.Flush()
	if err = w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	return nil
}

// ExportJSON writes <date>_yield_curve.json with the curve, a metadata
// block and a few headline metrics.
func (that *Exporter) ExportJSON(date time.Time, scrapedAt time.Time, sourceURL string, points []*model.CurvePoint) error {
	if err := os.MkdirAll(that.outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	doc := document{
		Metadata: metadata{
			Date:            date.Format(fileDateLayout),
			ScrapeTimestamp: scrapedAt.Format(time.RFC3339),
			SourceURL:       sourceURL,
			TenorCount:      len(points),
		},
		YieldCurve: make([]row, 0, len(points)),
		KeyMetrics: keyMetrics(points),
	}

	for _, p := range points {
		doc.YieldCurve = append(doc.YieldCurve, row{
			TenorYears:  p.TenorYears,
			ParYield:    p.ParYield,
			SpotRate:    p.SpotRate,
			ForwardRate: p.ForwardRate,
		})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	path := filepath.Join(that.outputDir, date.Format(fileDateLayout)+"_yield_curve.json")
	if err = os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}

	that.logger.Info("exported json", "path", path, "rows", len(points))
	return nil
}

func keyMetrics(points []*model.CurvePoint) map[string]string {
	metrics := map[string]string{}
	if len(points) == 0 {
		return metrics
	}

	var spotSum, forwardSum float64
	var forwardCount int
	minYield, maxYield := points[0].ParYield, points[0].ParYield

	for _, p := range points {
		spotSum += p.SpotRate
		if p.ForwardRate != nil {
			forwardSum += *p.ForwardRate
			forwardCount++
		}
		if p.ParYield < minYield {
			minYield = p.ParYield
		}
		if p.ParYield > maxYield {
			maxYield = p.ParYield
		}
	}

	metrics["average_spot_rate"] = fmt.Sprintf("%.4f", spotSum/float64(len(points)))
	metrics["yield_range"] = fmt.Sprintf("%.4f", maxYield-minYield)
	if forwardCount > 0 {
		metrics["average_forward_rate"] = fmt.Sprintf("%.4f", forwardSum/float64(forwardCount))
	}

	if y10 := yieldAtOrAbove(points, 10); y10 != nil {
		metrics["current_10y_yield"] = fmt.Sprintf("%.4f", *y10)

		if y2 := yieldAtOrAbove(points, 2); y2 != nil {
			metrics["steepness_10y_2y"] = fmt.Sprintf("%.0fbp", (*y10-*y2)*10000)
		}
	}

	return metrics
}

// yieldAtOrAbove returns the par yield of the first tenor at or beyond
// the given number of years.
func yieldAtOrAbove(points []*model.CurvePoint, years float64) *float64 {
	for _, p := range points {
		if p.TenorYears >= years {
			return &p.ParYield
		}
	}
	return nil
}
