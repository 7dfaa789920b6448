package phei

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"kurva/internal/curve"
)

// dateContainerID is the DNN container holding the benchmark date.
const dateContainerID = "#dnn_ctr1477_GovernmentBondBenchmark_idIGSYC_tdTgl"

// benchmarkTables is how many government-benchmark tables the page
// carries before the underlying bond tables start.
const benchmarkTables = 2

var indonesianMonths = map[string]time.Month{
	"Januari":   time.January,
	"Februari":  time.February,
	"Maret":     time.March,
	"April":     time.April,
	"Mei":       time.May,
	"Juni":      time.June,
	"Juli":      time.July,
	"Agustus":   time.August,
	"September": time.September,
	"Oktober":   time.October,
	"November":  time.November,
	"Desember":  time.December,
}

// ParseSnapshot extracts the publication date and the raw rows of the
// first two benchmark tables from the PHEI page. Rows are kept as text;
// coercion and validation belong to curve.Normalize. A missing or
// unparsable date leaves Snapshot.Date zero rather than failing.
func ParseSnapshot(html string) (*Snapshot, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	snapshot := &Snapshot{}

	if date, err := parsePublicationDate(doc.Find(dateContainerID).Text()); err == nil {
		snapshot.Date = date
	}

	tables := 0
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		tenorCol, yieldCol, ok := benchmarkColumns(table)
		if !ok {
			return true
		}

		table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
			tds := tr.Find("td")
			if tds.Length() <= tenorCol || tds.Length() <= yieldCol {
				return
			}

			snapshot.Rows = append(snapshot.Rows, curve.RawRow{
				Tenor: strings.TrimSpace(tds.Eq(tenorCol).Text()),
				Yield: strings.TrimSpace(tds.Eq(yieldCol).Text()),
			})
		})

		tables++
		return tables < benchmarkTables
	})

	if tables < benchmarkTables {
		return nil, fmt.Errorf("found %d benchmark tables, want %d", tables, benchmarkTables)
	}

	return snapshot, nil
}

// benchmarkColumns locates the "Tenor Year" and "Today" columns in a
// table header. Tables without both columns are not benchmark tables.
func benchmarkColumns(table *goquery.Selection) (tenorCol, yieldCol int, ok bool) {
	tenorCol, yieldCol = -1, -1

	table.Find("thead tr").First().Find("th,td").Each(func(i int, cell *goquery.Selection) {
		switch strings.TrimSpace(cell.Text()) {
		case "Tenor Year":
			tenorCol = i
		case "Today":
			yieldCol = i
		}
	})

	return tenorCol, yieldCol, tenorCol >= 0 && yieldCol >= 0
}

// parsePublicationDate parses a date like "27-Agustus-2026" or
// "7-Mei-2026"; the day is published without a leading zero early in
// the month.
func parsePublicationDate(text string) (time.Time, error) {
	fields := strings.Fields(strings.TrimSpace(text))
	if len(fields) == 0 {
		return time.Time{}, fmt.Errorf("empty date container")
	}

	parts := strings.Split(fields[len(fields)-1], "-")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("unexpected date format: %q", fields[len(fields)-1])
	}

	month, ok := indonesianMonths[parts[1]]
	if !ok {
		return time.Time{}, fmt.Errorf("unknown month: %q", parts[1])
	}

	var day, year int
	if _, err := fmt.Sscanf(parts[0], "%d", &day); err != nil {
		return time.Time{}, fmt.Errorf("parse day: %w", err)
	}
	if _, err := fmt.Sscanf(parts[2], "%d", &year); err != nil {
		return time.Time{}, fmt.Errorf("parse year: %w", err)
	}

	if day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("day out of range: %d", day)
	}

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), nil
}
