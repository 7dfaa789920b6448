package phei

import (
	"time"

	"kurva/internal/curve"
)

// Snapshot is one scraped publication of the government-bond benchmark
// page: the publication date and the raw tenor/yield rows of the two
// benchmark tables, concatenated in page order.
type Snapshot struct {
	// Date is the publication date; zero when the page carried no
	// parsable date.
	Date time.Time
	// Rows are the raw table cells, ex: {Tenor: "10", Yield: "59831"}.
	Rows []curve.RawRow
}
