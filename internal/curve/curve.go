// Package curve normalizes the raw PHEI benchmark yield table and
// bootstraps zero-coupon spot rates and forward rates from it.
package curve

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Scaling of the published table: tenors are encoded x10 (120 means 12.0
// years), yields x1e6 (65000 means 0.065).
const (
	TenorScale = 10
	YieldScale = 1e6
)

// Defaults for the validation band and the minimum usable curve size.
const (
	DefaultMinYield  = 0.0001
	DefaultMaxYield  = 0.5
	DefaultMinTenors = 3
)

// RawRow is one row of the scraped table before any coercion. Both cells
// are kept as text because the extractor makes no promise about them.
type RawRow struct {
	Tenor string // ex: "10"
	Yield string // ex: "59831"
}

// Point is one normalized observation of the par-yield curve.
type Point struct {
	TenorYears float64 // ex: 1.0
	ParYield   float64 // decimal fraction, ex: 0.0598
}

// ParCurve is an ordered par-yield curve: strictly increasing unique
// tenors. It is built once by Normalize and never mutated afterwards.
type ParCurve []Point

// Tenors returns the tenor column of the curve.
func (c ParCurve) Tenors() []float64 {
	tenors := make([]float64, len(c))
	for i, p := range c {
		tenors[i] = p.TenorYears
	}
	return tenors
}

// Yields returns the par-yield column of the curve.
func (c ParCurve) Yields() []float64 {
	yields := make([]float64, len(c))
	for i, p := range c {
		yields[i] = p.ParYield
	}
	return yields
}

// CurveTooShortError is returned when too few rows survive normalization
// for the bootstrap to produce a usable curve.
type CurveTooShortError struct {
	Got int
	Min int
}

func (e *CurveTooShortError) Error() string {
	return fmt.Sprintf("curve too short: %d tenors, need at least %d", e.Got, e.Min)
}

// Options bound the validation band applied during normalization.
type Options struct {
	MinYield  float64
	MaxYield  float64
	MinTenors int
}

// DefaultOptions returns the validation band used for the PHEI table.
func DefaultOptions() Options {
	return Options{MinYield: DefaultMinYield, MaxYield: DefaultMaxYield, MinTenors: DefaultMinTenors}
}

// Normalize cleans the raw tenor/yield rows into a ParCurve.
//
// Rows that fail numeric coercion or fall outside the validation band are
// dropped silently; the table is scraped and headers or footnotes leak
// into it. Duplicate tenors keep the first occurrence, so with the two
// benchmark tables concatenated in page order the first table wins. The
// only error is CurveTooShortError when fewer than opts.MinTenors rows
// survive.
func Normalize(rows []RawRow, opts Options) (ParCurve, error) {
	seen := make(map[float64]struct{}, len(rows))
	c := make(ParCurve, 0, len(rows))

	for _, row := range rows {
		tenor, err := strconv.ParseFloat(cleanNumber(row.Tenor), 64)
		if err != nil {
			continue
		}
		yield, err := strconv.ParseFloat(cleanNumber(row.Yield), 64)
		if err != nil {
			continue
		}

		tenor /= TenorScale
		yield /= YieldScale

		if tenor <= 0 || yield < opts.MinYield || yield > opts.MaxYield {
			continue
		}

		if _, ok := seen[tenor]; ok {
			continue
		}
		seen[tenor] = struct{}{}

		c = append(c, Point{TenorYears: tenor, ParYield: yield})
	}

	sort.SliceStable(c, func(i, j int) bool {
		return c[i].TenorYears < c[j].TenorYears
	})

	if len(c) < opts.MinTenors {
		return nil, &CurveTooShortError{Got: len(c), Min: opts.MinTenors}
	}

	return c, nil
}

func cleanNumber(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	return s
}
