package curve

import (
	"math"
)

// SpotCurve holds one zero-coupon spot rate per curve tenor.
type SpotCurve []float64

// ForwardCurve holds the annualized forward rate between each pair of
// adjacent tenors; one element shorter than the spot curve it came from.
type ForwardCurve []float64

// BootstrapSpotRates strips the par-yield curve into spot rates, one
// tenor at a time in increasing order. The first two points are taken as
// already-spot quotes from the short end; every later point is solved
// against the previously solved discount factors:
//
//	couponPV = sum_j y[i] / (1+spot[j])^tenor[j]   for j < i
//	spot[i]  = ((1+y[i]) / (1-couponPV))^(1/tenor[i]) - 1
//
// A non-positive denominator means the coupon leg alone already exceeds
// par, which a scraped pathological row can produce; the point falls back
// to its par yield instead of failing the run. Implausible (for example
// negative) spot rates are returned as computed.
func BootstrapSpotRates(c ParCurve) SpotCurve {
	spot := make(SpotCurve, len(c))
	for i, p := range c {
		spot[i] = p.ParYield
	}

	for i := 2; i < len(c); i++ {
		couponPV := 0.0
		for j := 0; j < i; j++ {
			couponPV += c[i].ParYield / math.Pow(1+spot[j], c[j].TenorYears)
		}

		denominator := 1 - couponPV
		if denominator <= 0 {
			// Keep the par yield and let review catch it.
			continue
		}

		spot[i] = math.Pow((1+c[i].ParYield)/denominator, 1/c[i].TenorYears) - 1
	}

	return spot
}

// ForwardRates derives the annualized forward rate for every adjacent
// tenor pair from compounded spot discount factors. A non-increasing
// tenor pair or a non-positive base emits 0 for that slot; a zero
// forward is therefore either genuine or a substituted degenerate and
// only out-of-band review tells them apart.
func ForwardRates(spot SpotCurve, tenors []float64) ForwardCurve {
	if len(spot) < 2 {
		return ForwardCurve{}
	}

	forwards := make(ForwardCurve, 0, len(spot)-1)
	for i := 1; i < len(spot); i++ {
		t1, t2 := tenors[i-1], tenors[i]
		s1, s2 := spot[i-1], spot[i]

		if t2 <= t1 || 1+s1 <= 0 {
			forwards = append(forwards, 0)
			continue
		}

		growth := math.Pow(1+s2, t2) / math.Pow(1+s1, t1)
		forwards = append(forwards, math.Pow(growth, 1/(t2-t1))-1)
	}

	return forwards
}
