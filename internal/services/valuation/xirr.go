// Package valuation attaches prices to open lots and computes
// money-weighted returns.
package valuation

import (
	"math"
	"sort"
	"time"
)

// CashflowPoint is a single signed cashflow for XIRR calculation.
// Negative values = money out (buys), positive values = money in
// (sells, current value).
type CashflowPoint struct {
	Amount float64
	Date   time.Time
}

const (
	xirrLowerBound = -0.9999
	xirrUpperBound = 100.0
	xirrMaxIter    = 100
	xirrTolerance  = 1e-6
	daysPerYear    = 365.0
)

// Solve computes the annualised internal rate of return for an
// irregular cashflow series by bisection on net present value, and
// returns it as a percentage. It returns nil when the return is
// unavailable: fewer than two usable flows, non-finite amounts, zero
// dates, or no sign change of NPV inside [-0.9999, 100]. Callers must
// treat nil as "unavailable", never as zero.
//
// Bisection assumes NPV is monotonically decreasing in rate, which
// holds for conventional outflow-then-inflow series; interleaved
// contributions and withdrawals with multiple sign changes are not
// guaranteed to converge to the economically correct root.
//
// Solve is pure and stateless; it is safe to call concurrently on
// independent cashflow sets.
func Solve(flows []CashflowPoint) *float64 {
	usable := make([]CashflowPoint, 0, len(flows))
	for _, f := range flows {
		if math.IsNaN(f.Amount) || math.IsInf(f.Amount, 0) || f.Date.IsZero() {
			return nil
		}
		if f.Amount == 0 {
			continue
		}
		usable = append(usable, f)
	}
	if len(usable) < 2 {
		return nil
	}

	sort.SliceStable(usable, func(i, j int) bool {
		return usable[i].Date.Before(usable[j].Date)
	})

	base := usable[0].Date
	years := make([]float64, len(usable))
	for i, f := range usable {
		years[i] = f.Date.Sub(base).Hours() / 24 / daysPerYear
	}

	npvAt := func(rate float64) float64 {
		sum := 0.0
		for i, f := range usable {
			sum += f.Amount / math.Pow(1+rate, years[i])
		}
		return sum
	}

	lo, hi := xirrLowerBound, xirrUpperBound
	npvLo := npvAt(lo)
	npvHi := npvAt(hi)
	if math.IsNaN(npvLo) || math.IsNaN(npvHi) || npvLo*npvHi > 0 {
		// Root not bracketed within bounds.
		return nil
	}

	mid := 0.0
	for iter := 0; iter < xirrMaxIter; iter++ {
		mid = (lo + hi) / 2
		npvMid := npvAt(mid)
		if math.IsNaN(npvMid) {
			return nil
		}
		if math.Abs(npvMid) < xirrTolerance {
			break
		}
		if npvMid > 0 {
			lo = mid
		} else {
			hi = mid
		}
	}

	pct := mid * 100
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return nil
	}
	return &pct
}
