package rappen

import (
	"math"
	"slices"

	"github.com/sfehr/rappen/date"
)

// CashPoint is a dated signed cash flow (or terminal value) used by the
// return solvers. By money-weighted convention capital invested is negative,
// capital returned to the investor positive.
type CashPoint struct {
	On    date.Date
	Value float64
}

// Root-finder budget for XIRR. There is no wall-clock timeout; the iteration
// cap is the only bound.
const (
	xirrMaxIterations = 200
	xirrMinRate       = -0.999
	xirrMaxRate       = 10.0
	xirrTolerance     = 1e-9
)

// XIRR solves the money-weighted annualized internal rate of return from
// irregular dated cash flows: the rate r such that the net present value
// sum(cf_i / (1+r)^(days_i/365)) is zero.
//
// It reports false, never an error, when the result is undetermined: fewer
// than two flows, all flows on a single day, all flows of one sign, or no
// convergence within the iteration budget. The caller renders "insufficient data" in that case.
func XIRR(flows []CashPoint) (float64, bool) {
	if len(flows) < 2 {
		return 0, false
	}
	flows = slices.Clone(flows)
	slices.SortStableFunc(flows, func(a, b CashPoint) int { return a.On.Compare(b.On) })

	t0 := flows[0].On
	if flows[len(flows)-1].On == t0 {
		// All flows on one day: NPV is constant in the rate, no annualized
		// return is defined.
		return 0, false
	}
	npv := func(rate float64) float64 {
		var sum float64
		for _, f := range flows {
			years := float64(f.On.Sub(t0)) / 365.0
			sum += f.Value / math.Pow(1+rate, years)
		}
		return sum
	}

	lo, hi := xirrMinRate, xirrMaxRate
	flo, fhi := npv(lo), npv(hi)
	if math.IsNaN(flo) || math.IsNaN(fhi) || flo*fhi > 0 {
		// No sign change in the domain: the root is undetermined.
		return 0, false
	}
	for i := 0; i < xirrMaxIterations; i++ {
		mid := (lo + hi) / 2
		fmid := npv(mid)
		if math.Abs(fmid) < xirrTolerance || (hi-lo)/2 < xirrTolerance {
			return mid, true
		}
		if flo*fmid < 0 {
			hi = mid
		} else {
			lo, flo = mid, fmid
		}
	}
	return 0, false
}

// TWR computes the time-weighted return over a value history and a list of
// external flows (capital added positive). Time is partitioned into
// sub-periods at each flow date; each sub-period return is
//
//	(endValue - flowAtBoundary) / startValue - 1
//
// where endValue is the valuation at the boundary, flow included. The overall
// return chains the sub-period growth factors. Sub-periods with a zero or
// unknown start value contribute a 0% return rather than aborting the whole
// calculation. It reports false only when the value history is empty.
func TWR(values *date.History[float64], flows []CashPoint) (float64, bool) {
	if values == nil || values.Len() == 0 {
		return 0, false
	}
	start, _ := values.First()
	end, _ := values.Latest()

	// Boundaries: the span ends plus every flow date strictly inside the span.
	boundaries := []date.Date{start}
	flowAt := make(map[date.Date]float64, len(flows))
	for _, f := range flows {
		if f.On.After(start) && !f.On.After(end) {
			if _, seen := flowAt[f.On]; !seen {
				boundaries = append(boundaries, f.On)
			}
			flowAt[f.On] += f.Value
		}
	}
	if boundaries[len(boundaries)-1] != end {
		boundaries = append(boundaries, end)
	}
	slices.SortFunc(boundaries, date.Date.Compare)
	boundaries = slices.Compact(boundaries)

	growth := 1.0
	for i := 1; i < len(boundaries); i++ {
		startVal, okStart := values.ValueAsOf(boundaries[i-1])
		endVal, okEnd := values.ValueAsOf(boundaries[i])
		if !okStart || !okEnd || startVal == 0 {
			continue // unmeasurable sub-period, treated as 0%
		}
		growth *= (endVal - flowAt[boundaries[i]]) / startVal
	}
	return growth - 1, true
}
