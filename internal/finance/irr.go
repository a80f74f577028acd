package finance

import (
	"errors"
	"fmt"
	"math"
)

// Bisection bracket and stopping rule of the IRR solver.
const (
	irrLow       = -0.99
	irrHigh      = 1.0
	irrTolerance = 1e-7

	DefaultIRRIterations = 100
)

var (
	ErrNoCashflows     = errors.New("no cash flows")
	ErrIRRNotBracketed = errors.New("irr is not bracketed by [-99%, 100%]")
)

// NPV discounts cashflows[i] by (1+rate)^i and sums them.
func NPV(cashflows []float64, rate float64) float64 {
	var sum float64
	for i, cf := range cashflows {
		sum += cf / math.Pow(1+rate, float64(i))
	}
	return sum
}

// IRR finds the rate where NPV is zero by bisection over [-0.99, 1.00].
// cashflows[0] is the initial outlay. It returns as soon as |NPV| drops
// below 1e-7, otherwise the midpoint of the bracket after maxIterations
// halvings. It assumes NPV changes sign over the bracket and gives a
// meaningless answer when it does not; see SolveIRR.
func IRR(cashflows []float64, maxIterations int) float64 {
	if maxIterations < 1 {
		maxIterations = DefaultIRRIterations
	}
	low, high := irrLow, irrHigh
	for i := 0; i < maxIterations; i++ {
		mid := (low + high) / 2
		v := NPV(cashflows, mid)
		if math.Abs(v) < irrTolerance {
			return mid
		}
		// positive NPV: the discount rate is still too low
		if v > 0 {
			low = mid
		} else {
			high = mid
		}
	}
	return (low + high) / 2
}

// SolveIRR is IRR with the bracket checked first. It fails with
// ErrIRRNotBracketed when NPV has the same sign at both ends of the
// bracket, where IRR would drift to a boundary.
func SolveIRR(cashflows []float64, maxIterations int) (float64, error) {
	if len(cashflows) == 0 {
		return 0, ErrNoCashflows
	}
	lo, hi := NPV(cashflows, irrLow), NPV(cashflows, irrHigh)
	switch {
	case lo > 0 && hi < 0:
		return IRR(cashflows, maxIterations), nil
	case lo < 0 && hi > 0:
		// An inflow first (a loan rather than an investment): the root
		// is the same for the negated series, which decreases.
		neg := make([]float64, len(cashflows))
		for i, cf := range cashflows {
			neg[i] = -cf
		}
		return IRR(neg, maxIterations), nil
	case math.Abs(hi) < irrTolerance && math.Abs(lo) >= irrTolerance:
		return irrHigh, nil
	case math.Abs(lo) < irrTolerance && math.Abs(hi) >= irrTolerance:
		return irrLow, nil
	}
	return 0, fmt.Errorf("%w: npv(%.2f)=%g, npv(%.2f)=%g", ErrIRRNotBracketed, irrLow, lo, irrHigh, hi)
}

// EquityMultiple is the cash returned over the cash invested: period
// flows plus terminal proceeds, divided by the initial equity. It is 0
// when no equity was invested.
func EquityMultiple(initialEquity float64, periodCashflows []float64, terminalProceeds float64) float64 {
	if initialEquity <= 0 {
		return 0
	}
	total := terminalProceeds
	for _, cf := range periodCashflows {
		total += cf
	}
	return total / initialEquity
}
