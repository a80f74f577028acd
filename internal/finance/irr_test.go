package finance

import (
	"errors"
	"math"
	"testing"
)

func TestIRR_TwoPeriods(t *testing.T) {
	// -100 + 60/(1+r) + 60/(1+r)^2 = 0 at r = 2/(sqrt(69)/3 - 1) - 1
	want := 2/(math.Sqrt(69)/3-1) - 1
	got := IRR([]float64{-100, 60, 60}, 100)
	assertClose(t, "IRR", got, want, 1e-8)
	assertClose(t, "IRR", got, 0.1307, 1e-4)
	assertClose(t, "NPV at IRR", NPV([]float64{-100, 60, 60}, got), 0, 1e-6)
}

func TestIRR_KnownRates(t *testing.T) {
	tests := []struct {
		name      string
		cashflows []float64
		want      float64
	}{
		{"ten percent bond", []float64{-1000, 100, 100, 1100}, 0.10},
		{"double in a year", []float64{-100, 200}, 1.0 - 1e-9},
		{"break even", []float64{-100, 50, 50}, 0},
		{"lose half", []float64{-100, 50}, -0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertClose(t, "IRR", IRR(tt.cashflows, 200), tt.want, 1e-6)
		})
	}
}

func TestIRR_DefaultIterations(t *testing.T) {
	cfs := []float64{-100, 60, 60}
	if a, b := IRR(cfs, 0), IRR(cfs, DefaultIRRIterations); a != b {
		t.Errorf("IRR(_, 0) = %v, want %v", a, b)
	}
}

func TestIRR_FewIterationsReturnsMidpoint(t *testing.T) {
	// one step: midpoint 0.005 has positive NPV, so the bracket becomes
	// [0.005, 1] and its midpoint is returned
	got := IRR([]float64{-100, 60, 60}, 1)
	assertClose(t, "IRR", got, (0.005+1)/2, 1e-12)
}

func TestIRR_UnbracketedDriftsToBoundary(t *testing.T) {
	got := IRR([]float64{100, 10}, 100)
	if got < 0.999 {
		t.Errorf("IRR = %v, want the upper boundary", got)
	}
}

func TestSolveIRR(t *testing.T) {
	got, err := SolveIRR([]float64{-100, 60, 60}, DefaultIRRIterations)
	if err != nil {
		t.Fatalf("SolveIRR: %v", err)
	}
	assertClose(t, "IRR", got, 0.1307, 1e-4)

	// borrowing: the same root, signs reversed
	got, err = SolveIRR([]float64{100, -60, -60}, DefaultIRRIterations)
	if err != nil {
		t.Fatalf("SolveIRR: %v", err)
	}
	assertClose(t, "IRR", got, 0.1307, 1e-4)

	if _, err := SolveIRR([]float64{100, 10}, 100); !errors.Is(err, ErrIRRNotBracketed) {
		t.Errorf("SolveIRR(all positive) error = %v, want ErrIRRNotBracketed", err)
	}
	if _, err := SolveIRR([]float64{-100, 500}, 100); !errors.Is(err, ErrIRRNotBracketed) {
		t.Errorf("SolveIRR(root above 100%%) error = %v, want ErrIRRNotBracketed", err)
	}
	if _, err := SolveIRR(nil, 100); !errors.Is(err, ErrNoCashflows) {
		t.Errorf("SolveIRR(nil) error = %v, want ErrNoCashflows", err)
	}
}

func TestEquityMultiple(t *testing.T) {
	if got := EquityMultiple(100, []float64{10, 10, 10}, 90); got != 1.2 {
		t.Errorf("EquityMultiple = %v, want 1.2", got)
	}
	if got := EquityMultiple(0, []float64{10}, 90); got != 0 {
		t.Errorf("EquityMultiple(0, ...) = %v, want 0", got)
	}
	if got := EquityMultiple(-5, []float64{10}, 90); got != 0 {
		t.Errorf("EquityMultiple(-5, ...) = %v, want 0", got)
	}
	if got := EquityMultiple(50, nil, 0); got != 0 {
		t.Errorf("EquityMultiple(50, nil, 0) = %v, want 0", got)
	}
}
