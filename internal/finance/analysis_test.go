package finance

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestAnalyze_WorkedExample(t *testing.T) {
	in := fabriken()
	a := Analyze(in, 10)

	if a.Years != 10 || len(a.Forecast) != 10 {
		t.Fatalf("Years=%d len(Forecast)=%d, want 10", a.Years, len(a.Forecast))
	}
	if len(a.Cashflows) != 11 {
		t.Fatalf("len(Cashflows) = %d, want 11", len(a.Cashflows))
	}
	if a.Cashflows[0] != -in.Equity {
		t.Errorf("Cashflows[0] = %v, want %v", a.Cashflows[0], -in.Equity)
	}

	last := a.Forecast[9]
	wantExit := last.NOI/0.05 - last.LoanBalance
	assertClose(t, "ExitProceeds", a.ExitProceeds, wantExit, tolerance)
	assertClose(t, "Cashflows[10]", a.Cashflows[10], last.CashFlowAfterTax+wantExit, tolerance)

	var sum float64
	for _, r := range a.Forecast {
		sum += r.CashFlowAfterTax
	}
	assertClose(t, "EquityMultiple", a.EquityMultiple, (sum+wantExit)/in.Equity, tolerance)

	if a.IRR == nil {
		t.Fatalf("IRR is nil: %s", a.IRRError)
	}
	assertClose(t, "NPV at IRR", NPV(a.Cashflows, *a.IRR), 0, 1e-3)
	if *a.IRR <= a.KPIs.ROI {
		t.Errorf("IRR %v should exceed the cash yield %v once the exit is counted", *a.IRR, a.KPIs.ROI)
	}

	if a.KPIs != ComputeKPIs(in) {
		t.Error("KPIs differ from ComputeKPIs")
	}
	if a.Breakdown.Income != a.KPIs.EffectiveIncome || a.Breakdown.Interest != a.KPIs.InterestExpense {
		t.Errorf("Breakdown = %+v", a.Breakdown)
	}
}

func TestAnalyze_DefaultHorizon(t *testing.T) {
	if a := Analyze(fabriken(), 0); a.Years != DefaultHorizonYears || len(a.Forecast) != DefaultHorizonYears {
		t.Errorf("Years=%d len(Forecast)=%d, want %d", a.Years, len(a.Forecast), DefaultHorizonYears)
	}
}

func TestAnalyze_UnbracketedIRR(t *testing.T) {
	in := fabriken()
	in.Equity = 0
	a := Analyze(in, 10)
	if a.IRR != nil {
		t.Errorf("IRR = %v, want nil without an outlay", *a.IRR)
	}
	if a.IRRError == "" {
		t.Error("IRRError is empty")
	}
	if a.EquityMultiple != 0 {
		t.Errorf("EquityMultiple = %v, want 0", a.EquityMultiple)
	}
	b, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var back map[string]any
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back["irr"] != nil {
		t.Errorf("irr = %v, want null", back["irr"])
	}
}

func TestExitProceeds(t *testing.T) {
	in := fabriken()
	if got := ExitProceeds(in, nil); got != 0 {
		t.Errorf("ExitProceeds(nil rows) = %v, want 0", got)
	}
	in.ExitYieldPct = 0
	if got := ExitProceeds(in, Forecast(in, 3)); got != 0 {
		t.Errorf("ExitProceeds(zero yield) = %v, want 0", got)
	}
}

func TestEquityCashflows_NoRows(t *testing.T) {
	got := EquityCashflows(fabriken(), nil, 1000)
	if len(got) != 1 || got[0] != -3_000_000 {
		t.Errorf("EquityCashflows = %v, want [-3000000]", got)
	}
}

func ptr(v float64) *float64 { return &v }

func TestOverrides_Composition(t *testing.T) {
	base := fabriken()
	scenario := Overrides{AnnualRent: ptr(2_000_000), InterestRatePct: ptr(5)}.Apply(base)

	fresh := fabriken()
	fresh.AnnualRent = 2_000_000
	fresh.InterestRatePct = 5

	if scenario != fresh {
		t.Fatalf("Apply = %+v, want %+v", scenario, fresh)
	}
	if ComputeKPIs(scenario) != ComputeKPIs(fresh) {
		t.Error("KPIs of the scenario differ from a fresh record")
	}
	if base != fabriken() {
		t.Error("Apply changed the base input")
	}
	if (Overrides{}).Apply(base) != base {
		t.Error("empty overrides changed the input")
	}
}

func TestOverrides_Validate(t *testing.T) {
	base := fabriken()
	ok := Overrides{AnnualRent: ptr(1_000_000), VacancyPct: ptr(30), ExitYieldPct: ptr(3), PurchasePrice: ptr(1)}
	if err := ok.Validate(base); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}

	bad := Overrides{AnnualRent: ptr(3_000_000), InterestRatePct: ptr(11), ExitYieldPct: ptr(2)}
	err := bad.Validate(base)
	if !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("Validate() = %v, want ErrOutOfRange", err)
	}
	if n := len(err.(interface{ Unwrap() []error }).Unwrap()); n != 3 {
		t.Errorf("Validate() reported %d violations, want 3: %v", n, err)
	}
}

func TestSliderRanges(t *testing.T) {
	ranges := SliderRanges(fabriken())
	if len(ranges) != 6 {
		t.Fatalf("len = %d, want 6", len(ranges))
	}
	rent := ranges[0]
	if rent.Field != "annual_rent" || rent.Min != 900_000 || rent.Max != 2_700_000 || rent.Value != 1_800_000 {
		t.Errorf("rent range = %+v", rent)
	}
	for _, r := range ranges {
		if r.Value < r.Min || r.Value > r.Max {
			t.Errorf("%s: base value %v outside [%v, %v]", r.Field, r.Value, r.Min, r.Max)
		}
	}
}
