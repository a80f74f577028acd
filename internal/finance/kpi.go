package finance

import (
	"encoding/json"
	"math"
)

// KPIs are the year-one figures of an Input. Ratios (CapRate, ROI, LTV)
// are fractions; BreakEvenInterestRatePct is a percent.
type KPIs struct {
	EffectiveIncome          float64 `json:"effective_income"`
	NOI                      float64 `json:"noi"`
	InterestExpense          float64 `json:"interest_expense"`
	AmortizationAmount       float64 `json:"amortization_amount"`
	CashFlowBeforeTax        float64 `json:"cash_flow_before_tax"`
	Tax                      float64 `json:"tax"`
	CashFlowAfterTax         float64 `json:"cash_flow_after_tax"`
	CapRate                  float64 `json:"cap_rate"`
	ROI                      float64 `json:"roi"`
	LTV                      float64 `json:"ltv"`
	PaybackYears             float64 `json:"payback_years"` // +Inf when cash flow is zero
	BreakEvenRent            float64 `json:"break_even_rent"`
	BreakEvenInterestRatePct float64 `json:"break_even_interest_rate_pct"`
	ExitValue                float64 `json:"exit_value"`
}

// HasPayback reports whether PaybackYears is a displayable number.
func (k KPIs) HasPayback() bool { return !math.IsInf(k.PaybackYears, 0) && !math.IsNaN(k.PaybackYears) }

// MarshalJSON writes an undefined payback as null; encoding/json
// rejects infinities.
func (k KPIs) MarshalJSON() ([]byte, error) {
	type plain KPIs
	var payback *float64
	if k.HasPayback() {
		payback = &k.PaybackYears
	}
	return json.Marshal(struct {
		plain
		PaybackYears *float64 `json:"payback_years"`
	}{plain: plain(k), PaybackYears: payback})
}

// UnmarshalJSON reads a null payback back as +Inf.
func (k *KPIs) UnmarshalJSON(data []byte) error {
	type plain KPIs
	aux := struct {
		*plain
		PaybackYears *float64 `json:"payback_years"`
	}{plain: (*plain)(k)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.PaybackYears == nil {
		k.PaybackYears = math.Inf(1)
	} else {
		k.PaybackYears = *aux.PaybackYears
	}
	return nil
}

// ComputeKPIs derives the year-one figures. Divisions by a zero price,
// equity or loan yield 0; a zero cash flow yields an infinite payback.
func ComputeKPIs(in Input) KPIs {
	var k KPIs
	k.EffectiveIncome = in.AnnualRent * (1 - pct(in.VacancyPct))
	k.NOI = k.EffectiveIncome - in.OperatingCost
	k.InterestExpense = in.LoanPrincipal * pct(in.InterestRatePct)
	k.AmortizationAmount = in.LoanPrincipal * pct(in.AmortizationPct)
	k.CashFlowBeforeTax = k.NOI - k.InterestExpense - k.AmortizationAmount
	k.Tax = pct(in.TaxRatePct) * math.Max(k.CashFlowBeforeTax, 0)
	k.CashFlowAfterTax = k.CashFlowBeforeTax - k.Tax

	if in.PurchasePrice != 0 {
		k.CapRate = k.NOI / in.PurchasePrice
		k.LTV = in.LoanPrincipal / in.PurchasePrice
	}
	if in.Equity != 0 {
		k.ROI = k.CashFlowAfterTax / in.Equity
	}
	k.PaybackYears = math.Inf(1)
	if k.CashFlowAfterTax != 0 {
		k.PaybackYears = in.Equity / k.CashFlowAfterTax
	}

	k.BreakEvenRent = in.OperatingCost + k.InterestExpense + k.AmortizationAmount
	if in.LoanPrincipal != 0 {
		k.BreakEvenInterestRatePct = math.Max(0, (k.NOI-k.AmortizationAmount)/in.LoanPrincipal*100)
	}
	k.ExitValue = capitalize(k.NOI, in.ExitYieldPct)
	return k
}

// capitalize values a NOI at the given yield, 0 for a non-positive yield.
func capitalize(noi, yieldPct float64) float64 {
	if yieldPct <= 0 {
		return 0
	}
	return noi / pct(yieldPct)
}

// Breakdown splits year one into the slices of an income chart. Each
// slice is clamped at zero.
type Breakdown struct {
	Income        float64 `json:"income"`
	OperatingCost float64 `json:"operating_cost"`
	Interest      float64 `json:"interest"`
	Amortization  float64 `json:"amortization"`
}

func breakdownOf(in Input, k KPIs) Breakdown {
	return Breakdown{
		Income:        math.Max(k.EffectiveIncome, 0),
		OperatingCost: math.Max(in.OperatingCost, 0),
		Interest:      math.Max(k.InterestExpense, 0),
		Amortization:  math.Max(k.AmortizationAmount, 0),
	}
}
