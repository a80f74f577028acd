package finance

import (
	"errors"
	"fmt"
	"math"
)

func finite(errs []error, name string, v float64) []error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return append(errs, fmt.Errorf("%s: %w", name, ErrNotFinite))
	}
	return errs
}

// Finite reports every figure that overflowed to an infinity or NaN.
// An undefined payback is not an error.
func (k KPIs) Finite() error {
	var errs []error
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"effective_income", k.EffectiveIncome},
		{"noi", k.NOI},
		{"interest_expense", k.InterestExpense},
		{"amortization_amount", k.AmortizationAmount},
		{"cash_flow_before_tax", k.CashFlowBeforeTax},
		{"tax", k.Tax},
		{"cash_flow_after_tax", k.CashFlowAfterTax},
		{"cap_rate", k.CapRate},
		{"roi", k.ROI},
		{"ltv", k.LTV},
		{"break_even_rent", k.BreakEvenRent},
		{"break_even_interest_rate_pct", k.BreakEvenInterestRatePct},
		{"exit_value", k.ExitValue},
	} {
		errs = finite(errs, f.name, f.v)
	}
	if math.IsNaN(k.PaybackYears) || math.IsInf(k.PaybackYears, -1) {
		errs = append(errs, fmt.Errorf("payback_years: %w", ErrNotFinite))
	}
	return errors.Join(errs...)
}

// RowsFinite checks every figure of a forecast.
func RowsFinite(rows []ForecastRow) error {
	var errs []error
	for _, r := range rows {
		for _, v := range []float64{
			r.Rent, r.OperatingCost, r.NOI, r.InterestExpense, r.AmortizationAmount,
			r.CashFlowBeforeTax, r.Tax, r.CashFlowAfterTax, r.LoanBalance,
		} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				errs = append(errs, fmt.Errorf("forecast year %d: %w", r.Year, ErrNotFinite))
				break
			}
		}
	}
	return errors.Join(errs...)
}

// Finite checks that the analysis can be encoded: KPIs, forecast, exit
// proceeds, equity cash flows and the equity multiple.
func (a Analysis) Finite() error {
	errs := []error{a.KPIs.Finite(), RowsFinite(a.Forecast)}
	errs = finite(errs, "exit_proceeds", a.ExitProceeds)
	errs = finite(errs, "equity_multiple", a.EquityMultiple)
	for i, cf := range a.Cashflows {
		errs = finite(errs, fmt.Sprintf("cashflows[%d]", i), cf)
	}
	if a.IRR != nil {
		errs = finite(errs, "irr", *a.IRR)
	}
	return errors.Join(errs...)
}
