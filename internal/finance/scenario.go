package finance

import (
	"errors"
	"fmt"
)

// Overrides lists the fields a scenario changes. Nil fields keep the
// base value.
type Overrides struct {
	PurchasePrice   *float64 `json:"purchase_price,omitempty"`
	AnnualRent      *float64 `json:"annual_rent,omitempty"`
	OperatingCost   *float64 `json:"operating_cost,omitempty"`
	LoanPrincipal   *float64 `json:"loan_principal,omitempty"`
	InterestRatePct *float64 `json:"interest_rate_pct,omitempty"`
	Equity          *float64 `json:"equity,omitempty"`
	TaxRatePct      *float64 `json:"tax_rate_pct,omitempty"`
	VacancyPct      *float64 `json:"vacancy_pct,omitempty"`
	InflationPct    *float64 `json:"inflation_pct,omitempty"`
	AmortizationPct *float64 `json:"amortization_pct,omitempty"`
	ExitYieldPct    *float64 `json:"exit_yield_pct,omitempty"`
}

// Apply returns base with the overrides set. base is a value and is left
// as it was.
func (o Overrides) Apply(base Input) Input {
	set := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	in := base
	set(&in.PurchasePrice, o.PurchasePrice)
	set(&in.AnnualRent, o.AnnualRent)
	set(&in.OperatingCost, o.OperatingCost)
	set(&in.LoanPrincipal, o.LoanPrincipal)
	set(&in.InterestRatePct, o.InterestRatePct)
	set(&in.Equity, o.Equity)
	set(&in.TaxRatePct, o.TaxRatePct)
	set(&in.VacancyPct, o.VacancyPct)
	set(&in.InflationPct, o.InflationPct)
	set(&in.AmortizationPct, o.AmortizationPct)
	set(&in.ExitYieldPct, o.ExitYieldPct)
	return in
}

// SliderRange bounds one adjustable field of a scenario.
type SliderRange struct {
	Field string  `json:"field"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Step  float64 `json:"step"`
	Value float64 `json:"value"`
}

// SliderRanges returns the bounds a scenario may move the base within.
// Rent and operating cost move between half and one and a half times the
// base; rates have fixed bounds.
func SliderRanges(base Input) []SliderRange {
	return []SliderRange{
		{Field: "annual_rent", Min: base.AnnualRent * 0.5, Max: base.AnnualRent * 1.5, Step: 1000, Value: base.AnnualRent},
		{Field: "operating_cost", Min: base.OperatingCost * 0.5, Max: base.OperatingCost * 1.5, Step: 1000, Value: base.OperatingCost},
		{Field: "interest_rate_pct", Min: 0, Max: 10, Step: 0.05, Value: base.InterestRatePct},
		{Field: "vacancy_pct", Min: 0, Max: 30, Step: 0.5, Value: base.VacancyPct},
		{Field: "amortization_pct", Min: 0, Max: 10, Step: 0.1, Value: base.AmortizationPct},
		{Field: "exit_yield_pct", Min: 3, Max: 10, Step: 0.05, Value: base.ExitYieldPct},
	}
}

// Validate checks the slider-backed overrides against SliderRanges of
// base. Other overrides are left to Input.Validate.
func (o Overrides) Validate(base Input) error {
	values := map[string]*float64{
		"annual_rent":       o.AnnualRent,
		"operating_cost":    o.OperatingCost,
		"interest_rate_pct": o.InterestRatePct,
		"vacancy_pct":       o.VacancyPct,
		"amortization_pct":  o.AmortizationPct,
		"exit_yield_pct":    o.ExitYieldPct,
	}
	var errs []error
	for _, r := range SliderRanges(base) {
		v := values[r.Field]
		if v == nil {
			continue
		}
		if *v < r.Min || *v > r.Max {
			errs = append(errs, fmt.Errorf("%s=%g not in [%g, %g]: %w", r.Field, *v, r.Min, r.Max, ErrOutOfRange))
		}
	}
	return errors.Join(errs...)
}
