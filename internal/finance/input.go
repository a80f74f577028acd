// Package finance holds the investment model: point-in-time KPIs, a
// multi-year cash-flow forecast, and the IRR and equity multiple of the
// owner's position.
//
// Every function in this package is a pure function of its arguments.
// Inputs are plain values, so a scenario is simply another Input.
package finance

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrNotFinite  = errors.New("value is not a finite number")
	ErrNegative   = errors.New("value must not be negative")
	ErrOutOfRange = errors.New("value is out of range")
)

// Assumptions groups the optional parameters of an Input. Their zero
// value is not the default: use DefaultAssumptions.
type Assumptions struct {
	TaxRatePct      float64 `json:"tax_rate_pct"`     // applied to positive pre-tax cash flow only
	VacancyPct      float64 `json:"vacancy_pct"`      // share of gross rent never collected
	InflationPct    float64 `json:"inflation_pct"`    // yearly escalation of rent and operating cost
	AmortizationPct float64 `json:"amortization_pct"` // share of the current balance repaid each year
	ExitYieldPct    float64 `json:"exit_yield_pct"`   // cap rate assumed at sale
}

// DefaultExitYieldPct is the exit yield used when none is given.
const DefaultExitYieldPct = 5

// DefaultAssumptions returns the model defaults: everything zero except
// the exit yield.
func DefaultAssumptions() Assumptions {
	return Assumptions{ExitYieldPct: DefaultExitYieldPct}
}

// Input describes one property under analysis. It only holds scalar
// fields, so two inputs compare equal with == when all fields match.
type Input struct {
	Name            string  `json:"name"`
	PurchasePrice   float64 `json:"purchase_price"`
	AnnualRent      float64 `json:"annual_rent"` // gross, before vacancy
	OperatingCost   float64 `json:"operating_cost"`
	LoanPrincipal   float64 `json:"loan_principal"`
	InterestRatePct float64 `json:"interest_rate_pct"`
	Equity          float64 `json:"equity"`
	Assumptions
}

// NewInput returns an empty Input carrying DefaultAssumptions. Decoding
// JSON into it keeps the defaults for absent keys.
func NewInput() Input {
	return Input{Assumptions: DefaultAssumptions()}
}

// FormDefaults are the values an input form starts from. They are a
// presentation concern and differ from the model defaults.
func FormDefaults() Input {
	return Input{
		InterestRatePct: 3.5,
		Assumptions: Assumptions{
			TaxRatePct:      20,
			VacancyPct:      5,
			InflationPct:    2,
			AmortizationPct: 2,
			ExitYieldPct:    5,
		},
	}
}

// Validate reports every field that is not a finite number, every
// amount that is negative, and an amortization above 100 %. The model
// itself never calls it.
func (in Input) Validate() error {
	var errs []error
	check := func(name string, v float64, nonNegative bool) {
		switch {
		case math.IsNaN(v) || math.IsInf(v, 0):
			errs = append(errs, fmt.Errorf("%s: %w", name, ErrNotFinite))
		case nonNegative && v < 0:
			errs = append(errs, fmt.Errorf("%s: %w", name, ErrNegative))
		}
	}
	check("purchase_price", in.PurchasePrice, true)
	check("annual_rent", in.AnnualRent, true)
	check("operating_cost", in.OperatingCost, true)
	check("loan_principal", in.LoanPrincipal, true)
	check("interest_rate_pct", in.InterestRatePct, false)
	check("equity", in.Equity, true)
	check("tax_rate_pct", in.TaxRatePct, false)
	check("vacancy_pct", in.VacancyPct, false)
	check("inflation_pct", in.InflationPct, false)
	check("amortization_pct", in.AmortizationPct, true)
	if in.AmortizationPct > 100 {
		errs = append(errs, fmt.Errorf("amortization_pct=%g above 100: %w", in.AmortizationPct, ErrOutOfRange))
	}
	check("exit_yield_pct", in.ExitYieldPct, false)
	return errors.Join(errs...)
}

func pct(v float64) float64 { return v / 100 }
