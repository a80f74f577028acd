package finance

// DefaultHorizonYears is the holding period of an Analysis when none is
// given.
const DefaultHorizonYears = 10

// ExitProceeds is what the owner keeps when selling after the last
// forecast year: that year's NOI capitalised at the exit yield, less the
// loan balance recorded on the row.
func ExitProceeds(in Input, rows []ForecastRow) float64 {
	if len(rows) == 0 || in.ExitYieldPct <= 0 {
		return 0
	}
	last := rows[len(rows)-1]
	return capitalize(last.NOI, in.ExitYieldPct) - last.LoanBalance
}

// EquityCashflows assembles the owner's cash-flow series for IRR: the
// equity outlay, then each year's after-tax cash flow with the exit
// proceeds added to the final year.
func EquityCashflows(in Input, rows []ForecastRow, exit float64) []float64 {
	cfs := make([]float64, 0, len(rows)+1)
	cfs = append(cfs, -in.Equity)
	cfs = append(cfs, CashFlows(rows)...)
	if len(rows) > 0 {
		cfs[len(cfs)-1] += exit
	}
	return cfs
}

// Analysis is everything shown for one input over one horizon.
type Analysis struct {
	Input          Input         `json:"input"`
	Years          int           `json:"years"`
	KPIs           KPIs          `json:"kpis"`
	Breakdown      Breakdown     `json:"breakdown"`
	Forecast       []ForecastRow `json:"forecast"`
	ExitProceeds   float64       `json:"exit_proceeds"`
	Cashflows      []float64     `json:"cashflows"`
	IRR            *float64      `json:"irr"` // nil when the series has no bracketed root
	IRRError       string        `json:"irr_error,omitempty"`
	EquityMultiple float64       `json:"equity_multiple"`
}

// Analyze computes KPIs, forecast, IRR and equity multiple in one pass.
func Analyze(in Input, years int) Analysis {
	if years < 1 {
		years = DefaultHorizonYears
	}
	k := ComputeKPIs(in)
	rows := Forecast(in, years)
	exit := ExitProceeds(in, rows)
	a := Analysis{
		Input:          in,
		Years:          years,
		KPIs:           k,
		Breakdown:      breakdownOf(in, k),
		Forecast:       rows,
		ExitProceeds:   exit,
		Cashflows:      EquityCashflows(in, rows, exit),
		EquityMultiple: EquityMultiple(in.Equity, CashFlows(rows), exit),
	}
	if irr, err := SolveIRR(a.Cashflows, DefaultIRRIterations); err != nil {
		a.IRRError = err.Error()
	} else {
		a.IRR = &irr
	}
	return a
}
