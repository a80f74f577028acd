package finance

import "math"

// ForecastRow is one projected year. LoanBalance is the balance at the
// start of the year, which interest and amortization are computed on.
type ForecastRow struct {
	Year               int     `json:"year"`
	Rent               float64 `json:"rent"` // after vacancy
	OperatingCost      float64 `json:"operating_cost"`
	NOI                float64 `json:"noi"`
	InterestExpense    float64 `json:"interest_expense"`
	AmortizationAmount float64 `json:"amortization_amount"`
	CashFlowBeforeTax  float64 `json:"cash_flow_before_tax"`
	Tax                float64 `json:"tax"`
	CashFlowAfterTax   float64 `json:"cash_flow_after_tax"`
	LoanBalance        float64 `json:"loan_balance"`
}

// Forecast projects the input over the given number of years. Rent and
// operating cost grow with inflation; the loan is amortized by a fixed
// share of its current balance, so the balance never goes negative.
func Forecast(in Input, years int) []ForecastRow {
	if years < 1 {
		return nil
	}
	rows := make([]ForecastRow, 0, years)
	balance := in.LoanPrincipal
	for y := 1; y <= years; y++ {
		factor := math.Pow(1+pct(in.InflationPct), float64(y-1))
		r := ForecastRow{
			Year:          y,
			Rent:          in.AnnualRent * factor * (1 - pct(in.VacancyPct)),
			OperatingCost: in.OperatingCost * factor,
			LoanBalance:   balance,
		}
		r.NOI = r.Rent - r.OperatingCost
		r.InterestExpense = balance * pct(in.InterestRatePct)
		r.AmortizationAmount = balance * pct(in.AmortizationPct)
		r.CashFlowBeforeTax = r.NOI - r.InterestExpense - r.AmortizationAmount
		r.Tax = pct(in.TaxRatePct) * math.Max(r.CashFlowBeforeTax, 0)
		r.CashFlowAfterTax = r.CashFlowBeforeTax - r.Tax
		rows = append(rows, r)

		balance = math.Max(0, balance-r.AmortizationAmount)
	}
	return rows
}

// CashFlows returns the after-tax cash flow of each row.
func CashFlows(rows []ForecastRow) []float64 {
	cfs := make([]float64, len(rows))
	for i, r := range rows {
		cfs[i] = r.CashFlowAfterTax
	}
	return cfs
}
