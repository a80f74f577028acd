package report

import (
	"fmt"
	"math"

	"github.com/Augustnerdaal/REALestate/internal/finance"
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Dash stands in for figures that have no numeric value.
const Dash = "—"

// Money formats an amount in whole currency units, grouped the way the
// currency is usually written. Non-finite amounts print as zero.
func Money(v float64, currency string) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	units := decimal.NewFromFloat(v).Round(0).IntPart()
	cur := money.GetCurrency(currency)
	if cur == nil {
		return fmt.Sprintf("%d %s", units, currency)
	}
	return money.NewFormatter(0, cur.Decimal, cur.Thousand, cur.Grapheme, cur.Template).Format(units)
}

// Percent formats a fraction as a percentage with one decimal.
func Percent(fraction float64) string {
	if math.IsNaN(fraction) || math.IsInf(fraction, 0) {
		fraction = 0
	}
	return fmt.Sprintf("%.1f %%", fraction*100)
}

// Rate formats a value that is already a percent.
func Rate(pct float64) string {
	return fmt.Sprintf("%.2f %%", pct)
}

// Payback formats the payback period in years, or Dash when there is none.
func Payback(k finance.KPIs) string {
	if !k.HasPayback() {
		return Dash
	}
	return fmt.Sprintf("%.1f years", k.PaybackYears)
}

// IRR formats the internal rate of return, or Dash when it has no root.
func IRR(a finance.Analysis) string {
	if a.IRR == nil {
		return Dash
	}
	return fmt.Sprintf("%.2f %%", *a.IRR*100)
}

// Multiple formats an equity multiple.
func Multiple(m float64) string {
	return fmt.Sprintf("%.2fx", m)
}
