// Package report renders an analysis as a document: Markdown, HTML or XML.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/Augustnerdaal/REALestate/internal/finance"
	"github.com/beevik/etree"
	md "github.com/nao1215/markdown"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var ErrUnknownFormat = errors.New("unknown report format")

// Supported formats.
const (
	FormatMarkdown = "md"
	FormatHTML     = "html"
	FormatXML      = "xml"
)

// Document is a rendered report ready to be served or attached.
type Document struct {
	Format      string
	ContentType string
	FileName    string
	Body        []byte
}

// Render produces the report in the requested format.
func Render(format string, a finance.Analysis, currency string) (Document, error) {
	doc := Document{Format: format, FileName: FileName(a.Input.Name, format)}
	switch format {
	case FormatMarkdown, "":
		doc.Format = FormatMarkdown
		doc.FileName = FileName(a.Input.Name, FormatMarkdown)
		doc.ContentType = "text/markdown; charset=utf-8"
		doc.Body = []byte(Markdown(a, currency))
	case FormatHTML:
		s, err := HTML(a, currency)
		if err != nil {
			return Document{}, err
		}
		doc.ContentType = "text/html; charset=utf-8"
		doc.Body = []byte(s)
	case FormatXML:
		s, err := XML(a, currency)
		if err != nil {
			return Document{}, err
		}
		doc.ContentType = "application/xml; charset=utf-8"
		doc.Body = []byte(s)
	default:
		return Document{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return doc, nil
}

var unsafeName = regexp.MustCompile(`[^\p{L}\p{N}_-]+`)

// FileName returns report_<name>.<ext>, with the name reduced to
// characters safe in a file name.
func FileName(name, ext string) string {
	name = strings.Trim(unsafeName.ReplaceAllString(strings.TrimSpace(name), "_"), "_")
	if name == "" {
		name = "property"
	}
	return fmt.Sprintf("report_%s.%s", name, ext)
}

func title(a finance.Analysis) string {
	if a.Input.Name == "" {
		return "Property report"
	}
	return "Property report: " + a.Input.Name
}

// Markdown renders the inputs, key figures and forecast as Markdown.
func Markdown(a finance.Analysis, currency string) string {
	in, k := a.Input, a.KPIs
	m := func(v float64) string { return Money(v, currency) }

	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(title(a))

	doc.H2("Inputs")
	doc.BulletList(
		fmt.Sprintf("Purchase price: %s", m(in.PurchasePrice)),
		fmt.Sprintf("Equity: %s | Loan: %s | LTV: %s", m(in.Equity), m(in.LoanPrincipal), Percent(k.LTV)),
		fmt.Sprintf("Rent: %s | Operating cost: %s | Vacancy: %g %%", m(in.AnnualRent), m(in.OperatingCost), in.VacancyPct),
		fmt.Sprintf("Interest: %g %% | Amortization: %g %% | Tax: %g %%", in.InterestRatePct, in.AmortizationPct, in.TaxRatePct),
		fmt.Sprintf("Inflation: %g %% | Exit yield: %g %%", in.InflationPct, in.ExitYieldPct),
	)

	doc.H2("Key figures")
	doc.Table(md.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"NOI", m(k.NOI)},
			{"Cash flow after tax", m(k.CashFlowAfterTax)},
			{"Cap rate", Percent(k.CapRate)},
			{"ROI", Percent(k.ROI)},
			{"Payback", Payback(k)},
			{"Break-even rent per year", m(k.BreakEvenRent)},
			{"Break-even interest rate", Rate(k.BreakEvenInterestRatePct)},
			{"Exit value (year 1 NOI)", m(k.ExitValue)},
			{fmt.Sprintf("IRR (%d years)", a.Years), IRR(a)},
			{"Equity multiple", Multiple(a.EquityMultiple)},
		},
	})

	doc.H2(fmt.Sprintf("Forecast (%d years)", a.Years))
	rows := make([][]string, 0, len(a.Forecast))
	for _, r := range a.Forecast {
		rows = append(rows, []string{
			strconv.Itoa(r.Year),
			m(r.Rent),
			m(r.OperatingCost),
			m(r.NOI),
			m(r.InterestExpense),
			m(r.AmortizationAmount),
			m(r.CashFlowAfterTax),
			m(r.LoanBalance),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Year", "Rent", "Operating cost", "NOI", "Interest", "Amortization", "Cash flow", "Loan balance"},
		Rows:   rows,
	})
	doc.PlainText(fmt.Sprintf("Exit proceeds after year %d: %s", a.Years, m(a.ExitProceeds)))

	return doc.String()
}

// HTML renders the Markdown report as a standalone HTML page.
func HTML(a finance.Analysis, currency string) (string, error) {
	conv := goldmark.New(goldmark.WithExtensions(extension.Table))
	var body bytes.Buffer
	if err := conv.Convert([]byte(Markdown(a, currency)), &body); err != nil {
		return "", fmt.Errorf("failed to render html: %w", err)
	}
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n</head>\n<body>\n", html.EscapeString(title(a)))
	b.Write(body.Bytes())
	b.WriteString("</body>\n</html>\n")
	return b.String(), nil
}

// XML renders the report as an XML document with raw numbers, for
// spreadsheets and other tools.
func XML(a finance.Analysis, currency string) (string, error) {
	in, k := a.Input, a.KPIs
	num := func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }
	ratio := func(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("report")
	root.CreateAttr("property", in.Name)
	root.CreateAttr("currency", currency)
	root.CreateAttr("years", strconv.Itoa(a.Years))

	inputs := root.CreateElement("inputs")
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"purchase_price", in.PurchasePrice},
		{"annual_rent", in.AnnualRent},
		{"operating_cost", in.OperatingCost},
		{"loan_principal", in.LoanPrincipal},
		{"interest_rate_pct", in.InterestRatePct},
		{"equity", in.Equity},
		{"tax_rate_pct", in.TaxRatePct},
		{"vacancy_pct", in.VacancyPct},
		{"inflation_pct", in.InflationPct},
		{"amortization_pct", in.AmortizationPct},
		{"exit_yield_pct", in.ExitYieldPct},
	} {
		inputs.CreateElement(f.name).SetText(num(f.value))
	}

	kpis := root.CreateElement("kpis")
	kpis.CreateElement("effective_income").SetText(num(k.EffectiveIncome))
	kpis.CreateElement("noi").SetText(num(k.NOI))
	kpis.CreateElement("interest_expense").SetText(num(k.InterestExpense))
	kpis.CreateElement("amortization_amount").SetText(num(k.AmortizationAmount))
	kpis.CreateElement("cash_flow_before_tax").SetText(num(k.CashFlowBeforeTax))
	kpis.CreateElement("tax").SetText(num(k.Tax))
	kpis.CreateElement("cash_flow_after_tax").SetText(num(k.CashFlowAfterTax))
	kpis.CreateElement("cap_rate").SetText(ratio(k.CapRate))
	kpis.CreateElement("roi").SetText(ratio(k.ROI))
	kpis.CreateElement("ltv").SetText(ratio(k.LTV))
	if k.HasPayback() {
		kpis.CreateElement("payback_years").SetText(num(k.PaybackYears))
	}
	kpis.CreateElement("break_even_rent").SetText(num(k.BreakEvenRent))
	kpis.CreateElement("break_even_interest_rate_pct").SetText(num(k.BreakEvenInterestRatePct))
	kpis.CreateElement("exit_value").SetText(num(k.ExitValue))

	returns := root.CreateElement("returns")
	if a.IRR != nil {
		returns.CreateElement("irr").SetText(ratio(*a.IRR))
	} else {
		returns.CreateElement("irr_error").SetText(a.IRRError)
	}
	returns.CreateElement("equity_multiple").SetText(ratio(a.EquityMultiple))
	returns.CreateElement("exit_proceeds").SetText(num(a.ExitProceeds))

	forecast := root.CreateElement("forecast")
	for _, r := range a.Forecast {
		y := forecast.CreateElement("year")
		y.CreateAttr("n", strconv.Itoa(r.Year))
		y.CreateElement("rent").SetText(num(r.Rent))
		y.CreateElement("operating_cost").SetText(num(r.OperatingCost))
		y.CreateElement("noi").SetText(num(r.NOI))
		y.CreateElement("interest_expense").SetText(num(r.InterestExpense))
		y.CreateElement("amortization_amount").SetText(num(r.AmortizationAmount))
		y.CreateElement("tax").SetText(num(r.Tax))
		y.CreateElement("cash_flow_after_tax").SetText(num(r.CashFlowAfterTax))
		y.CreateElement("loan_balance").SetText(num(r.LoanBalance))
	}

	doc.Indent(2)
	s, err := doc.WriteToString()
	if err != nil {
		return "", fmt.Errorf("failed to render xml: %w", err)
	}
	return s, nil
}
