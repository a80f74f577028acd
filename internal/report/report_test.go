package report

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/Augustnerdaal/REALestate/internal/finance"
	"github.com/beevik/etree"
)

func example() finance.Analysis {
	in := finance.NewInput()
	in.Name = "Fabriken 12"
	in.PurchasePrice = 12_500_000
	in.AnnualRent = 1_800_000
	in.OperatingCost = 650_000
	in.LoanPrincipal = 9_500_000
	in.InterestRatePct = 4.25
	in.Equity = 3_000_000
	in.TaxRatePct = 20
	in.VacancyPct = 5
	in.AmortizationPct = 2
	return finance.Analyze(in, 10)
}

func TestMoney(t *testing.T) {
	if a, b := Money(1_800_000.4, "SEK"), Money(1_800_000, "SEK"); a != b {
		t.Errorf("Money rounds to whole units: %q != %q", a, b)
	}
	if a, b := Money(math.NaN(), "SEK"), Money(0, "SEK"); a != b {
		t.Errorf("Money(NaN) = %q, want %q", a, b)
	}
	if !strings.Contains(Money(1_800_000, "SEK"), "800") {
		t.Errorf("Money = %q, want the digits", Money(1_800_000, "SEK"))
	}
	if got := Money(1234.6, "ZZZ"); got != "1235 ZZZ" {
		t.Errorf("Money(unknown currency) = %q, want %q", got, "1235 ZZZ")
	}
}

func TestPercentAndPayback(t *testing.T) {
	if got := Percent(0.0848); got != "8.5 %" {
		t.Errorf("Percent = %q", got)
	}
	if got := Percent(math.Inf(1)); got != "0.0 %" {
		t.Errorf("Percent(Inf) = %q", got)
	}
	if got := Payback(finance.KPIs{PaybackYears: math.Inf(1)}); got != Dash {
		t.Errorf("Payback(Inf) = %q, want %q", got, Dash)
	}
	if got := Payback(finance.KPIs{PaybackYears: 8.04}); got != "8.0 years" {
		t.Errorf("Payback = %q", got)
	}
	if got := IRR(finance.Analysis{}); got != Dash {
		t.Errorf("IRR(nil) = %q, want %q", got, Dash)
	}
	if got := Multiple(1.2); got != "1.20x" {
		t.Errorf("Multiple = %q", got)
	}
}

func TestFileName(t *testing.T) {
	tests := map[string]string{
		"Fabriken 12":  "report_Fabriken_12.md",
		"":             "report_property.md",
		"  a/b  ":      "report_a_b.md",
		"Gården, Umeå": "report_Gården_Umeå.md",
	}
	for name, want := range tests {
		if got := FileName(name, "md"); got != want {
			t.Errorf("FileName(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestMarkdown(t *testing.T) {
	a := example()
	out := Markdown(a, "SEK")
	for _, want := range []string{
		"# Property report: Fabriken 12",
		"## Key figures",
		"## Forecast (10 years)",
		Money(a.KPIs.NOI, "SEK"),
		Percent(a.KPIs.CapRate),
		IRR(a),
		"IRR (10 years)",
		Multiple(a.EquityMultiple),
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown is missing %q:\n%s", want, out)
		}
	}
}

func TestMarkdown_UndefinedFigures(t *testing.T) {
	a := finance.Analyze(finance.NewInput(), 3)
	out := Markdown(a, "SEK")
	if !strings.Contains(out, "# Property report\n") && !strings.Contains(out, "# Property report\r\n") {
		t.Errorf("unnamed report title missing:\n%s", out)
	}
	if strings.Count(out, Dash) < 2 {
		t.Errorf("want a dash for both payback and IRR:\n%s", out)
	}
	if strings.Contains(out, "+Inf") || strings.Contains(out, "NaN") {
		t.Errorf("non-numeric values leaked:\n%s", out)
	}
}

func TestHTML(t *testing.T) {
	out, err := HTML(example(), "SEK")
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	for _, want := range []string{"<!DOCTYPE html>", "<title>Property report: Fabriken 12</title>", "<h1", "<table>", "</html>"} {
		if !strings.Contains(out, want) {
			t.Errorf("html is missing %q", want)
		}
	}
}

func TestXML(t *testing.T) {
	a := example()
	out, err := XML(a, "SEK")
	if err != nil {
		t.Fatalf("XML: %v", err)
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromString(out); err != nil {
		t.Fatalf("output is not XML: %v", err)
	}
	root := doc.SelectElement("report")
	if root == nil {
		t.Fatal("no report element")
	}
	if got := root.SelectAttrValue("property", ""); got != "Fabriken 12" {
		t.Errorf("property = %q", got)
	}
	if got := doc.FindElement("//kpis/noi").Text(); got != "1060000.00" {
		t.Errorf("noi = %q, want 1060000.00", got)
	}
	if got := len(doc.FindElements("//forecast/year")); got != 10 {
		t.Errorf("%d forecast years, want 10", got)
	}
	if doc.FindElement("//returns/irr") == nil {
		t.Error("irr missing")
	}
}

func TestXML_NoPaybackNoIRR(t *testing.T) {
	out, err := XML(finance.Analyze(finance.NewInput(), 2), "SEK")
	if err != nil {
		t.Fatalf("XML: %v", err)
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromString(out); err != nil {
		t.Fatal(err)
	}
	if doc.FindElement("//kpis/payback_years") != nil {
		t.Error("payback_years present for an infinite payback")
	}
	if doc.FindElement("//returns/irr_error") == nil {
		t.Error("irr_error missing")
	}
}

func TestRender(t *testing.T) {
	a := example()
	tests := []struct {
		format, contentType, fileName string
	}{
		{"", "text/markdown; charset=utf-8", "report_Fabriken_12.md"},
		{FormatMarkdown, "text/markdown; charset=utf-8", "report_Fabriken_12.md"},
		{FormatHTML, "text/html; charset=utf-8", "report_Fabriken_12.html"},
		{FormatXML, "application/xml; charset=utf-8", "report_Fabriken_12.xml"},
	}
	for _, tt := range tests {
		doc, err := Render(tt.format, a, "SEK")
		if err != nil {
			t.Fatalf("Render(%q): %v", tt.format, err)
		}
		if doc.ContentType != tt.contentType || doc.FileName != tt.fileName || len(doc.Body) == 0 {
			t.Errorf("Render(%q) = %s, %s, %d bytes", tt.format, doc.ContentType, doc.FileName, len(doc.Body))
		}
	}
	if _, err := Render("pdf", a, "SEK"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Render(pdf) error = %v, want ErrUnknownFormat", err)
	}
}
