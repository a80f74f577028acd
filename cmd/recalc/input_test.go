package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Augustnerdaal/REALestate/internal/finance"
	"github.com/Augustnerdaal/REALestate/internal/report"
)

func TestDecodeInput(t *testing.T) {
	in, err := decodeInput(strings.NewReader(`{"name": "Fabriken 12", "purchase_price": 12500000, "vacancy_pct": 5}`))
	if err != nil {
		t.Fatalf("decodeInput: %v", err)
	}
	if in.PurchasePrice != 12_500_000 || in.VacancyPct != 5 {
		t.Errorf("input = %+v", in)
	}
	if in.ExitYieldPct != finance.DefaultExitYieldPct {
		t.Errorf("exit yield = %v, want the model default", in.ExitYieldPct)
	}

	tests := []struct {
		name string
		body string
	}{
		{"unknown field", `{"price": 1}`},
		{"negative", `{"equity": -5}`},
		{"not json", `equity=5`},
	}
	for _, tt := range tests {
		if _, err := decodeInput(strings.NewReader(tt.body)); err == nil {
			t.Errorf("%s: decodeInput() returned no error", tt.name)
		}
	}
}

func TestReadInput_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.json")
	if err := os.WriteFile(path, []byte(`{"annual_rent": 1800000}`), 0o644); err != nil {
		t.Fatal(err)
	}
	in, err := readInput(path)
	if err != nil || in.AnnualRent != 1_800_000 {
		t.Errorf("readInput() = %+v, %v", in, err)
	}
	if _, err := readInput(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("readInput() of a missing file returned no error")
	}
}

func TestParseCashflows(t *testing.T) {
	got, err := parseCashflows(" -100, 60 ,60,")
	if err != nil {
		t.Fatalf("parseCashflows: %v", err)
	}
	want := []float64{-100, 60, 60}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if _, err := parseCashflows(""); !errors.Is(err, finance.ErrNoCashflows) {
		t.Errorf("empty list error = %v, want ErrNoCashflows", err)
	}
	if _, err := parseCashflows("-100,abc"); err == nil {
		t.Error("parseCashflows accepted a non-number")
	}
}

func TestKPITable(t *testing.T) {
	k := finance.ComputeKPIs(finance.Input{PurchasePrice: 1_000_000, AnnualRent: 100_000, Equity: 1_000_000})
	out := kpiTable(k, "SEK")
	for _, want := range []string{"NOI", "Cap rate", "10.0 %"} {
		if !strings.Contains(out, want) {
			t.Errorf("table does not contain %q:\n%s", want, out)
		}
	}
}

func TestForecastTable(t *testing.T) {
	in := finance.Input{PurchasePrice: 1_000_000, AnnualRent: 100_000, LoanPrincipal: 600_000, InterestRatePct: 4, Equity: 400_000, Assumptions: finance.Assumptions{AmortizationPct: 2}}
	out := forecastTable(finance.Forecast(in, 3), "SEK")

	if !strings.Contains(strings.ToLower(out), "loan balance") {
		t.Errorf("table has no loan balance column:\n%s", out)
	}
	// the first year carries the opening balance
	if want := report.Money(600_000, "SEK"); !strings.Contains(out, want) {
		t.Errorf("table does not contain opening balance %q:\n%s", want, out)
	}
	var rows int
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "|") {
			rows++
		}
	}
	if rows != 5 {
		t.Errorf("table has %d lines, want header, separator and 3 years:\n%s", rows, out)
	}
}
