package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Augustnerdaal/REALestate/internal/finance"
	"github.com/Augustnerdaal/REALestate/internal/report"
	"github.com/google/subcommands"
	md "github.com/nao1215/markdown"
)

type kpiCmd struct {
	file     string
	currency string
	json     bool
}

func (*kpiCmd) Name() string     { return "kpi" }
func (*kpiCmd) Synopsis() string { return "compute the year-one key figures of a property" }
func (*kpiCmd) Usage() string {
	return `recalc kpi -f <input.json> [-currency SEK] [-json]

  Prints NOI, cash flows, cap rate, ROI, LTV, payback, break-even points
  and exit value for the input.
`
}

func (c *kpiCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "-", "Input file in JSON, - for stdin.")
	f.StringVar(&c.currency, "currency", "SEK", "Currency code used to format amounts.")
	f.BoolVar(&c.json, "json", false, "Print raw figures as JSON.")
}

func (c *kpiCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	in, err := readInput(c.file)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	k := finance.ComputeKPIs(in)
	if c.json {
		if err := writeJSON(os.Stdout, k); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	fmt.Println(kpiTable(k, c.currency))
	return subcommands.ExitSuccess
}

func kpiTable(k finance.KPIs, currency string) string {
	m := func(v float64) string { return report.Money(v, currency) }
	var buf bytes.Buffer
	return md.NewMarkdown(&buf).Table(md.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Effective income", m(k.EffectiveIncome)},
			{"NOI", m(k.NOI)},
			{"Interest", m(k.InterestExpense)},
			{"Amortization", m(k.AmortizationAmount)},
			{"Cash flow before tax", m(k.CashFlowBeforeTax)},
			{"Tax", m(k.Tax)},
			{"Cash flow after tax", m(k.CashFlowAfterTax)},
			{"Cap rate", report.Percent(k.CapRate)},
			{"ROI", report.Percent(k.ROI)},
			{"LTV", report.Percent(k.LTV)},
			{"Payback", report.Payback(k)},
			{"Break-even rent", m(k.BreakEvenRent)},
			{"Break-even interest rate", report.Rate(k.BreakEvenInterestRatePct)},
			{"Exit value", m(k.ExitValue)},
		},
	}).String()
}
