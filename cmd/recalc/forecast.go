package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/Augustnerdaal/REALestate/internal/finance"
	"github.com/Augustnerdaal/REALestate/internal/report"
	"github.com/google/subcommands"
	md "github.com/nao1215/markdown"
)

type forecastCmd struct {
	file     string
	years    int
	currency string
	json     bool
}

func (*forecastCmd) Name() string     { return "forecast" }
func (*forecastCmd) Synopsis() string { return "project yearly cash flows and loan balance" }
func (*forecastCmd) Usage() string {
	return `recalc forecast -f <input.json> [-years 10] [-currency SEK] [-json]

  Prints one row per year with rent, operating cost, NOI, interest,
  amortization, tax, cash flow after tax and the opening loan balance.
`
}

func (c *forecastCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "-", "Input file in JSON, - for stdin.")
	f.IntVar(&c.years, "years", finance.DefaultHorizonYears, "Number of years to project.")
	f.StringVar(&c.currency, "currency", "SEK", "Currency code used to format amounts.")
	f.BoolVar(&c.json, "json", false, "Print raw rows as JSON.")
}

func (c *forecastCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.years < 1 {
		fmt.Fprintln(os.Stderr, "years must be at least 1")
		return subcommands.ExitUsageError
	}
	in, err := readInput(c.file)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	rows := finance.Forecast(in, c.years)
	if c.json {
		if err := writeJSON(os.Stdout, rows); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	fmt.Println(forecastTable(rows, c.currency))
	return subcommands.ExitSuccess
}

func forecastTable(rows []finance.ForecastRow, currency string) string {
	m := func(v float64) string { return report.Money(v, currency) }
	set := md.TableSet{
		Header: []string{"Year", "Rent", "Opex", "NOI", "Interest", "Amortization", "Tax", "Cash flow", "Loan balance"},
		Rows:   make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		set.Rows = append(set.Rows, []string{
			strconv.Itoa(r.Year), m(r.Rent), m(r.OperatingCost), m(r.NOI), m(r.InterestExpense),
			m(r.AmortizationAmount), m(r.Tax), m(r.CashFlowAfterTax), m(r.LoanBalance),
		})
	}
	var buf bytes.Buffer
	return md.NewMarkdown(&buf).Table(set).String()
}
