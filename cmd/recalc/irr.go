package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Augustnerdaal/REALestate/internal/finance"
	"github.com/google/subcommands"
)

type irrCmd struct {
	cashflows  string
	iterations int
	multiple   bool
}

func (*irrCmd) Name() string     { return "irr" }
func (*irrCmd) Synopsis() string { return "solve the internal rate of return of a cash-flow series" }
func (*irrCmd) Usage() string {
	return `recalc irr -cf <cf0,cf1,...> [-n 100] [-multiple]

  The first value is the initial outlay at period 0. With -multiple, the
  equity multiple is printed as well, taking the negated first value as
  equity and the rest as distributions.
`
}

func (c *irrCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.cashflows, "cf", "", "Comma separated cash flows, period 0 first.")
	f.IntVar(&c.iterations, "n", finance.DefaultIRRIterations, "Maximum bisection iterations.")
	f.BoolVar(&c.multiple, "multiple", false, "Also print the equity multiple.")
}

func (c *irrCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfs, err := parseCashflows(c.cashflows)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	rate, err := finance.SolveIRR(cfs, c.iterations)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v (bisection stopped at %.4f %%)\n", err, finance.IRR(cfs, c.iterations)*100)
		return subcommands.ExitFailure
	}
	fmt.Printf("IRR: %.4f %%\n", rate*100)
	if c.multiple {
		fmt.Printf("Equity multiple: %.2fx\n", finance.EquityMultiple(-cfs[0], cfs[1:], 0))
	}
	return subcommands.ExitSuccess
}
