package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Augustnerdaal/REALestate/internal/finance"
	"github.com/Augustnerdaal/REALestate/internal/report"
	"github.com/google/subcommands"
)

type reportCmd struct {
	file     string
	years    int
	format   string
	currency string
	out      string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "export the full property report" }
func (*reportCmd) Usage() string {
	return `recalc report -f <input.json> [-format md|html|xml] [-years 10] [-o <file>]

  Writes the inputs, key figures, IRR, equity multiple and forecast as a
  document. Without -o the document goes to stdout; with -o "" the file
  name is derived from the property name.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "-", "Input file in JSON, - for stdin.")
	f.IntVar(&c.years, "years", finance.DefaultHorizonYears, "Forecast horizon in years.")
	f.StringVar(&c.format, "format", report.FormatMarkdown, "Document format: md, html or xml.")
	f.StringVar(&c.currency, "currency", "SEK", "Currency code used to format amounts.")
	f.StringVar(&c.out, "o", "-", "Output file, - for stdout, empty for the default name.")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.years < 1 {
		fmt.Fprintln(os.Stderr, "years must be at least 1")
		return subcommands.ExitUsageError
	}
	in, err := readInput(c.file)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	doc, err := report.Render(c.format, finance.Analyze(in, c.years), c.currency)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	switch c.out {
	case "-":
		_, err = os.Stdout.Write(doc.Body)
	case "":
		err = os.WriteFile(doc.FileName, doc.Body, 0o644)
		if err == nil {
			fmt.Fprintf(os.Stderr, "wrote %s\n", doc.FileName)
		}
	default:
		err = os.WriteFile(c.out, doc.Body, 0o644)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
