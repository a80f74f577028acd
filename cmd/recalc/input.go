package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Augustnerdaal/REALestate/internal/finance"
	"github.com/google/subcommands"
)

var commands = []subcommands.Command{
	&kpiCmd{},
	&forecastCmd{},
	&irrCmd{},
	&reportCmd{},
}

// readInput decodes an input file over the model defaults. "-" reads stdin.
func readInput(file string) (finance.Input, error) {
	var r io.Reader = os.Stdin
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return finance.Input{}, fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		r = f
	}
	return decodeInput(r)
}

func decodeInput(r io.Reader) (finance.Input, error) {
	in := finance.NewInput()
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		return finance.Input{}, fmt.Errorf("failed to decode input: %w", err)
	}
	if err := in.Validate(); err != nil {
		return finance.Input{}, fmt.Errorf("invalid input: %w", err)
	}
	return in, nil
}

// parseCashflows reads a comma separated list such as "-100,60,60"
func parseCashflows(s string) ([]float64, error) {
	var cfs []float64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid cash flow %q: %w", part, err)
		}
		cfs = append(cfs, v)
	}
	if len(cfs) == 0 {
		return nil, finance.ErrNoCashflows
	}
	return cfs, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
