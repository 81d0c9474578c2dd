package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/fundsight/fundsight"
)

type fmtCmd struct {
	fund   string
	output string
}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "write a fund's transactions in canonical JSONL form"
}
func (*fmtCmd) Usage() string {
	return `fsc fmt -fund <fund> [-o <file.jsonl>]

  Validates the fund's transactions and writes them out in canonical JSONL
  form: one transaction per line, in chronological order. Without -o the
  ledger is written to stdout. The same file can be loaded back into the
  database with "fsc load".
`
}

func (p *fmtCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.fund, "fund", "", "Fund to format.")
	f.StringVar(&p.output, "o", "", "Output file. Defaults to stdout.")
}

func (p *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.fund == "" {
		return errorf("Error: -fund is required.")
	}
	ledger, err := loadLedger(p.fund)
	if err != nil {
		return errorf("Error: could not load fund %q: %v", p.fund, err)
	}

	// A JSONL file argument replaces the store as the source: this turns fmt
	// into a standalone ledger formatter.
	if f.NArg() == 1 {
		r, err := os.Open(f.Arg(0))
		if err != nil {
			return errorf("Error opening %q: %v", f.Arg(0), err)
		}
		ledger, err = fundsight.DecodeLedger(p.fund, r)
		r.Close()
		if err != nil {
			return errorf("Error reading %q: %v", f.Arg(0), err)
		}
	}

	w := os.Stdout
	if p.output != "" {
		w, err = os.Create(p.output)
		if err != nil {
			return errorf("Error creating %q: %v", p.output, err)
		}
		defer w.Close()
	}
	if err := fundsight.EncodeLedger(w, ledger); err != nil {
		return errorf("Error writing ledger: %v", err)
	}
	if p.output != "" {
		fmt.Fprintf(os.Stderr, "Formatted %d transactions into %s.\n", ledger.Len(), p.output)
	}
	return subcommands.ExitSuccess
}
