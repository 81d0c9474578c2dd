package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/fundsight/fundsight"
)

type loadCmd struct {
	fund string
}

func (*loadCmd) Name() string     { return "load" }
func (*loadCmd) Synopsis() string { return "load a JSONL ledger file into the database" }
func (*loadCmd) Usage() string {
	return `fsc load -fund <fund> <file.jsonl>

  Reads a canonical JSONL ledger file and stores it as the fund's
  transaction set, replacing whatever the database held for that fund.
`
}

func (p *loadCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.fund, "fund", "", "Fund the loaded transactions belong to.")
}

func (p *loadCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.fund == "" {
		return errorf("Error: -fund is required.")
	}
	if f.NArg() != 1 {
		return errorf("Error: exactly one JSONL file is required.")
	}

	r, err := os.Open(f.Arg(0))
	if err != nil {
		return errorf("Error opening %q: %v", f.Arg(0), err)
	}
	defer r.Close()

	ledger, err := fundsight.DecodeLedger(p.fund, r)
	if err != nil {
		return errorf("Error reading %q: %v", f.Arg(0), err)
	}
	if err := saveLedger(ledger); err != nil {
		return errorf("Error saving fund %q: %v", p.fund, err)
	}
	fmt.Printf("Loaded %d transactions into %q.\n", ledger.Len(), p.fund)
	return subcommands.ExitSuccess
}
