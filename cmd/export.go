package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/fundsight/fundsight/xlsx"
)

type exportCmd struct {
	fund   string
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the fund report as an Excel workbook" }
func (*exportCmd) Usage() string {
	return `fsc export -fund <fund> [-o <file.xlsx>]

  Writes an Excel workbook with a metrics summary sheet and one sheet per
  transaction kind.
`
}

func (p *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.fund, "fund", "", "Fund to export.")
	f.StringVar(&p.output, "o", "", "Output file. Defaults to <fund>.xlsx.")
}

func (p *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.fund == "" {
		return errorf("Error: -fund is required.")
	}
	ledger, err := loadLedger(p.fund)
	if err != nil {
		return errorf("Error: could not load fund %q: %v", p.fund, err)
	}
	if ledger.Len() == 0 {
		return errorf("Error: fund %q has no transactions.", p.fund)
	}

	output := p.output
	if output == "" {
		output = p.fund + ".xlsx"
	}
	w, err := os.Create(output)
	if err != nil {
		return errorf("Error creating %q: %v", output, err)
	}
	defer w.Close()

	if err := xlsx.ExportReport(w, ledger); err != nil {
		return errorf("Error exporting fund %q: %v", p.fund, err)
	}
	fmt.Printf("Exported %q to %s.\n", p.fund, output)
	return subcommands.ExitSuccess
}
