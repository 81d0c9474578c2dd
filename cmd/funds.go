package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type fundsCmd struct{}

func (*fundsCmd) Name() string     { return "funds" }
func (*fundsCmd) Synopsis() string { return "list the funds in the database" }
func (*fundsCmd) Usage() string {
	return `fsc funds

  Lists every fund with stored transactions, with its transaction count.
`
}

func (c *fundsCmd) SetFlags(f *flag.FlagSet) {}

func (c *fundsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openStore()
	if err != nil {
		return errorf("Error: %v", err)
	}
	defer s.Close()

	funds, err := s.ListFunds()
	if err != nil {
		return errorf("Error listing funds: %v", err)
	}
	if len(funds) == 0 {
		fmt.Println("No funds in the database.")
		return subcommands.ExitSuccess
	}
	for _, fund := range funds {
		ledger, err := s.LoadLedger(fund)
		if err != nil {
			return errorf("Error loading fund %q: %v", fund, err)
		}
		fmt.Printf("%s\t%d transactions\n", fund, ledger.Len())
	}
	return subcommands.ExitSuccess
}
