package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/fundsight/fundsight"
	"github.com/fundsight/fundsight/renderer"
)

type txCmd struct {
	fund string
	kind string
	head int
	tail int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list the fund's transactions" }
func (*txCmd) Usage() string {
	return `fsc tx -fund <fund> [-kind <kind>] [-head <n>] [-tail <n>]

  Lists the fund's transactions in chronological order, with options for
  filtering by kind and limiting the output.
`
}

func (p *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.fund, "fund", "", "Fund to report on.")
	f.StringVar(&p.kind, "kind", "", "Show only this kind (capital-call, distribution, adjustment).")
	f.IntVar(&p.head, "head", 0, "Show only the first N transactions.")
	f.IntVar(&p.tail, "tail", 0, "Show only the last N transactions.")
}

func (p *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.fund == "" {
		return errorf("Error: -fund is required.")
	}
	if p.head > 0 && p.tail > 0 {
		return errorf("Error: -head and -tail flags cannot be used together.")
	}

	ledger, err := loadLedger(p.fund)
	if err != nil {
		return errorf("Error: could not load fund %q: %v", p.fund, err)
	}

	var transactions []fundsight.Transaction
	for tx := range ledger.All() {
		if p.kind != "" && tx.What() != fundsight.TxKind(p.kind) {
			continue
		}
		transactions = append(transactions, tx)
	}

	if p.head > 0 && len(transactions) > p.head {
		transactions = transactions[:p.head]
	}
	if p.tail > 0 && len(transactions) > p.tail {
		transactions = transactions[len(transactions)-p.tail:]
	}

	printMarkdown(renderer.TransactionsMarkdown(transactions))
	return subcommands.ExitSuccess
}
