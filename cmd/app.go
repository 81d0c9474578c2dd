// Package cmd implements the CLI application to manage fund ledgers and
// their metrics.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/fundsight/fundsight"
	"github.com/fundsight/fundsight/store"
)

// Commands lists every subcommand. A main package registers them all and
// executes the user-selected one.
var Commands = []subcommands.Command{
	&importCmd{},
	&extractCmd{},
	&metricsCmd{},
	&txCmd{},
	&exportCmd{},
	&fmtCmd{},
	&loadCmd{},
	&fundsCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dbFile = flag.String("db", "fundsight.db", "Path to the fund transaction database")
var currency = flag.String("currency", "USD", "Reporting currency for parsed amounts")

// openStore opens the application transaction store.
func openStore() (*store.Store, error) {
	s, err := store.Open(*dbFile)
	if err != nil {
		return nil, fmt.Errorf("cannot open database %q: %w", *dbFile, err)
	}
	return s, nil
}

// loadLedger loads the fund's ledger from the store.
func loadLedger(fund string) (*fundsight.Ledger, error) {
	s, err := openStore()
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return s.LoadLedger(fund)
}

// saveLedger persists the ledger in the store, replacing the fund's previous
// transaction set.
func saveLedger(l *fundsight.Ledger) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()
	return s.SaveLedger(l)
}

// printMarkdown renders markdown to the terminal. If the terminal renderer
// fails the raw markdown is printed instead, so output is never lost.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

func errorf(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	return subcommands.ExitFailure
}
