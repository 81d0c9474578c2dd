package cmd

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/subcommands"

	"github.com/fundsight/fundsight"
	"github.com/fundsight/fundsight/renderer"
	"github.com/fundsight/fundsight/xlsx"
)

type importCmd struct {
	fund string
	page int
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import report tables into a fund ledger" }
func (*importCmd) Usage() string {
	return `fsc import -fund <fund> <file>...

  Imports transaction tables from extracted report files into the fund's
  ledger. CSV files hold one table each (header row first); XLSX workbooks
  hold one table per sheet. Each table is classified by its header and
  parsed row by row; rows that cannot be parsed are reported as warnings
  and skipped, never silently dropped.

Usage Examples:
# Import one quarter's extracted tables.
$ fsc import -fund growth-iii capital_calls.csv distributions.csv

`
}

func (p *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.fund, "fund", "", "Fund the imported transactions belong to.")
	f.IntVar(&p.page, "page", 0, "Report page the tables came from, for diagnostics.")
}

func (p *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.fund == "" {
		return errorf("Error: -fund is required.")
	}
	if f.NArg() == 0 {
		return errorf("Error: at least one table file is required.")
	}

	ledger, err := loadLedger(p.fund)
	if err != nil {
		return errorf("Error: could not load fund %q: %v", p.fund, err)
	}

	var imported int
	var diags []fundsight.Diagnostic
	for _, file := range f.Args() {
		tables, err := readTables(file, p.page)
		if err != nil {
			return errorf("Error reading %q: %v", file, err)
		}
		for _, table := range tables {
			txs, tableDiags, err := fundsight.ParseTable(table, *currency)
			if err != nil {
				return errorf("Error: %q is malformed: %v", file, err)
			}
			diags = append(diags, tableDiags...)
			if err := ledger.Append(txs...); err != nil {
				return errorf("Error appending transactions from %q: %v", file, err)
			}
			imported += len(txs)
		}
	}

	if err := saveLedger(ledger); err != nil {
		return errorf("Error saving fund %q: %v", p.fund, err)
	}

	fmt.Printf("Imported %d transactions into %q with %d warnings.\n", imported, p.fund, len(diags))
	if len(diags) > 0 {
		printMarkdown(renderer.DiagnosticsMarkdown(diags))
	}
	return subcommands.ExitSuccess
}

// readTables reads one file into raw tables, dispatching on the extension.
func readTables(file string, page int) ([]fundsight.RawTable, error) {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".xlsx":
		r, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return xlsx.ImportTables(r)
	default:
		table, err := readCSVTable(file)
		if err != nil {
			return nil, err
		}
		table.Page = page
		table.Number = 1
		return []fundsight.RawTable{table}, nil
	}
}

func readCSVTable(file string) (fundsight.RawTable, error) {
	r, err := os.Open(file)
	if err != nil {
		return fundsight.RawTable{}, err
	}
	defer r.Close()

	// Tolerate ragged rows here: the parser reports them as structural
	// errors with the row index, which is more useful than a csv position.
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return fundsight.RawTable{}, err
	}
	if len(records) == 0 {
		return fundsight.RawTable{}, fmt.Errorf("no header row")
	}
	return fundsight.RawTable{Header: records[0], Rows: records[1:]}, nil
}
