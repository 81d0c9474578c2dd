// Package xlsx reads fund-report workbooks into raw tables and writes fund
// reports back out as Excel workbooks.
package xlsx

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/fundsight/fundsight"
)

const amountFormat = `"$"#,##0.00`

// ExportReport writes a workbook for the ledger's fund: a Summary sheet with
// the key metrics, then one sheet per transaction kind with a TOTAL row.
func ExportReport(w io.Writer, l *fundsight.Ledger) error {
	f := excelize.NewFile()
	defer f.Close()

	report := l.Metrics()

	if err := f.SetSheetName("Sheet1", "Summary"); err != nil {
		return fmt.Errorf("cannot rename summary sheet: %w", err)
	}
	if err := writeSummary(f, report); err != nil {
		return err
	}

	var calls, dists, adjs []fundsight.Transaction
	for tx := range l.All() {
		switch tx.What() {
		case fundsight.KindCapitalCall:
			calls = append(calls, tx)
		case fundsight.KindDistribution:
			dists = append(dists, tx)
		case fundsight.KindAdjustment:
			adjs = append(adjs, tx)
		}
	}
	if err := writeCapitalCalls(f, calls); err != nil {
		return err
	}
	if err := writeDistributions(f, dists); err != nil {
		return err
	}
	if err := writeAdjustments(f, adjs); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("cannot write workbook: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, report *fundsight.MetricsReport) error {
	const sheet = "Summary"
	rows := [][2]string{
		{"Fund", report.Fund},
		{"Paid-In Capital", report.PIC.String()},
		{"Total Distributions", report.TotalDistributions.String()},
		{"Net Asset Value", report.NAV.String()},
		{"DPI", report.DPI.String()},
		{"TVPI", report.TVPI.String()},
		{"RVPI", report.RVPI.String()},
		{"IRR", report.IRR.String()},
	}
	for i, row := range rows {
		if err := f.SetCellValue(sheet, cell(1, i+1), row[0]); err != nil {
			return fmt.Errorf("cannot write summary: %w", err)
		}
		if err := f.SetCellValue(sheet, cell(2, i+1), row[1]); err != nil {
			return fmt.Errorf("cannot write summary: %w", err)
		}
	}
	if err := f.SetColWidth(sheet, "A", "A", 22); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "B", "B", 20)
}

func writeCapitalCalls(f *excelize.File, txs []fundsight.Transaction) error {
	return writeTxSheet(f, "Capital Calls", []string{"Date", "Type", "Amount", "Description"}, 3, txs,
		func(tx fundsight.Transaction) []any {
			call := tx.(fundsight.CapitalCall)
			return []any{call.When().String(), call.CallType, call.Amount.InexactFloat64(), call.Memo()}
		})
}

func writeDistributions(f *excelize.File, txs []fundsight.Transaction) error {
	return writeTxSheet(f, "Distributions", []string{"Date", "Type", "Amount", "Recallable", "Description"}, 3, txs,
		func(tx fundsight.Transaction) []any {
			dist := tx.(fundsight.Distribution)
			recallable := "No"
			if dist.Recallable {
				recallable = "Yes"
			}
			return []any{dist.When().String(), dist.DistributionType, dist.Amount.InexactFloat64(), recallable, dist.Memo()}
		})
}

func writeAdjustments(f *excelize.File, txs []fundsight.Transaction) error {
	return writeTxSheet(f, "Adjustments", []string{"Date", "Type", "Category", "Amount", "Description"}, 4, txs,
		func(tx fundsight.Transaction) []any {
			adj := tx.(fundsight.Adjustment)
			return []any{adj.When().String(), adj.AdjustmentType, adj.Category, adj.Amount.InexactFloat64(), adj.Memo()}
		})
}

// writeTxSheet writes one transaction sheet: a header row, one row per
// transaction, and a TOTAL row summing the amount column (1-based amountCol).
func writeTxSheet(f *excelize.File, sheet string, headers []string, amountCol int, txs []fundsight.Transaction, cells func(fundsight.Transaction) []any) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("cannot create sheet %q: %w", sheet, err)
	}
	for i, h := range headers {
		if err := f.SetCellValue(sheet, cell(i+1, 1), h); err != nil {
			return fmt.Errorf("cannot write %q header: %w", sheet, err)
		}
	}

	var total float64
	row := 2
	for _, tx := range txs {
		for i, v := range cells(tx) {
			if err := f.SetCellValue(sheet, cell(i+1, row), v); err != nil {
				return fmt.Errorf("cannot write %q row %d: %w", sheet, row, err)
			}
		}
		total += tx.Value().InexactFloat64()
		row++
	}
	if err := f.SetCellValue(sheet, cell(1, row), "TOTAL"); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, cell(amountCol, row), total); err != nil {
		return err
	}

	format := amountFormat
	style, err := f.NewStyle(&excelize.Style{CustomNumFmt: &format})
	if err != nil {
		return fmt.Errorf("cannot create amount style: %w", err)
	}
	top, _ := excelize.CoordinatesToCellName(amountCol, 2)
	bottom, _ := excelize.CoordinatesToCellName(amountCol, row)
	if err := f.SetCellStyle(sheet, top, bottom, style); err != nil {
		return fmt.Errorf("cannot style %q amounts: %w", sheet, err)
	}

	last, _ := excelize.ColumnNumberToName(len(headers))
	return f.SetColWidth(sheet, "A", last, 18)
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
