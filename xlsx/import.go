package xlsx

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/fundsight/fundsight"
)

// ImportTables reads every non-empty sheet of a workbook as one raw table:
// the first row is the header, the rest are data rows. Sheets are numbered in
// workbook order, starting at 1, and recorded as the table's page.
func ImportTables(r io.Reader) ([]fundsight.RawTable, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("cannot open workbook: %w", err)
	}
	defer f.Close()

	var tables []fundsight.RawTable
	for i, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("cannot read sheet %q: %w", sheet, err)
		}
		if len(rows) == 0 {
			continue
		}
		header := rows[0]
		table := fundsight.RawTable{Page: i + 1, Number: 1, Header: header}
		for _, row := range rows[1:] {
			// GetRows drops trailing empty cells, pad back to the header width.
			for len(row) < len(header) {
				row = append(row, "")
			}
			table.Rows = append(table.Rows, row)
		}
		tables = append(tables, table)
	}
	return tables, nil
}
