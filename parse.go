package fundsight

import (
	"fmt"
	"strings"
	"time"
)

// Diagnostic records why a table or one of its rows produced no transaction.
// Diagnostics are values accumulated alongside successful output, never
// errors: a bad row skips that row only, not its siblings.
type Diagnostic struct {
	Page  int    // page of the offending table, 0 if unknown.
	Table int    // table number on the page, 0 if unknown.
	Row   int    // 1-based body row index, 0 for a table-level diagnostic.
	Value string // the offending raw value, if any.
	Reason string
}

func (d Diagnostic) String() string {
	var b strings.Builder
	if d.Page > 0 {
		fmt.Fprintf(&b, "page %d ", d.Page)
		if d.Table > 0 {
			fmt.Fprintf(&b, "table %d ", d.Table)
		}
	}
	if d.Row > 0 {
		fmt.Fprintf(&b, "row %d: ", d.Row)
	}
	b.WriteString(d.Reason)
	if d.Value != "" {
		fmt.Fprintf(&b, " (got %q)", d.Value)
	}
	return b.String()
}

// StructuralError reports a RawTable whose shape violates the extractor
// contract: a body row with a different cell count than its header. Unlike
// messy financial data, this indicates a bug upstream, so it is escalated as
// an error instead of a diagnostic.
type StructuralError struct {
	Row  int // 1-based body row index
	Got  int // cells in the row
	Want int // cells in the header
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("malformed table: row %d has %d cells, header has %d", e.Row, e.Got, e.Want)
}

// Semantic fields a header column can map to.
const (
	fieldDate        = "date"
	fieldAmount      = "amount"
	fieldType        = "type"
	fieldRecallable  = "recallable"
	fieldDescription = "description"
)

// fieldSynonyms maps each semantic field to the header tokens that select it.
// Mapping is by synonym only, never by position: positional inference is the
// most common source of silent misclassification in fund documents with
// inconsistent column ordering.
var fieldSynonyms = map[string][]string{
	fieldDate:        {"date", "day"},
	fieldAmount:      {"amount", "value", "usd", "eur", "total"},
	fieldType:        {"type", "number", "category"},
	fieldRecallable:  {"recallable", "recall"},
	fieldDescription: {"description", "desc", "notes", "purpose", "memo"},
}

// requiredFields lists the fields a table must map for its kind; a table
// missing one is rejected in full with a single diagnostic naming the field.
var requiredFields = []string{fieldDate, fieldAmount}

// mapColumns resolves the header cells to semantic fields. It returns the
// column index per mapped field and the name of the first missing required
// field, if any.
func mapColumns(header []string) (cols map[string]int, missing string) {
	cols = make(map[string]int)
	for _, field := range []string{fieldDate, fieldAmount, fieldType, fieldRecallable, fieldDescription} {
		for idx, cell := range header {
			if matchesField(cell, field) {
				cols[field] = idx
				break
			}
		}
	}
	for _, field := range requiredFields {
		if _, ok := cols[field]; !ok {
			return cols, field
		}
	}
	return cols, ""
}

func matchesField(cell, field string) bool {
	for _, tok := range tokenize(cell) {
		for _, syn := range fieldSynonyms[field] {
			if tok == syn {
				return true
			}
		}
	}
	return false
}

// rowDateFormats are tried in fixed priority order: ISO, US slash, day-first dash.
var rowDateFormats = []string{"2006-01-02", "01/02/2006", "02-01-2006"}

// Plausible fund-lifetime window. A date outside it is treated as a parse
// failure for that format so the next format gets a chance.
const (
	minPlausibleYear = 1970
	maxPlausibleYear = 2100
)

// parseRowDate parses a table cell date, trying each supported format in
// priority order. The first format that parses and yields a plausible
// calendar date wins.
func parseRowDate(s string) (Date, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return Date{}, fmt.Errorf("empty date")
	}
	for _, format := range rowDateFormats {
		on, err := time.Parse(format, raw)
		if err != nil {
			continue
		}
		if y := on.Year(); y < minPlausibleYear || y > maxPlausibleYear {
			continue
		}
		return NewDate(on.Date()), nil
	}
	return Date{}, fmt.Errorf("unrecognized date %q", s)
}

// parseRowBool parses a boolean-like table cell. It accepts yes/no,
// true/false and 1/0, case-insensitive; anything else rejects the row.
func parseRowBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("unrecognized boolean %q", s)
	}
}

// ClassifyAdjustment derives the coarse category and the contribution flag
// from the raw adjustment type label. A label naming the capital call side
// ("capital call rebalance", "contribution clawback") nets against paid-in
// capital; everything else nets into the distribution side.
func ClassifyAdjustment(label string) (category string, contribution bool) {
	l := strings.ToLower(label)
	switch {
	case strings.Contains(l, "capital call"), strings.Contains(l, "contribution"):
		return "contribution", true
	case strings.Contains(l, "distribution"), strings.Contains(l, "recall"):
		return "distribution", false
	default:
		return "other", false
	}
}

// ParseTable classifies a raw table and converts each body row into a
// Transaction in the given reporting currency.
//
// It never returns an error for merely malformed financial data: every row
// either becomes exactly one transaction of the table's kind or appends one
// Diagnostic with the row index, the offending raw value and the reason.
// The only error it returns is a *StructuralError for a table whose rows
// have inconsistent cell counts versus the header.
func ParseTable(t RawTable, currency string) ([]Transaction, []Diagnostic, error) {
	for i, row := range t.Rows {
		if len(row) != len(t.Header) {
			return nil, nil, &StructuralError{Row: i + 1, Got: len(row), Want: len(t.Header)}
		}
	}

	diag := func(row int, value, reason string) Diagnostic {
		return Diagnostic{Page: t.Page, Table: t.Number, Row: row, Value: value, Reason: reason}
	}

	kind := Classify(t)
	if kind == Unknown {
		return nil, []Diagnostic{diag(0, strings.Join(t.Header, " | "), "cannot classify table from header")}, nil
	}

	cols, missing := mapColumns(t.Header)
	if missing != "" {
		return nil, []Diagnostic{diag(0, strings.Join(t.Header, " | "), fmt.Sprintf("%s table is missing required column %q", kind, missing))}, nil
	}

	cell := func(row []string, field string) string {
		idx, ok := cols[field]
		if !ok {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var txs []Transaction
	var diags []Diagnostic
	for i, row := range t.Rows {
		n := i + 1
		if blankRow(row) {
			diags = append(diags, diag(n, "", "empty row"))
			continue
		}

		day, err := parseRowDate(cell(row, fieldDate))
		if err != nil {
			diags = append(diags, diag(n, cell(row, fieldDate), "invalid date"))
			continue
		}
		amount, err := ParseAmount(cell(row, fieldAmount), currency)
		if err != nil {
			diags = append(diags, diag(n, cell(row, fieldAmount), "invalid amount"))
			continue
		}
		label := cell(row, fieldType)
		description := cell(row, fieldDescription)

		var tx Transaction
		switch kind {
		case CapitalCalls:
			tx = NewCapitalCall(day, amount, label, description)
		case Distributions:
			recallable := false
			if raw := cell(row, fieldRecallable); raw != "" {
				recallable, err = parseRowBool(raw)
				if err != nil {
					diags = append(diags, diag(n, raw, "invalid recallable flag"))
					continue
				}
			}
			tx = NewDistribution(day, amount, label, recallable, description)
		case Adjustments:
			category, contribution := ClassifyAdjustment(label)
			tx = NewAdjustment(day, amount, label, category, contribution, description)
		}

		if err := tx.Validate(); err != nil {
			diags = append(diags, diag(n, cell(row, fieldAmount), err.Error()))
			continue
		}
		txs = append(txs, tx)
	}
	return txs, diags, nil
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
