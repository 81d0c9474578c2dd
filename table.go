package fundsight

import (
	"strings"
	"unicode"
)

// RawTable is one table segmented out of a fund report by the upstream
// document layout extractor: an ordered header row and ordered body rows.
// It is ephemeral, produced by the extractor and consumed once by ParseTable.
type RawTable struct {
	Page   int // 1-based page the table was found on, 0 if unknown.
	Number int // 1-based index of the table on its page, 0 if unknown.
	Header []string
	Rows   [][]string
}

// TableKind classifies what a RawTable records. It is determined once from
// the header tokens and never changes afterward.
type TableKind int

const (
	Unknown TableKind = iota
	CapitalCalls
	Distributions
	Adjustments
)

func (k TableKind) String() string {
	switch k {
	case CapitalCalls:
		return "capital calls"
	case Distributions:
		return "distributions"
	case Adjustments:
		return "adjustments"
	default:
		return "unknown"
	}
}

// Vocabularies used to classify a table from its header tokens.
var (
	capitalCallVocab  = []string{"call", "calls", "capital", "contribution", "contributions", "drawdown", "paid"}
	distributionVocab = []string{"distribution", "distributions", "return", "dividend", "dividends", "recallable", "proceeds"}
	adjustmentVocab   = []string{"adjustment", "adjustments", "rebalance", "recalled", "clawback", "reversal"}
)

// Classify determines the kind of a raw table by scoring its normalized
// header tokens against the three vocabularies. The vocabulary with the
// highest overlap wins; ties and zero overlap both resolve to Unknown.
//
// An Unknown table produces zero transactions and a diagnostic rather than a
// guess: a wrong guess silently corrupts downstream financial totals, which
// is strictly worse than dropping the table.
func Classify(t RawTable) TableKind {
	tokens := headerTokens(t.Header)

	call := overlap(tokens, capitalCallVocab)
	dist := overlap(tokens, distributionVocab)
	adj := overlap(tokens, adjustmentVocab)

	best, kind := call, CapitalCalls
	if dist > best {
		best, kind = dist, Distributions
	}
	if adj > best {
		best, kind = adj, Adjustments
	}

	if best == 0 {
		return Unknown
	}
	// A tie between two vocabularies is as good as no signal.
	ties := 0
	for _, score := range []int{call, dist, adj} {
		if score == best {
			ties++
		}
	}
	if ties > 1 {
		return Unknown
	}
	return kind
}

// headerTokens normalizes the header cells (case-fold, strip punctuation,
// collapse whitespace) and returns the set of distinct tokens.
func headerTokens(header []string) map[string]bool {
	tokens := make(map[string]bool)
	for _, cell := range header {
		for _, tok := range tokenize(cell) {
			tokens[tok] = true
		}
	}
	return tokens
}

// tokenize splits a header cell into lower-case alphanumeric tokens.
func tokenize(cell string) []string {
	return strings.FieldsFunc(strings.ToLower(cell), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func overlap(tokens map[string]bool, vocab []string) int {
	n := 0
	for _, word := range vocab {
		if tokens[word] {
			n++
		}
	}
	return n
}
