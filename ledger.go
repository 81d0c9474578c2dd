package fundsight

import (
	"fmt"
	"iter"
	"sort"
)

// Ledger holds the full transaction set for one fund.
//
// Transactions are kept in chronological order; same-date transactions keep
// their insertion order, which is the stable tie-break the IRR cash-flow
// timeline relies on.
//
// The fund identifier is carried alongside the records but is opaque to the
// parsing and metric computations.
type Ledger struct {
	fund         string
	transactions []Transaction
}

// NewLedger creates an empty ledger for the given fund.
func NewLedger(fund string) *Ledger {
	return &Ledger{fund: fund}
}

// Fund returns the fund identifier this ledger belongs to.
func (l *Ledger) Fund() string { return l.fund }

// Len returns the number of transactions in the ledger.
func (l *Ledger) Len() int { return len(l.transactions) }

// Append validates and appends transactions, keeping chronological order with
// a stable insertion-order tie-break for same-date entries.
//
// The batch is all-or-nothing: the whole batch is validated before the ledger
// is touched, so one invalid transaction never leaves its siblings behind.
func (l *Ledger) Append(txs ...Transaction) error {
	for _, tx := range txs {
		if err := tx.Validate(); err != nil {
			return fmt.Errorf("invalid %s transaction: %w", tx.What(), err)
		}
	}
	l.transactions = append(l.transactions, txs...)
	sort.SliceStable(l.transactions, func(i, j int) bool {
		return l.transactions[i].When().Before(l.transactions[j].When())
	})
	return nil
}

// All returns an iterator over all transactions in chronological order.
func (l *Ledger) All() iter.Seq[Transaction] {
	return func(yield func(Transaction) bool) {
		for _, tx := range l.transactions {
			if !yield(tx) {
				return
			}
		}
	}
}

// Transactions returns a copy of the transaction slice in chronological order.
func (l *Ledger) Transactions() []Transaction {
	out := make([]Transaction, len(l.transactions))
	copy(out, l.transactions)
	return out
}

// Metrics computes the full metrics report for this ledger's fund from its
// current transaction set. The report is recomputed fresh on every call.
func (l *Ledger) Metrics() *MetricsReport {
	return CalculateAll(l.fund, l.transactions)
}
