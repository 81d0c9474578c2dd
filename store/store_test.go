package store

import (
	"path/filepath"
	"testing"

	"github.com/fundsight/fundsight"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func usd(v float64) fundsight.Money { return fundsight.M(v, "USD") }
func date(s string) fundsight.Date  { return fundsight.MustParseDate(s) }

func testLedger(t *testing.T, fund string) *fundsight.Ledger {
	t.Helper()
	l := fundsight.NewLedger(fund)
	err := l.Append(
		fundsight.NewCapitalCall(date("2023-01-15"), usd(5_000_000), "Call 1", "Initial closing"),
		fundsight.NewDistribution(date("2023-12-15"), usd(1_500_000), "Return of Capital", true, ""),
		fundsight.NewAdjustment(date("2024-01-15"), usd(-500_000), "Rebalance", "contribution", true, ""),
	)
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ledger := testLedger(t, "fund-1")

	if err := s.SaveLedger(ledger); err != nil {
		t.Fatal(err)
	}
	loaded, err := s.LoadLedger("fund-1")
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Len() != ledger.Len() {
		t.Fatalf("loaded %d transactions, want %d", loaded.Len(), ledger.Len())
	}
	want := ledger.Transactions()
	for i, tx := range loaded.Transactions() {
		if !tx.Equal(want[i]) {
			t.Errorf("transaction %d = %+v, want %+v", i, tx, want[i])
		}
	}
}

func TestSaveLedgerReplaces(t *testing.T) {
	s := newTestStore(t)
	if err := s.SaveLedger(testLedger(t, "fund-1")); err != nil {
		t.Fatal(err)
	}

	// Saving a smaller set must fully replace the previous one.
	smaller := fundsight.NewLedger("fund-1")
	if err := smaller.Append(fundsight.NewCapitalCall(date("2023-01-15"), usd(1000), "", "")); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveLedger(smaller); err != nil {
		t.Fatal(err)
	}
	loaded, err := s.LoadLedger("fund-1")
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Len() != 1 {
		t.Errorf("loaded %d transactions, want 1", loaded.Len())
	}
}

func TestLoadLedgerUnknownFund(t *testing.T) {
	s := newTestStore(t)
	loaded, err := s.LoadLedger("nothing-here")
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Len() != 0 {
		t.Errorf("unknown fund should load empty, got %d transactions", loaded.Len())
	}
}

func TestListFunds(t *testing.T) {
	s := newTestStore(t)
	for _, fund := range []string{"zeta", "alpha"} {
		if err := s.SaveLedger(testLedger(t, fund)); err != nil {
			t.Fatal(err)
		}
	}
	funds, err := s.ListFunds()
	if err != nil {
		t.Fatal(err)
	}
	if len(funds) != 2 || funds[0] != "alpha" || funds[1] != "zeta" {
		t.Errorf("ListFunds = %v, want [alpha zeta]", funds)
	}
}

func TestDeleteFund(t *testing.T) {
	s := newTestStore(t)
	if err := s.SaveLedger(testLedger(t, "fund-1")); err != nil {
		t.Fatal(err)
	}
	n, err := s.DeleteFund("fund-1")
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("deleted %d rows, want 3", n)
	}
	funds, err := s.ListFunds()
	if err != nil {
		t.Fatal(err)
	}
	if len(funds) != 0 {
		t.Errorf("funds after delete = %v, want none", funds)
	}
}
