package fundsight

import "testing"

func TestLedgerAppendKeepsChronologicalOrder(t *testing.T) {
	ledger := NewLedger("fund-1")
	err := ledger.Append(
		NewDistribution(D("2023-12-15"), USD(100), "Distribution", false, ""),
		NewCapitalCall(D("2023-01-15"), USD(1000), "", ""),
		NewCapitalCall(D("2023-06-20"), USD(500), "", ""),
	)
	if err != nil {
		t.Fatal(err)
	}
	txs := ledger.Transactions()
	for i := 1; i < len(txs); i++ {
		if txs[i].When().Before(txs[i-1].When()) {
			t.Errorf("transactions out of order at %d: %s before %s", i, txs[i].When(), txs[i-1].When())
		}
	}
}

// Same-date transactions keep their insertion order.
func TestLedgerAppendStableTieBreak(t *testing.T) {
	ledger := NewLedger("fund-1")
	first := NewCapitalCall(D("2023-01-15"), USD(1000), "Call 1", "")
	second := NewCapitalCall(D("2023-01-15"), USD(2000), "Call 2", "")
	if err := ledger.Append(first, second); err != nil {
		t.Fatal(err)
	}
	txs := ledger.Transactions()
	if !txs[0].Equal(first) || !txs[1].Equal(second) {
		t.Error("same-date transactions lost their insertion order")
	}
}

func TestLedgerAppendRejectsInvalid(t *testing.T) {
	ledger := NewLedger("fund-1")
	if err := ledger.Append(NewCapitalCall(D("2023-01-15"), USD(-1), "", "")); err == nil {
		t.Error("negative capital call should be rejected")
	}
	if err := ledger.Append(NewAdjustment(D("2023-01-15"), USD(0), "", "other", false, "")); err == nil {
		t.Error("zero adjustment should be rejected")
	}
	if ledger.Len() != 0 {
		t.Errorf("ledger should stay empty, has %d", ledger.Len())
	}
}

// One invalid transaction rejects the whole batch: the valid siblings must
// not be left behind in the ledger.
func TestLedgerAppendBatchIsAtomic(t *testing.T) {
	ledger := NewLedger("fund-1")
	if err := ledger.Append(NewCapitalCall(D("2023-01-15"), USD(1000), "", "")); err != nil {
		t.Fatal(err)
	}
	err := ledger.Append(
		NewCapitalCall(D("2023-02-15"), USD(500), "", ""),
		NewCapitalCall(D("2023-03-15"), USD(-1), "", ""),
	)
	if err == nil {
		t.Fatal("batch with an invalid transaction should be rejected")
	}
	if ledger.Len() != 1 {
		t.Errorf("ledger has %d transactions after rejected batch, want 1", ledger.Len())
	}
}

func TestLedgerMetrics(t *testing.T) {
	ledger := NewLedger("fund-1")
	if err := ledger.Append(fundScenario()...); err != nil {
		t.Fatal(err)
	}
	report := ledger.Metrics()
	if report.Fund != "fund-1" {
		t.Errorf("report fund = %q, want fund-1", report.Fund)
	}
	if !report.PIC.Equal(USD(10_400_000)) {
		t.Errorf("PIC = %s, want $10,400,000.00", report.PIC)
	}
}
