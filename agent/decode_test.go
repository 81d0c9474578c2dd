package agent

import (
	"testing"

	"github.com/fundsight/fundsight"
)

func TestDecodeResponse(t *testing.T) {
	raw := `[
		{"kind": "capital-call", "date": "2023-01-15", "amount": 5000000, "type": "Call 1", "description": "Initial closing"},
		{"kind": "distribution", "date": "2023-12-15", "amount": 1500000, "recallable": true},
		{"kind": "adjustment", "date": "2024-01-15", "amount": -500000, "type": "Capital Call Rebalance"}
	]`
	txs, diags, err := DecodeResponse(raw, "USD")
	if err != nil {
		t.Fatal(err)
	}
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(txs) != 3 {
		t.Fatalf("got %d transactions, want 3", len(txs))
	}

	call := txs[0].(fundsight.CapitalCall)
	if call.CallType != "Call 1" || !call.Amount.Equal(fundsight.M(5_000_000, "USD")) {
		t.Errorf("unexpected capital call: %+v", call)
	}
	dist := txs[1].(fundsight.Distribution)
	if !dist.Recallable {
		t.Errorf("distribution should be recallable: %+v", dist)
	}
	adj := txs[2].(fundsight.Adjustment)
	if !adj.ContributionAdjustment || adj.Category != "contribution" {
		t.Errorf("unexpected adjustment classification: %+v", adj)
	}
}

// Models wrap their answer in fences and sometimes in a transactions object.
func TestDecodeResponseTolerance(t *testing.T) {
	raw := "```json\n" + `{"transactions": [{"kind": "capital-call", "date": "2023-01-15", "amount": "$5,000,000"}]}` + "\n```"
	txs, diags, err := DecodeResponse(raw, "USD")
	if err != nil {
		t.Fatal(err)
	}
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(txs) != 1 {
		t.Fatalf("got %d transactions, want 1", len(txs))
	}
	if !txs[0].Value().Equal(fundsight.M(5_000_000, "USD")) {
		t.Errorf("string amount not parsed: %+v", txs[0])
	}
}

func TestDecodeResponseBadItems(t *testing.T) {
	raw := `[
		{"kind": "capital-call", "date": "2023-01-15", "amount": 1000},
		{"kind": "dividend", "date": "2023-01-15", "amount": 1000},
		{"kind": "capital-call", "date": "soon", "amount": 1000},
		{"kind": "capital-call", "date": "2023-01-15", "amount": -1000},
		{"kind": "capital-call", "date": "2023-01-15"}
	]`
	txs, diags, err := DecodeResponse(raw, "USD")
	if err != nil {
		t.Fatal(err)
	}
	if len(txs) != 1 {
		t.Errorf("got %d transactions, want 1", len(txs))
	}
	// One diagnostic per rejected item, with its 1-based position.
	if len(diags) != 4 {
		t.Fatalf("got %d diagnostics, want 4: %v", len(diags), diags)
	}
	wantRows := []int{2, 3, 4, 5}
	for i, d := range diags {
		if d.Row != wantRows[i] {
			t.Errorf("diagnostic %d on row %d, want %d", i, d.Row, wantRows[i])
		}
	}
}

func TestDecodeResponseNotJSON(t *testing.T) {
	if _, _, err := DecodeResponse("I could not find any transactions.", "USD"); err == nil {
		t.Error("prose reply should be an error")
	}
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"[]", "[]"},
		{"```json\n[]\n```", "[]"},
		{"```\n[]\n```", "[]"},
		{"  ```json\n[1, 2]\n```  ", "[1, 2]"},
	}
	for _, tc := range tests {
		if got := stripFences(tc.in); got != tc.want {
			t.Errorf("stripFences(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
