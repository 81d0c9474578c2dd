package fundsight

import (
	"math"
	"testing"
)

func TestCashFlowsSignsAndOrder(t *testing.T) {
	txs := []Transaction{
		NewDistribution(D("2023-12-15"), USD(1_500_000), "Distribution", false, ""),
		NewCapitalCall(D("2023-01-15"), USD(5_000_000), "Call 1", ""),
		NewAdjustment(D("2024-01-15"), USD(-500_000), "Capital Call Rebalance", "contribution", true, ""),
	}
	flows := CashFlows(txs)
	if len(flows) != 3 {
		t.Fatalf("got %d flows, want 3", len(flows))
	}
	// Sorted ascending by date, with calls negative and distributions positive.
	if flows[0].Date != D("2023-01-15") || flows[0].Amount != -5_000_000 {
		t.Errorf("flow 0 = %+v, want -5,000,000 on 2023-01-15", flows[0])
	}
	if flows[1].Amount != 1_500_000 {
		t.Errorf("flow 1 = %+v, want +1,500,000", flows[1])
	}
	// The adjustment's signed amount is the LP flow as-is.
	if flows[2].Amount != -500_000 {
		t.Errorf("flow 2 = %+v, want -500,000", flows[2])
	}
}

// A single-period doubling of 10% has a closed-form IRR the solver must hit.
func TestSolveExactTwoFlow(t *testing.T) {
	flows := []CashFlow{
		{Date: D("2023-01-01"), Amount: -1000},
		{Date: D("2024-01-01"), Amount: 1100},
	}
	rate, ok := defaultSolver.Solve(flows)
	if !ok {
		t.Fatal("Solve did not converge")
	}
	if math.Abs(rate-0.10) > 1e-6 {
		t.Errorf("rate = %v, want 0.10", rate)
	}
}

func TestSolveMultiFlowResidual(t *testing.T) {
	flows := CashFlows(fundScenario())
	rate, ok := defaultSolver.Solve(flows)
	if !ok {
		t.Fatal("Solve did not converge")
	}
	// The accepted rate must actually zero out the NPV within tolerance.
	value, _ := npv(flows, flows[0].Date, rate)
	if math.Abs(value) >= 1e-6 {
		t.Errorf("npv at solved rate %v = %v, want ~0", rate, value)
	}
	if rate <= minRate || rate >= maxRate {
		t.Errorf("rate %v escaped the bounded range", rate)
	}
}

func TestSolveDegenerateTimelines(t *testing.T) {
	tests := []struct {
		name  string
		flows []CashFlow
	}{
		{"empty", nil},
		{"single flow", []CashFlow{{Date: D("2023-01-01"), Amount: -1000}}},
		{"all outflows", []CashFlow{
			{Date: D("2023-01-01"), Amount: -1000},
			{Date: D("2024-01-01"), Amount: -500},
		}},
		{"all inflows", []CashFlow{
			{Date: D("2023-01-01"), Amount: 1000},
			{Date: D("2024-01-01"), Amount: 500},
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, ok := defaultSolver.Solve(tc.flows); ok {
				t.Error("Solve should report no meaningful rate")
			}
		})
	}
}

func TestInternalRateOfReturnUndefined(t *testing.T) {
	rate, bd := internalRateOfReturn(nil, "USD")
	if rate.Defined() {
		t.Error("rate should be undefined for an empty timeline")
	}
	if rate.String() != "n/a" {
		t.Errorf("undefined rate string = %q, want n/a", rate)
	}
	if len(bd.Notes) == 0 {
		t.Error("undefined IRR should be annotated in the breakdown")
	}
}

func TestRateString(t *testing.T) {
	if got := NewRate(0.1234).String(); got != "12.34%" {
		t.Errorf("NewRate(0.1234).String() = %q, want 12.34%%", got)
	}
}
