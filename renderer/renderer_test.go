package renderer

import (
	"strings"
	"testing"

	"github.com/fundsight/fundsight"
)

func scenarioReport() *fundsight.MetricsReport {
	txs := []fundsight.Transaction{
		fundsight.NewCapitalCall(date("2023-01-15"), usd(5_000_000), "Call 1", ""),
		fundsight.NewCapitalCall(date("2023-06-20"), usd(3_000_000), "Call 2", ""),
		fundsight.NewDistribution(date("2023-12-15"), usd(1_500_000), "Return of Capital", false, ""),
	}
	return fundsight.CalculateAll("fund-1", txs)
}

func usd(v float64) fundsight.Money { return fundsight.M(v, "USD") }
func date(s string) fundsight.Date  { return fundsight.MustParseDate(s) }

func TestRenderMetrics(t *testing.T) {
	md := RenderMetrics(scenarioReport(), MetricsRenderOptions{})
	for _, want := range []string{
		"# Fund Metrics: fund-1",
		"| Paid-In Capital | $8,000,000.00 |",
		"| Total Distributions | $1,500,000.00 |",
		"| Net Asset Value | $6,500,000.00 |",
		"| DPI | 0.1875 |",
		"Formula: `PIC =",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("rendered metrics missing %q:\n%s", want, md)
		}
	}
}

func TestRenderMetricsSkipBreakdowns(t *testing.T) {
	md := RenderMetrics(scenarioReport(), MetricsRenderOptions{SkipBreakdowns: true})
	if strings.Contains(md, "Formula:") {
		t.Errorf("breakdowns should be skipped:\n%s", md)
	}
	if !strings.Contains(md, "| DPI |") {
		t.Errorf("summary table should still render:\n%s", md)
	}
}

func TestTransactionsMarkdown(t *testing.T) {
	txs := []fundsight.Transaction{
		fundsight.NewCapitalCall(date("2023-01-15"), usd(1000), "Call 1", "Initial closing"),
	}
	md := TransactionsMarkdown(txs)
	if !strings.Contains(md, "| 2023-01-15 | capital-call | $1,000.00 | Initial closing |") {
		t.Errorf("unexpected table:\n%s", md)
	}
	if got := TransactionsMarkdown(nil); !strings.Contains(got, "No transactions.") {
		t.Errorf("empty set should say so:\n%s", got)
	}
}

func TestDiagnosticsMarkdown(t *testing.T) {
	if got := DiagnosticsMarkdown(nil); got != "" {
		t.Errorf("no diagnostics should render empty, got %q", got)
	}
	diags := []fundsight.Diagnostic{{Page: 3, Table: 1, Row: 2, Value: "Christmas 2023", Reason: "unparseable date"}}
	md := DiagnosticsMarkdown(diags)
	if !strings.Contains(md, "Christmas 2023") {
		t.Errorf("diagnostic value missing:\n%s", md)
	}
}

func TestTransaction(t *testing.T) {
	tests := []struct {
		tx   fundsight.Transaction
		want string
	}{
		{fundsight.NewCapitalCall(date("2023-01-15"), usd(1000), "Call 1", ""), "Called $1,000.00 (Call 1)"},
		{fundsight.NewDistribution(date("2023-12-15"), usd(500), "", true, ""), "Distributed $500.00 (recallable)"},
		{fundsight.NewAdjustment(date("2024-01-15"), usd(-250), "Rebalance", "contribution", true, ""), "Adjusted contributions by -$250.00"},
	}
	for _, tc := range tests {
		if got := Transaction(tc.tx); got != tc.want {
			t.Errorf("Transaction = %q, want %q", got, tc.want)
		}
	}
}
