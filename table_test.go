package fundsight

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		want   TableKind
	}{
		{"capital calls", []string{"Date", "Call Number", "Amount", "Description"}, CapitalCalls},
		{"capital contributions", []string{"Contribution Date", "Amount (USD)", "Purpose"}, CapitalCalls},
		{"distributions", []string{"Distribution Date", "Type", "Amount", "Recallable", "Description"}, Distributions},
		{"dividends", []string{"Date", "Dividend", "Amount"}, Distributions},
		{"adjustments", []string{"Date", "Adjustment Type", "Amount", "Description"}, Adjustments},
		{"rebalance", []string{"Date", "Rebalance", "Amount"}, Adjustments},
		{"no vocabulary overlap", []string{"Notes"}, Unknown},
		{"empty header", []string{}, Unknown},
		{"tie resolves to unknown", []string{"Call", "Distribution"}, Unknown},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(RawTable{Header: tc.header})
			if got != tc.want {
				t.Errorf("Classify(%v) = %v, want %v", tc.header, got, tc.want)
			}
		})
	}
}

// Header normalization must be insensitive to case, punctuation and extra whitespace.
func TestClassifyNormalizesHeaderTokens(t *testing.T) {
	got := Classify(RawTable{Header: []string{" CAPITAL   CALL!! ", "amount:"}})
	if got != CapitalCalls {
		t.Errorf("Classify = %v, want %v", got, CapitalCalls)
	}
}

func TestTableKindString(t *testing.T) {
	if Unknown.String() != "unknown" {
		t.Errorf("Unknown.String() = %q", Unknown.String())
	}
	if CapitalCalls.String() != "capital calls" {
		t.Errorf("CapitalCalls.String() = %q", CapitalCalls.String())
	}
}
