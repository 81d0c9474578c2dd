package fundsight

import "testing"

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want Money
	}{
		{"$5,000,000", USD(5_000_000)},
		{"3,000,000.00", USD(3_000_000)},
		{"1234.56", USD(1234.56)},
		{"(1,234.56)", USD(-1234.56)},
		{"($500,000)", USD(-500_000)},
		{"-1000", USD(-1000)},
		{"+250", USD(250)},
		{"500-", USD(-500)},
		{"€1,000", M(1000, "EUR")},
		{"£42", M(42, "GBP")},
	}
	for _, tc := range tests {
		got, err := ParseAmount(tc.in, tc.want.Currency())
		if err != nil {
			t.Errorf("ParseAmount(%q) error: %v", tc.in, err)
			continue
		}
		if !got.Equal(tc.want) {
			t.Errorf("ParseAmount(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

// Unparseable amounts must error out, never coerce to zero. A sign inside
// the digits is residue, not arithmetic.
func TestParseAmountRejects(t *testing.T) {
	for _, bad := range []string{"", "   ", "one million", "$", "12.34.56", "N/A", "1-2", "1-2-3", "1+2"} {
		if _, err := ParseAmount(bad, "USD"); err == nil {
			t.Errorf("ParseAmount(%q) should fail", bad)
		}
	}
}

// Formatting a parsed amount and parsing it back must land on the same value.
func TestParseAmountRoundTrip(t *testing.T) {
	for _, in := range []string{
		"$10,400,000.00",
		"-$500,000.00",
		"(1,234.56)",
		"+$100.00",
		"$0.01",
	} {
		first, err := ParseAmount(in, "USD")
		if err != nil {
			t.Fatalf("ParseAmount(%q) error: %v", in, err)
		}
		again, err := ParseAmount(first.String(), "USD")
		if err != nil {
			t.Fatalf("ParseAmount(%q) error: %v", first.String(), err)
		}
		if !again.Equal(first) {
			t.Errorf("round trip of %q: %s != %s", in, again, first)
		}
	}
}

func TestMoneyString(t *testing.T) {
	if got := USD(10_400_000).String(); got != "$10,400,000.00" {
		t.Errorf("String() = %q, want $10,400,000.00", got)
	}
	if got := USD(-500_000).String(); got != "-$500,000.00" {
		t.Errorf("String() = %q, want -$500,000.00", got)
	}
}

func TestMoneyArithmetic(t *testing.T) {
	sum := USD(100).Add(USD(250)).Sub(USD(50))
	if !sum.Equal(USD(300)) {
		t.Errorf("100 + 250 - 50 = %s, want $300.00", sum)
	}
	// The empty currency is weak: it adopts the other operand's currency.
	zero := Money{}
	if got := zero.Add(USD(10)); got.Currency() != "USD" {
		t.Errorf("zero-value add kept currency %q, want USD", got.Currency())
	}
}

func TestMoneyCurrencyMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("adding USD and EUR should panic")
		}
	}()
	USD(1).Add(M(1, "EUR"))
}

func TestMoneyDivRatio(t *testing.T) {
	ratio := USD(4_000_000).DivRatio(USD(10_400_000))
	if got := ratio.Round(4).String(); got != "0.3846" {
		t.Errorf("DivRatio = %s, want 0.3846", got)
	}
}

func TestMoneySignedString(t *testing.T) {
	tests := []struct {
		in   Money
		want string
	}{
		{USD(100), "+$100.00"},
		{USD(-100), "-$100.00"},
		{USD(0), "-"},
	}
	for _, tc := range tests {
		if got := tc.in.SignedString(); got != tc.want {
			t.Errorf("SignedString(%s) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
