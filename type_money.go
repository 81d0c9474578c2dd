package fundsight

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value in the fund's reporting currency.
// It is a fixed-point decimal, never a binary float, so that aggregating
// thousands of rows cannot accumulate rounding drift.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M builds a Money from any numeric value and a currency code.
func M[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

func newDecimal[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	}
	return decimal.Decimal{}
}

// currency returns the money's currency metadata.
func (m Money) currency() money.Currency {
	// the Money constructor guarantees a non-nil currency.
	return *money.New(0, m.cur).Currency()
}

// String returns the money formatted with its currency symbol and grouping,
// e.g. "$10,400,000.00". A Money with the weak "" currency is formatted as a
// plain decimal.
func (m Money) String() string {
	if m.cur == "" {
		return m.value.String()
	}
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

// Simple wrappers around the decimal value.

func (m Money) Currency() string             { return m.cur }
func (m Money) Equal(n Money) bool           { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool                 { return m.value.IsZero() }
func (m Money) IsPositive() bool             { return m.value.IsPositive() }
func (m Money) IsNegative() bool             { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool        { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool     { return m.value.GreaterThan(n.value) }
func (m Money) Neg() Money                   { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Abs() Money                   { return Money{value: m.value.Abs(), cur: m.cur} }
func (m Money) Decimal() decimal.Decimal     { return m.value }
func (m Money) InexactFloat64() float64      { return m.value.InexactFloat64() }

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// DivRatio returns the unit-less ratio m/n.
func (m Money) DivRatio(n Money) decimal.Decimal { return m.value.Div(n.value) }

// makes the "" currency totally weak.
func cur(a, b Money) string {
	if a.cur == "" {
		return b.cur
	}
	if b.cur == "" {
		return a.cur
	}
	if a.cur != b.cur {
		panic("currency mismatch " + a.cur + "!=" + b.cur)
	}
	return a.cur
}

// SignedString returns the string representation of the money value with a sign.
// 0 is represented as "-".
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

// MarshalJSON implements the json.Marshaler interface for Money.
func (m Money) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("currency", m.cur)
	amount := m.value
	if m.cur != "" {
		amount = amount.Round(int32(m.currency().Fraction))
	}
	w.Append("amount", amount)
	return w.MarshalJSON()
}

// ParseAmount parses a monetary amount string from a fund report cell into a
// Money in the given currency.
//
// It accepts currency symbols, thousands separators, and the accounting
// convention where a parenthesized value like "(1,000)" is negative.
// Anything left over after stripping is an error, never a coercion to zero.
func ParseAmount(s, currency string) (Money, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return Money{}, fmt.Errorf("empty amount")
	}

	negative := false
	if strings.HasPrefix(raw, "(") && strings.HasSuffix(raw, ")") {
		negative = true
		raw = strings.TrimSpace(raw[1 : len(raw)-1])
	}

	// A sign carries meaning only at the edges; "1-2" is residue, not a
	// negative number.
	runes := []rune(raw)
	var b strings.Builder
	for i, r := range runes {
		switch {
		case r >= '0' && r <= '9', r == '.':
			b.WriteRune(r)
		case r == '-', r == '+':
			if i != 0 && i != len(runes)-1 {
				return Money{}, fmt.Errorf("invalid amount %q: misplaced sign", s)
			}
			if r == '-' {
				negative = !negative
			}
		case r == ',', r == '$', r == '€', r == '£', r == ' ':
			// currency symbols and separators carry no value
		default:
			return Money{}, fmt.Errorf("invalid amount %q: unexpected character %q", s, r)
		}
	}
	if b.Len() == 0 {
		return Money{}, fmt.Errorf("invalid amount %q: no digits", s)
	}

	value, err := decimal.NewFromString(b.String())
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if negative {
		value = value.Neg()
	}
	return M(value, currency), nil
}
