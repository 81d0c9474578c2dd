package fundsight

import (
	"github.com/shopspring/decimal"
)

// ratioPlaces is the scale used to report performance multiples.
const ratioPlaces = 4

// Ratio is a performance multiple (DPI, TVPI, RVPI) that may be undefined
// when the fund has no paid-in capital. An undefined ratio is a typed report
// value, never a division error.
type Ratio struct {
	value   decimal.Decimal
	defined bool
}

// NewRatio returns a defined ratio.
func NewRatio(v decimal.Decimal) Ratio { return Ratio{value: v.Round(ratioPlaces), defined: true} }

// UndefinedRatio returns the explicit "no meaningful number" ratio.
func UndefinedRatio() Ratio { return Ratio{} }

// Defined reports whether the ratio holds a meaningful number.
func (r Ratio) Defined() bool { return r.defined }

// Decimal returns the ratio value; zero when undefined.
func (r Ratio) Decimal() decimal.Decimal { return r.value }

func (r Ratio) String() string {
	if !r.defined {
		return "n/a"
	}
	return r.value.StringFixed(ratioPlaces)
}

// MarshalJSON implements the json.Marshaler interface for Ratio.
// An undefined ratio serializes as null.
func (r Ratio) MarshalJSON() ([]byte, error) {
	if !r.defined {
		return []byte("null"), nil
	}
	return []byte(r.value.StringFixed(ratioPlaces)), nil
}

// Contribution is one transaction's signed contribution to a metric.
type Contribution struct {
	Date   Date
	Label  string // kind plus the transaction's own type label.
	Amount Money  // signed contribution to the metric.
}

// Subtotal is a named intermediate value of a metric computation.
type Subtotal struct {
	Label string
	Value Money
}

// Breakdown records how a metric value was obtained: the formula applied,
// the ordered list of contributing transactions with their signed amounts,
// intermediate subtotals, and any annotations. It lets a caller reconstruct
// and audit the number without re-deriving it.
type Breakdown struct {
	Metric    string
	Formula   string
	Entries   []Contribution
	Subtotals []Subtotal
	Notes     []string
}

// MetricsReport is a snapshot of the six performance metrics for one fund,
// each with its breakdown. It is recomputed fresh from the current
// transaction set on every request, never incrementally maintained.
type MetricsReport struct {
	Fund string

	PIC                Money
	TotalDistributions Money
	NAV                Money
	DPI                Ratio
	TVPI               Ratio
	RVPI               Ratio
	IRR                Rate

	// Breakdowns in fixed order: pic, total-distributions, dpi, nav, tvpi, rvpi, irr.
	Breakdowns []Breakdown
}

// Breakdown returns the breakdown for the named metric, or nil.
func (r *MetricsReport) Breakdown(metric string) *Breakdown {
	for i := range r.Breakdowns {
		if r.Breakdowns[i].Metric == metric {
			return &r.Breakdowns[i]
		}
	}
	return nil
}

const undefinedZeroPIC = "undefined: zero paid-in capital"

// CalculateAll computes all six metrics and their breakdowns for one fund.
//
// It is a pure function of its transaction-set input: calling it twice with
// the same transactions yields identical output, including breakdown
// ordering. No caching happens here; that is the caller's concern.
func CalculateAll(fund string, txs []Transaction) *MetricsReport {
	pic, picBD := paidInCapital(txs)
	td, tdBD := totalDistributions(txs)
	nav, navBD := netAssetValue(pic, td)

	report := &MetricsReport{
		Fund:               fund,
		PIC:                pic,
		TotalDistributions: td,
		NAV:                nav,
	}

	report.DPI = ratioMetric(td, pic)
	report.TVPI = ratioMetric(td.Add(nav), pic)
	report.RVPI = ratioMetric(nav, pic)

	dpiBD := ratioBreakdown("dpi", "DPI = Total Distributions / PIC", td, pic)
	tvpiBD := ratioBreakdown("tvpi", "TVPI = (Total Distributions + NAV) / PIC", td.Add(nav), pic)
	rvpiBD := ratioBreakdown("rvpi", "RVPI = NAV / PIC", nav, pic)

	flows := CashFlows(txs)
	irr, irrBD := internalRateOfReturn(flows, currencyOf(txs))
	report.IRR = irr

	report.Breakdowns = []Breakdown{picBD, tdBD, dpiBD, navBD, tvpiBD, rvpiBD, irrBD}
	return report
}

// paidInCapital sums capital calls and nets out contribution-side
// adjustments: PIC = sum(calls) - sum(contribution adjustments). A clawback
// of over-distributed amounts is recorded as a negative contribution
// adjustment and therefore increases PIC.
func paidInCapital(txs []Transaction) (Money, Breakdown) {
	bd := Breakdown{
		Metric:  "pic",
		Formula: "PIC = sum(capital calls) - sum(contribution adjustments)",
	}
	var calls, adjustments Money
	for _, tx := range txs {
		switch v := tx.(type) {
		case CapitalCall:
			calls = calls.Add(v.Amount)
			bd.Entries = append(bd.Entries, Contribution{Date: v.When(), Label: callLabel(v), Amount: v.Amount})
		case Adjustment:
			if !v.ContributionAdjustment {
				continue
			}
			adjustments = adjustments.Add(v.Amount)
			bd.Entries = append(bd.Entries, Contribution{Date: v.When(), Label: adjustmentLabel(v), Amount: v.Amount.Neg()})
		}
	}
	pic := calls.Sub(adjustments)
	bd.Subtotals = []Subtotal{
		{Label: "capital calls", Value: calls},
		{Label: "contribution adjustments", Value: adjustments},
		{Label: "pic", Value: pic},
	}
	return pic, bd
}

// totalDistributions sums distributions plus non-contribution adjustments
// (refunds of over-called capital). A recallable distribution counts at face
// value: recallability affects disclosure, not the arithmetic, unless a later
// adjustment transaction explicitly reverses it.
func totalDistributions(txs []Transaction) (Money, Breakdown) {
	bd := Breakdown{
		Metric:  "total-distributions",
		Formula: "Total Distributions = sum(distributions) + sum(non-contribution adjustments)",
	}
	var dists, adjustments Money
	for _, tx := range txs {
		switch v := tx.(type) {
		case Distribution:
			dists = dists.Add(v.Amount)
			bd.Entries = append(bd.Entries, Contribution{Date: v.When(), Label: distributionLabel(v), Amount: v.Amount})
		case Adjustment:
			if v.ContributionAdjustment {
				continue
			}
			adjustments = adjustments.Add(v.Amount)
			bd.Entries = append(bd.Entries, Contribution{Date: v.When(), Label: adjustmentLabel(v), Amount: v.Amount})
		}
	}
	total := dists.Add(adjustments)
	bd.Subtotals = []Subtotal{
		{Label: "distributions", Value: dists},
		{Label: "distribution adjustments", Value: adjustments},
		{Label: "total distributions", Value: total},
	}
	return total, bd
}

// netAssetValue is the capital value still held inside the fund. Adjustments
// are already folded into PIC and Total Distributions, so they are not
// counted again here.
func netAssetValue(pic, td Money) (Money, Breakdown) {
	nav := pic.Sub(td)
	bd := Breakdown{
		Metric:  "nav",
		Formula: "NAV = PIC - Total Distributions",
		Subtotals: []Subtotal{
			{Label: "pic", Value: pic},
			{Label: "total distributions", Value: td},
			{Label: "nav", Value: nav},
		},
	}
	if nav.IsNegative() {
		// Possible only if distributions exceed all capital ever called.
		bd.Notes = append(bd.Notes, "anomaly: negative NAV, distributions exceed paid-in capital")
	}
	return nav, bd
}

// currencyOf returns the reporting currency of the transaction set: the
// first non-empty transaction currency.
func currencyOf(txs []Transaction) string {
	for _, tx := range txs {
		if c := tx.Value().Currency(); c != "" {
			return c
		}
	}
	return ""
}

func ratioMetric(numerator, pic Money) Ratio {
	if pic.IsZero() {
		return UndefinedRatio()
	}
	return NewRatio(numerator.DivRatio(pic))
}

func ratioBreakdown(metric, formula string, numerator, pic Money) Breakdown {
	bd := Breakdown{
		Metric:  metric,
		Formula: formula,
		Subtotals: []Subtotal{
			{Label: "numerator", Value: numerator},
			{Label: "pic", Value: pic},
		},
	}
	if pic.IsZero() {
		bd.Notes = append(bd.Notes, undefinedZeroPIC)
	}
	return bd
}

func callLabel(t CapitalCall) string {
	if t.CallType != "" {
		return "capital call: " + t.CallType
	}
	return "capital call"
}

func distributionLabel(t Distribution) string {
	label := "distribution"
	if t.DistributionType != "" {
		label += ": " + t.DistributionType
	}
	if t.Recallable {
		label += " (recallable)"
	}
	return label
}

func adjustmentLabel(t Adjustment) string {
	if t.AdjustmentType != "" {
		return "adjustment: " + t.AdjustmentType
	}
	return "adjustment"
}
