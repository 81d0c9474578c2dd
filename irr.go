package fundsight

import (
	"fmt"
	"math"
	"sort"
)

// Rate is an annualized rate of return that may be undefined: degenerate
// cash-flow timelines have no meaningful internal rate, and reporting 0 or
// NaN in that case would be worse than saying so.
type Rate struct {
	value   float64
	defined bool
}

// NewRate returns a defined rate. The value is a fraction: 0.10 is 10%.
func NewRate(v float64) Rate { return Rate{value: v, defined: true} }

// UndefinedRate returns the explicit "IRR undefined" value.
func UndefinedRate() Rate { return Rate{} }

// Defined reports whether the rate holds a meaningful number.
func (r Rate) Defined() bool { return r.defined }

// Float64 returns the rate as a fraction; zero when undefined.
func (r Rate) Float64() float64 { return r.value }

func (r Rate) String() string {
	if !r.defined {
		return "n/a"
	}
	return fmt.Sprintf("%.2f%%", 100*r.value)
}

// MarshalJSON implements the json.Marshaler interface for Rate.
// An undefined rate serializes as null.
func (r Rate) MarshalJSON() ([]byte, error) {
	if !r.defined {
		return []byte("null"), nil
	}
	return []byte(fmt.Sprintf("%.6f", r.value)), nil
}

// CashFlow is one dated flow on the limited partner side of the fund
// boundary. Negative amounts are capital leaving the LP (calls), positive
// amounts are capital coming back (distributions).
type CashFlow struct {
	Date   Date
	Amount float64
}

// CashFlows builds the cash-flow timeline for the IRR computation by merging
// capital calls (negative), distributions (positive) and sign-adjusted
// adjustments, sorted by date ascending with a stable insertion-order
// tie-break for same-date entries.
func CashFlows(txs []Transaction) []CashFlow {
	flows := make([]CashFlow, 0, len(txs))
	for _, tx := range txs {
		switch v := tx.(type) {
		case CapitalCall:
			flows = append(flows, CashFlow{Date: v.When(), Amount: -v.Amount.InexactFloat64()})
		case Distribution:
			flows = append(flows, CashFlow{Date: v.When(), Amount: v.Amount.InexactFloat64()})
		case Adjustment:
			// Either side, the signed amount is already the LP flow: a
			// negative contribution adjustment is extra capital paid in, a
			// positive distribution adjustment is extra capital returned.
			flows = append(flows, CashFlow{Date: v.When(), Amount: v.Amount.InexactFloat64()})
		}
	}
	sort.SliceStable(flows, func(i, j int) bool { return flows[i].Date.Before(flows[j].Date) })
	return flows
}

// Solver finds the rate at which the net present value of a dated cash-flow
// timeline is zero. Implementations return ok=false when the timeline has no
// meaningful rate, so the root-finding strategy can be swapped or tuned
// without touching the rest of the calculator.
type Solver interface {
	Solve(flows []CashFlow) (rate float64, ok bool)
}

// NewtonSolver finds the IRR with Newton iterations seeded at a fixed initial
// guess, falling back to bisection over a bounded rate range when the
// derivative-based iteration fails to converge within the iteration budget.
type NewtonSolver struct {
	Guess      float64 // initial rate, e.g. 0.10 for 10%.
	Iterations int     // iteration budget for each phase.
	Tolerance  float64 // |npv| below which the rate is accepted.
}

// defaultSolver is the solver used by CalculateAll.
var defaultSolver Solver = NewtonSolver{Guess: 0.10, Iterations: 100, Tolerance: 1e-7}

// Bounded rate range for the bisection fallback: -99.99% to +1000% annually.
const (
	minRate = -0.9999
	maxRate = 10.0
)

// Solve implements the Solver interface.
func (s NewtonSolver) Solve(flows []CashFlow) (float64, bool) {
	if degenerate(flows) {
		return 0, false
	}

	epoch := flows[0].Date

	rate := s.Guess
	for i := 0; i < s.Iterations; i++ {
		value, derivative := npv(flows, epoch, rate)
		if math.Abs(value) < s.Tolerance {
			return rate, true
		}
		if derivative == 0 || math.IsNaN(derivative) || math.IsInf(derivative, 0) {
			break
		}
		next := rate - value/derivative
		if math.IsNaN(next) || next <= minRate || next >= maxRate {
			break
		}
		if math.Abs(next-rate) < 1e-12 {
			rate = next
			break
		}
		rate = next
	}
	if value, _ := npv(flows, epoch, rate); math.Abs(value) < s.Tolerance {
		return rate, true
	}

	return s.bisect(flows, epoch)
}

// bisect searches the bounded rate range for a sign change of the NPV and
// narrows it down within the iteration budget.
func (s NewtonSolver) bisect(flows []CashFlow, epoch Date) (float64, bool) {
	lo, hi := minRate, maxRate
	flo, _ := npv(flows, epoch, lo)
	fhi, _ := npv(flows, epoch, hi)
	if flo*fhi > 0 {
		return 0, false // no sign change in the bounded range
	}
	for i := 0; i < s.Iterations; i++ {
		mid := (lo + hi) / 2
		fmid, _ := npv(flows, epoch, mid)
		if math.Abs(fmid) < s.Tolerance {
			return mid, true
		}
		if flo*fmid < 0 {
			hi = mid
		} else {
			lo, flo = mid, fmid
		}
	}
	return 0, false
}

// npv returns the net present value of the flows discounted at the given
// annual rate, and its derivative with respect to the rate. Time is measured
// in fractional years from the first flow.
func npv(flows []CashFlow, epoch Date, rate float64) (value, derivative float64) {
	for _, flow := range flows {
		years := float64(flow.Date.Sub(epoch)) / 365.0
		discount := math.Pow(1+rate, years)
		value += flow.Amount / discount
		derivative -= years * flow.Amount / (discount * (1 + rate))
	}
	return value, derivative
}

// degenerate reports whether the timeline cannot have a meaningful IRR:
// fewer than two dated flows, or all flows of the same sign.
func degenerate(flows []CashFlow) bool {
	if len(flows) < 2 {
		return true
	}
	var hasNegative, hasPositive bool
	for _, flow := range flows {
		if flow.Amount < 0 {
			hasNegative = true
		}
		if flow.Amount > 0 {
			hasPositive = true
		}
	}
	return !hasNegative || !hasPositive
}

// internalRateOfReturn runs the default solver on an already-built timeline
// and records the breakdown, with entries denominated in the fund currency.
func internalRateOfReturn(flows []CashFlow, currency string) (Rate, Breakdown) {
	bd := Breakdown{
		Metric:  "irr",
		Formula: "IRR = rate r such that NPV(cash flows, r) = 0",
	}
	for _, flow := range flows {
		label := "distribution inflow"
		if flow.Amount < 0 {
			label = "capital outflow"
		}
		bd.Entries = append(bd.Entries, Contribution{Date: flow.Date, Label: label, Amount: M(flow.Amount, currency)})
	}

	rate, ok := defaultSolver.Solve(flows)
	if !ok {
		bd.Notes = append(bd.Notes, "undefined: degenerate or non-convergent cash-flow timeline")
		return UndefinedRate(), bd
	}
	return NewRate(rate), bd
}
