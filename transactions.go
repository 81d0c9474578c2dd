package fundsight

import (
	"encoding/json"
	"errors"
	"fmt"
)

// TxKind is a typed string identifying the kind of a fund transaction.
type TxKind string

// Transaction kinds produced by the table parser.
const (
	KindCapitalCall  TxKind = "capital-call"
	KindDistribution TxKind = "distribution"
	KindAdjustment   TxKind = "adjustment"
)

// Transaction defines the common interface for the three kinds of fund
// transactions. The concrete types form a sealed sum: a transaction is exactly
// one of CapitalCall, Distribution or Adjustment, created once per
// successfully parsed row and never mutated.
type Transaction interface {
	What() TxKind // What returns the kind of the transaction.
	When() Date   // When returns the date on which the transaction occurred.
	Value() Money // Value returns the transaction amount (signed for adjustments).
	Memo() string // Memo returns the free-text description.
	Equal(Transaction) bool
	Validate() error
}

type baseTx struct {
	Kind        TxKind `json:"kind"`
	Date        Date   `json:"date"`
	Description string `json:"description,omitempty"`
}

// What returns the kind of the transaction.
func (t baseTx) What() TxKind { return t.Kind }

// When returns the date of the transaction.
func (t baseTx) When() Date { return t.Date }

// Memo returns the description attached to the transaction.
func (t baseTx) Memo() string { return t.Description }

// MarshalJSON implements the json.Marshaler interface for baseTx.
func (t baseTx) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("kind", t.Kind)
	w.Append("date", t.Date)
	w.Optional("description", t.Description)
	return w.MarshalJSON()
}

func (t baseTx) validate() error {
	if t.Date.IsZero() {
		return errors.New("transaction date is missing")
	}
	return nil
}

// --- CapitalCall ---

// CapitalCall represents capital drawn down from the limited partners.
// Its amount is always positive and counts toward paid-in capital.
type CapitalCall struct {
	baseTx
	CallType string // optional label, e.g. "Call 3" or "Standard Call".
	Amount   Money
}

// NewCapitalCall creates a new CapitalCall transaction.
func NewCapitalCall(day Date, amount Money, callType, description string) CapitalCall {
	return CapitalCall{
		baseTx:   baseTx{Kind: KindCapitalCall, Date: day, Description: description},
		CallType: callType,
		Amount:   amount,
	}
}

// Value returns the called amount.
func (t CapitalCall) Value() Money { return t.Amount }

func (t CapitalCall) Equal(other Transaction) bool {
	o, ok := other.(CapitalCall)
	return ok && t.baseTx == o.baseTx && t.CallType == o.CallType && t.Amount.Equal(o.Amount)
}

// Validate checks the CapitalCall fields. The amount must be strictly positive.
func (t CapitalCall) Validate() error {
	if err := t.baseTx.validate(); err != nil {
		return err
	}
	if !t.Amount.IsPositive() {
		return fmt.Errorf("capital call amount must be positive, got %s", t.Amount)
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface for CapitalCall.
func (t CapitalCall) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseTx)
	w.Optional("callType", t.CallType)
	w.EmbedFrom(t.Amount)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for CapitalCall.
// It handles the custom structure where amount and currency are separate fields.
func (t *CapitalCall) UnmarshalJSON(data []byte) error {
	var temp struct {
		baseTx
		amountTx
		CallType string `json:"callType"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.baseTx = temp.baseTx
	t.CallType = temp.CallType
	t.Amount = temp.Money()
	return nil
}

// --- Distribution ---

// Distribution represents cash returned by the fund to the limited partners.
// Its amount is always positive. A recallable distribution still counts at
// face value toward total distributions: recallability affects disclosure,
// not the arithmetic, unless a later Adjustment explicitly reverses it.
type Distribution struct {
	baseTx
	DistributionType string // e.g. "Return of Capital", "Dividend".
	Recallable       bool
	Amount           Money
}

// NewDistribution creates a new Distribution transaction.
func NewDistribution(day Date, amount Money, distributionType string, recallable bool, description string) Distribution {
	return Distribution{
		baseTx:           baseTx{Kind: KindDistribution, Date: day, Description: description},
		DistributionType: distributionType,
		Recallable:       recallable,
		Amount:           amount,
	}
}

// Value returns the distributed amount.
func (t Distribution) Value() Money { return t.Amount }

func (t Distribution) Equal(other Transaction) bool {
	o, ok := other.(Distribution)
	return ok && t.baseTx == o.baseTx && t.DistributionType == o.DistributionType &&
		t.Recallable == o.Recallable && t.Amount.Equal(o.Amount)
}

// Validate checks the Distribution fields. The amount must be strictly positive.
func (t Distribution) Validate() error {
	if err := t.baseTx.validate(); err != nil {
		return err
	}
	if !t.Amount.IsPositive() {
		return fmt.Errorf("distribution amount must be positive, got %s", t.Amount)
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface for Distribution.
func (t Distribution) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseTx)
	w.Optional("distributionType", t.DistributionType)
	w.Optional("recallable", t.Recallable)
	w.EmbedFrom(t.Amount)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Distribution.
func (t *Distribution) UnmarshalJSON(data []byte) error {
	var temp struct {
		baseTx
		amountTx
		DistributionType string `json:"distributionType"`
		Recallable       bool   `json:"recallable"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.baseTx = temp.baseTx
	t.DistributionType = temp.DistributionType
	t.Recallable = temp.Recallable
	t.Amount = temp.Money()
	return nil
}

// --- Adjustment ---

// Adjustment represents a signed correction to a previous capital call or
// distribution, such as a rebalance or a recalled distribution.
//
// ContributionAdjustment distinguishes the two sides: when true the amount
// nets against paid-in capital (rebalance of a capital call, clawback of
// over-distributed amounts recorded as a negative contribution); when false
// it nets into the distribution side (refund of over-called capital).
type Adjustment struct {
	baseTx
	AdjustmentType         string // raw label from the report, e.g. "Recalled Distribution".
	Category               string // coarse category derived from the label.
	ContributionAdjustment bool
	Amount                 Money // signed
}

// NewAdjustment creates a new Adjustment transaction.
func NewAdjustment(day Date, amount Money, adjustmentType, category string, contribution bool, description string) Adjustment {
	return Adjustment{
		baseTx:                 baseTx{Kind: KindAdjustment, Date: day, Description: description},
		AdjustmentType:         adjustmentType,
		Category:               category,
		ContributionAdjustment: contribution,
		Amount:                 amount,
	}
}

// Value returns the signed adjustment amount.
func (t Adjustment) Value() Money { return t.Amount }

func (t Adjustment) Equal(other Transaction) bool {
	o, ok := other.(Adjustment)
	return ok && t.baseTx == o.baseTx && t.AdjustmentType == o.AdjustmentType &&
		t.Category == o.Category && t.ContributionAdjustment == o.ContributionAdjustment &&
		t.Amount.Equal(o.Amount)
}

// Validate checks the Adjustment fields. The amount is signed but cannot be zero.
func (t Adjustment) Validate() error {
	if err := t.baseTx.validate(); err != nil {
		return err
	}
	if t.Amount.IsZero() {
		return errors.New("adjustment amount cannot be zero")
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface for Adjustment.
func (t Adjustment) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseTx)
	w.Optional("adjustmentType", t.AdjustmentType)
	w.Optional("category", t.Category)
	w.Optional("contributionAdjustment", t.ContributionAdjustment)
	w.EmbedFrom(t.Amount)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Adjustment.
func (t *Adjustment) UnmarshalJSON(data []byte) error {
	var temp struct {
		baseTx
		amountTx
		AdjustmentType         string `json:"adjustmentType"`
		Category               string `json:"category"`
		ContributionAdjustment bool   `json:"contributionAdjustment"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.baseTx = temp.baseTx
	t.AdjustmentType = temp.AdjustmentType
	t.Category = temp.Category
	t.ContributionAdjustment = temp.ContributionAdjustment
	t.Amount = temp.Money()
	return nil
}
