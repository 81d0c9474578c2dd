package fundsight

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// amountTx is a specialized struct to read a persisted amount in two fields.
type amountTx struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

func (a amountTx) Money() Money {
	return M(a.Amount, a.Currency)
}

// DecodeLedger decodes transactions for one fund from a stream of JSONL data,
// decodes each line into the appropriate transaction struct, and returns a
// chronologically sorted Ledger.
func DecodeLedger(fund string, r io.Reader) (*Ledger, error) {
	ledger := NewLedger(fund)
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		var identifier struct {
			Kind TxKind `json:"kind"`
		}
		if err := json.Unmarshal(lineBytes, &identifier); err != nil {
			return nil, fmt.Errorf("could not identify transaction kind in line %q: %w", string(lineBytes), err)
		}

		var decodedTx Transaction
		switch identifier.Kind {
		case KindCapitalCall:
			var tx CapitalCall
			if err := json.Unmarshal(lineBytes, &tx); err != nil {
				return nil, fmt.Errorf("cannot parse capital call line %q: %w", string(lineBytes), err)
			}
			decodedTx = tx
		case KindDistribution:
			var tx Distribution
			if err := json.Unmarshal(lineBytes, &tx); err != nil {
				return nil, fmt.Errorf("cannot parse distribution line %q: %w", string(lineBytes), err)
			}
			decodedTx = tx
		case KindAdjustment:
			var tx Adjustment
			if err := json.Unmarshal(lineBytes, &tx); err != nil {
				return nil, fmt.Errorf("cannot parse adjustment line %q: %w", string(lineBytes), err)
			}
			decodedTx = tx
		default:
			return nil, fmt.Errorf("unknown transaction kind %q in line %q", identifier.Kind, string(lineBytes))
		}

		if err := ledger.Append(decodedTx); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ledger: %w", err)
	}
	return ledger, nil
}

// EncodeTransaction writes a single transaction as one JSONL line.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("cannot marshal %s transaction: %w", tx.What(), err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("cannot write transaction: %w", err)
	}
	return nil
}

// EncodeLedger writes the whole ledger in canonical JSONL form: one
// transaction per line, in chronological order.
func EncodeLedger(w io.Writer, l *Ledger) error {
	for tx := range l.All() {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}
