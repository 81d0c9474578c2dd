package agent

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PaesslerAG/jsonpath"

	"github.com/fundsight/fundsight"
)

// DecodeResponse turns the model's raw reply into validated transactions.
// It tolerates markdown code fences and a top-level {"transactions": [...]}
// wrapper, both of which models produce despite instructions. Items that do
// not survive parsing or validation become diagnostics; only an unreadable
// reply as a whole is an error.
func DecodeResponse(raw, currency string) ([]fundsight.Transaction, []fundsight.Diagnostic, error) {
	var jobj any
	if err := json.Unmarshal([]byte(stripFences(raw)), &jobj); err != nil {
		return nil, nil, fmt.Errorf("model response is not JSON: %w", err)
	}

	items := jobj
	if _, ok := items.([]any); !ok {
		// not a top-level array, try the wrapped form
		wrapped, err := jsonpath.Get("$.transactions", jobj)
		if err != nil {
			return nil, nil, fmt.Errorf("model response holds no transaction array")
		}
		items = wrapped
	}
	list, ok := items.([]any)
	if !ok {
		return nil, nil, fmt.Errorf("model response holds no transaction array")
	}

	var txs []fundsight.Transaction
	var diags []fundsight.Diagnostic
	for i, item := range list {
		tx, err := decodeItem(item, currency)
		if err != nil {
			diags = append(diags, fundsight.Diagnostic{
				Row:    i + 1,
				Value:  fmt.Sprintf("%v", item),
				Reason: err.Error(),
			})
			continue
		}
		if err := tx.Validate(); err != nil {
			diags = append(diags, fundsight.Diagnostic{
				Row:    i + 1,
				Value:  fmt.Sprintf("%v", item),
				Reason: err.Error(),
			})
			continue
		}
		txs = append(txs, tx)
	}
	return txs, diags, nil
}

func decodeItem(item any, currency string) (fundsight.Transaction, error) {
	kind, err := itemString(item, "$.kind")
	if err != nil {
		return nil, err
	}
	dateStr, err := itemString(item, "$.date")
	if err != nil {
		return nil, err
	}
	day, err := fundsight.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}
	amount, err := itemAmount(item, currency)
	if err != nil {
		return nil, err
	}

	label, _ := itemString(item, "$.type")
	description, _ := itemString(item, "$.description")

	switch fundsight.TxKind(kind) {
	case fundsight.KindCapitalCall:
		return fundsight.NewCapitalCall(day, amount, label, description), nil
	case fundsight.KindDistribution:
		recallable := false
		if v, err := jsonpath.Get("$.recallable", item); err == nil {
			recallable, _ = v.(bool)
		}
		return fundsight.NewDistribution(day, amount, label, recallable, description), nil
	case fundsight.KindAdjustment:
		category, contribution := fundsight.ClassifyAdjustment(label)
		return fundsight.NewAdjustment(day, amount, label, category, contribution, description), nil
	default:
		return nil, fmt.Errorf("unknown transaction kind %q", kind)
	}
}

func itemString(item any, path string) (string, error) {
	v, err := jsonpath.Get(path, item)
	if err != nil {
		return "", fmt.Errorf("missing %s", strings.TrimPrefix(path, "$."))
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s is not a string: %v", strings.TrimPrefix(path, "$."), v)
	}
	return s, nil
}

// itemAmount accepts a JSON number or, because models sometimes echo the
// report's formatting, a monetary string like "$1,500,000".
func itemAmount(item any, currency string) (fundsight.Money, error) {
	v, err := jsonpath.Get("$.amount", item)
	if err != nil {
		return fundsight.Money{}, fmt.Errorf("missing amount")
	}
	switch a := v.(type) {
	case float64:
		return fundsight.M(a, currency), nil
	case string:
		return fundsight.ParseAmount(a, currency)
	default:
		return fundsight.Money{}, fmt.Errorf("amount is not a number: %v", v)
	}
}

// stripFences removes a surrounding markdown code fence, with or without a
// language tag.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:] // drop the language tag line
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
