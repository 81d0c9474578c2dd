package renderer

import (
	"fmt"

	"github.com/fundsight/fundsight"
)

// Transaction renders a transaction to a one-line string.
func Transaction(tx fundsight.Transaction) string {
	switch v := tx.(type) {
	case fundsight.CapitalCall:
		if v.CallType != "" {
			return fmt.Sprintf("Called %s (%s)", v.Amount, v.CallType)
		}
		return fmt.Sprintf("Called %s", v.Amount)
	case fundsight.Distribution:
		if v.Recallable {
			return fmt.Sprintf("Distributed %s (recallable)", v.Amount)
		}
		return fmt.Sprintf("Distributed %s", v.Amount)
	case fundsight.Adjustment:
		side := "distributions"
		if v.ContributionAdjustment {
			side = "contributions"
		}
		return fmt.Sprintf("Adjusted %s by %s", side, v.Amount.SignedString())
	default:
		return string(tx.What())
	}
}
