package ledger

import "github.com/shopspring/decimal"

// epsilon tolerates rounding drift in the accounting identity.
var epsilon = decimal.RequireFromString("0.01")

// IdentityCheck is the advisory verification that assets equal
// liabilities plus equity. It only reports; it never blocks a
// transaction, and the single-sided model means sales and purchases can
// legitimately leave the identity unbalanced.
type IdentityCheck struct {
	TotalAssets               decimal.Decimal
	TotalLiabilitiesAndEquity decimal.Decimal
	Difference                decimal.Decimal // absolute imbalance
	Balanced                  bool
}

// CheckIdentity evaluates the accounting identity over a balance sheet.
func CheckIdentity(bs BalanceSheet) IdentityCheck {
	liabilitiesAndEquity := bs.TotalLiabilities.Add(bs.TotalEquity)
	difference := bs.TotalAssets.Sub(liabilitiesAndEquity).Abs()
	return IdentityCheck{
		TotalAssets:               bs.TotalAssets,
		TotalLiabilitiesAndEquity: liabilitiesAndEquity,
		Difference:                difference,
		Balanced:                  difference.LessThan(epsilon),
	}
}
