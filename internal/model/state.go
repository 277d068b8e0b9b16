package model

import "github.com/shopspring/decimal"

// LedgerState is the full persisted ledger: every account with its
// balance, the accumulated results carried across closed periods, and
// the per-period metadata. The store must round-trip it losslessly.
type LedgerState struct {
	Accounts           []Account
	AccumulatedResults decimal.Decimal
	Periods            []Period
}
