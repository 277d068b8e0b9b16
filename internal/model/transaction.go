package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind distinguishes the built-in flows from the general one.
type TransactionKind string

const (
	KindSale     TransactionKind = "sale"
	KindPurchase TransactionKind = "purchase"
	KindGeneral  TransactionKind = "general"
)

// Transaction is an immutable monetary fact posted against one account.
// Amount is always positive; the account's nature decides which side of
// the accounting equation it strengthens.
type Transaction struct {
	ID        int64
	Date      time.Time
	Concept   string
	Amount    decimal.Decimal
	Kind      TransactionKind
	AccountID int64
	Username  string
}
