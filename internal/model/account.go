package model

import "github.com/shopspring/decimal"

// Category classifies accounts into the 8 fixed ledger groupings.
type Category string

const (
	CategoryCurrentAsset        Category = "current-asset"
	CategoryNonCurrentAsset     Category = "non-current-asset"
	CategoryCurrentLiability    Category = "current-liability"
	CategoryNonCurrentLiability Category = "non-current-liability"
	CategoryCapital             Category = "capital"
	CategoryReserves            Category = "reserves"
	CategoryIncome              Category = "income"
	CategoryExpense             Category = "expense"
)

// Categories returns all valid categories in report order.
func Categories() []Category {
	return []Category{
		CategoryCurrentAsset,
		CategoryNonCurrentAsset,
		CategoryCurrentLiability,
		CategoryNonCurrentLiability,
		CategoryCapital,
		CategoryReserves,
		CategoryIncome,
		CategoryExpense,
	}
}

// Valid reports whether c is one of the 8 fixed categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryCurrentAsset, CategoryNonCurrentAsset,
		CategoryCurrentLiability, CategoryNonCurrentLiability,
		CategoryCapital, CategoryReserves,
		CategoryIncome, CategoryExpense:
		return true
	}
	return false
}

// Nature is the fixed debit/credit polarity of an account.
type Nature string

const (
	NatureDebit  Nature = "debit"
	NatureCredit Nature = "credit"
)

// Nature returns the polarity an account of this category carries.
// Assets and expenses increase on the debit side; everything else on credit.
func (c Category) Nature() Nature {
	switch c {
	case CategoryCurrentAsset, CategoryNonCurrentAsset, CategoryExpense:
		return NatureDebit
	case CategoryCurrentLiability, CategoryNonCurrentLiability,
		CategoryCapital, CategoryReserves, CategoryIncome:
		return NatureCredit
	}
	return ""
}

// Account is a named ledger account with a running balance.
// Nature is derived from Category at creation time and never changes.
type Account struct {
	ID       int64
	Code     string
	Name     string
	Category Category
	Nature   Nature
	Balance  decimal.Decimal
	Active   bool
}
