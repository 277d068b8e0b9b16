package ledger

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ledgerbook-dev/ledgerbook/internal/model"
)

// reader is the slice of the store the aggregator needs. Both the store
// and its transactions satisfy it, so the period close can aggregate
// inside its own transaction.
type reader interface {
	AccountsByCategory(ctx context.Context, category model.Category) ([]model.Account, error)
	AccumulatedResults(ctx context.Context) (decimal.Decimal, error)
}

// AccountBalance is one line of a report section, in insertion order.
type AccountBalance struct {
	Name    string
	Balance decimal.Decimal
}

// BalanceSheet is the derived statement of financial position. Nothing
// here is stored; every call recomputes from account balances.
type BalanceSheet struct {
	CurrentAssets         []AccountBalance
	NonCurrentAssets      []AccountBalance
	CurrentLiabilities    []AccountBalance
	NonCurrentLiabilities []AccountBalance
	CapitalAndReserves    []AccountBalance

	TotalCurrentAssets      decimal.Decimal
	TotalNonCurrentAssets   decimal.Decimal
	TotalAssets             decimal.Decimal
	TotalCurrentLiabilities decimal.Decimal
	TotalNonCurrentLiab     decimal.Decimal
	TotalLiabilities        decimal.Decimal

	TotalCapitalAndReserves decimal.Decimal
	AccumulatedResults      decimal.Decimal
	PeriodResult            decimal.Decimal
	TotalEquity             decimal.Decimal
}

// IncomeStatement is the derived profit and loss view for the open
// period.
type IncomeStatement struct {
	Income   []AccountBalance
	Expenses []AccountBalance

	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	PeriodResult  decimal.Decimal // positive = profit, negative = loss
}

// BalanceSheet recomputes the full balance sheet. Never cached: account
// balances can change between calls.
func (s *Service) BalanceSheet(ctx context.Context) (BalanceSheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balanceSheet(ctx, s.store)
}

// IncomeStatement recomputes the income statement for the open period.
func (s *Service) IncomeStatement(ctx context.Context) (IncomeStatement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.incomeStatement(ctx, s.store)
}

func (s *Service) balanceSheet(ctx context.Context, r reader) (BalanceSheet, error) {
	var bs BalanceSheet
	var err error

	if bs.CurrentAssets, bs.TotalCurrentAssets, err = sumCategory(ctx, r, model.CategoryCurrentAsset); err != nil {
		return BalanceSheet{}, err
	}
	if bs.NonCurrentAssets, bs.TotalNonCurrentAssets, err = sumCategory(ctx, r, model.CategoryNonCurrentAsset); err != nil {
		return BalanceSheet{}, err
	}
	if bs.CurrentLiabilities, bs.TotalCurrentLiabilities, err = sumCategory(ctx, r, model.CategoryCurrentLiability); err != nil {
		return BalanceSheet{}, err
	}
	if bs.NonCurrentLiabilities, bs.TotalNonCurrentLiab, err = sumCategory(ctx, r, model.CategoryNonCurrentLiability); err != nil {
		return BalanceSheet{}, err
	}

	capital, totalCapital, err := sumCategory(ctx, r, model.CategoryCapital)
	if err != nil {
		return BalanceSheet{}, err
	}
	reserves, totalReserves, err := sumCategory(ctx, r, model.CategoryReserves)
	if err != nil {
		return BalanceSheet{}, err
	}
	bs.CapitalAndReserves = append(capital, reserves...)
	bs.TotalCapitalAndReserves = totalCapital.Add(totalReserves)

	bs.AccumulatedResults, err = r.AccumulatedResults(ctx)
	if err != nil {
		return BalanceSheet{}, err
	}

	stmt, err := s.incomeStatement(ctx, r)
	if err != nil {
		return BalanceSheet{}, err
	}
	bs.PeriodResult = stmt.PeriodResult

	bs.TotalAssets = bs.TotalCurrentAssets.Add(bs.TotalNonCurrentAssets)
	bs.TotalLiabilities = bs.TotalCurrentLiabilities.Add(bs.TotalNonCurrentLiab)
	bs.TotalEquity = bs.TotalCapitalAndReserves.
		Add(bs.AccumulatedResults).
		Add(bs.PeriodResult)

	return bs, nil
}

func (s *Service) incomeStatement(ctx context.Context, r reader) (IncomeStatement, error) {
	var stmt IncomeStatement
	var err error

	if stmt.Income, stmt.TotalIncome, err = sumCategory(ctx, r, model.CategoryIncome); err != nil {
		return IncomeStatement{}, err
	}
	if stmt.Expenses, stmt.TotalExpenses, err = sumCategory(ctx, r, model.CategoryExpense); err != nil {
		return IncomeStatement{}, err
	}
	stmt.PeriodResult = stmt.TotalIncome.Sub(stmt.TotalExpenses)
	return stmt, nil
}

func sumCategory(ctx context.Context, r reader, category model.Category) ([]AccountBalance, decimal.Decimal, error) {
	accounts, err := r.AccountsByCategory(ctx, category)
	if err != nil {
		return nil, decimal.Zero, err
	}

	balances := make([]AccountBalance, 0, len(accounts))
	total := decimal.Zero
	for _, acct := range accounts {
		balances = append(balances, AccountBalance{Name: acct.Name, Balance: acct.Balance})
		total = total.Add(acct.Balance)
	}
	return balances, total, nil
}
