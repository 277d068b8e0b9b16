package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ledgerbook-dev/ledgerbook/internal/model"
)

// GetAccountByCode looks up an account by its unique code. The second
// return value is false when no account exists.
func (q *queries) GetAccountByCode(ctx context.Context, accountCode string) (model.Account, bool, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT id, code, name, category, nature, balance, active
		FROM accounts WHERE code = ?`, accountCode)

	acct, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Account{}, false, nil
	}
	if err != nil {
		return model.Account{}, false, fmt.Errorf("querying account %s: %w", accountCode, err)
	}
	return acct, true, nil
}

// CreateAccount inserts a new account and returns its ID.
func (q *queries) CreateAccount(ctx context.Context, acct model.Account) (int64, error) {
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO accounts (code, name, category, nature, balance, active)
		VALUES (?, ?, ?, ?, ?, ?)`,
		acct.Code, acct.Name, string(acct.Category), string(acct.Nature),
		acct.Balance.String(), boolToInt(acct.Active))
	if err != nil {
		return 0, fmt.Errorf("inserting account %s: %w", acct.Code, err)
	}
	return res.LastInsertId()
}

// AddToBalance adds a signed delta to an account's running balance.
func (q *queries) AddToBalance(ctx context.Context, accountID int64, delta decimal.Decimal) error {
	row := q.db.QueryRowContext(ctx, `SELECT balance FROM accounts WHERE id = ?`, accountID)
	var raw string
	if err := row.Scan(&raw); err != nil {
		return fmt.Errorf("reading balance of account %d: %w", accountID, err)
	}
	balance, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("parsing balance of account %d: %w", accountID, err)
	}

	_, err = q.db.ExecContext(ctx, `UPDATE accounts SET balance = ? WHERE id = ?`,
		balance.Add(delta).String(), accountID)
	if err != nil {
		return fmt.Errorf("updating balance of account %d: %w", accountID, err)
	}
	return nil
}

// AccountsByCategory returns the accounts of one category in insertion
// order, which keeps reports deterministic.
func (q *queries) AccountsByCategory(ctx context.Context, category model.Category) ([]model.Account, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, code, name, category, nature, balance, active
		FROM accounts WHERE category = ? ORDER BY id`, string(category))
	if err != nil {
		return nil, fmt.Errorf("querying accounts of category %s: %w", category, err)
	}
	defer rows.Close()
	return collectAccounts(rows)
}

// AllAccounts returns every account in insertion order.
func (q *queries) AllAccounts(ctx context.Context) ([]model.Account, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, code, name, category, nature, balance, active
		FROM accounts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying accounts: %w", err)
	}
	defer rows.Close()
	return collectAccounts(rows)
}

// ResetPeriodAccounts zeroes every income and expense balance. Called
// only from the period close, inside its transaction.
func (q *queries) ResetPeriodAccounts(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, `
		UPDATE accounts SET balance = '0' WHERE category IN (?, ?)`,
		string(model.CategoryIncome), string(model.CategoryExpense))
	if err != nil {
		return fmt.Errorf("resetting period accounts: %w", err)
	}
	return nil
}

// DeactivateAccount soft-deletes an account. Accounts are never removed.
func (q *queries) DeactivateAccount(ctx context.Context, accountCode string) error {
	_, err := q.db.ExecContext(ctx, `UPDATE accounts SET active = 0 WHERE code = ?`, accountCode)
	if err != nil {
		return fmt.Errorf("deactivating account %s: %w", accountCode, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (model.Account, error) {
	var (
		acct     model.Account
		category string
		nature   string
		balance  string
		active   int
	)
	if err := row.Scan(&acct.ID, &acct.Code, &acct.Name, &category, &nature, &balance, &active); err != nil {
		return model.Account{}, err
	}
	parsed, err := decimal.NewFromString(balance)
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing balance %q: %w", balance, err)
	}
	acct.Category = model.Category(category)
	acct.Nature = model.Nature(nature)
	acct.Balance = parsed
	acct.Active = active != 0
	return acct, nil
}

func collectAccounts(rows *sql.Rows) ([]model.Account, error) {
	var accounts []model.Account
	for rows.Next() {
		acct, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, acct)
	}
	return accounts, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
