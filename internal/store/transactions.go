package store

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerbook-dev/ledgerbook/internal/model"
)

// TransactionDetail joins a transaction with display fields for reports.
type TransactionDetail struct {
	model.Transaction
	AccountName  string
	UserFullName string
}

// CreateTransaction appends a transaction record and returns its ID.
func (q *queries) CreateTransaction(ctx context.Context, tx model.Transaction) (int64, error) {
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO transactions (date, concept, amount, kind, account_id, username)
		VALUES (?, ?, ?, ?, ?, ?)`,
		tx.Date.UTC().Format(time.RFC3339), tx.Concept, tx.Amount.String(),
		string(tx.Kind), tx.AccountID, tx.Username)
	if err != nil {
		return 0, fmt.Errorf("inserting transaction: %w", err)
	}
	return res.LastInsertId()
}

// CountTransactions returns the total number of recorded transactions.
func (q *queries) CountTransactions(ctx context.Context) (int, error) {
	var n int
	if err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting transactions: %w", err)
	}
	return n, nil
}

// RecentTransactions returns the latest transactions, newest first,
// with the account and acting user resolved for display.
func (q *queries) RecentTransactions(ctx context.Context, limit int) ([]TransactionDetail, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT t.id, t.date, t.concept, t.amount, t.kind, t.account_id, t.username,
		       a.name,
		       COALESCE(u.first_name || ' ' || u.last_name, t.username)
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		LEFT JOIN users u ON u.username = t.username
		ORDER BY t.date DESC, t.id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying transactions: %w", err)
	}
	defer rows.Close()

	var details []TransactionDetail
	for rows.Next() {
		var (
			d      TransactionDetail
			date   string
			amount string
			kind   string
		)
		if err := rows.Scan(&d.ID, &date, &d.Concept, &amount, &kind,
			&d.AccountID, &d.Username, &d.AccountName, &d.UserFullName); err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}
		d.Date, err = time.Parse(time.RFC3339, date)
		if err != nil {
			return nil, fmt.Errorf("parsing transaction date %q: %w", date, err)
		}
		d.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("parsing transaction amount %q: %w", amount, err)
		}
		d.Kind = model.TransactionKind(kind)
		details = append(details, d)
	}
	return details, rows.Err()
}
