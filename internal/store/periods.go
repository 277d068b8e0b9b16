package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerbook-dev/ledgerbook/internal/model"
)

// OpenPeriod returns the currently open period. The second return value
// is false when none is open (a fresh or fully closed ledger).
func (q *queries) OpenPeriod(ctx context.Context) (model.Period, bool, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT id, name, start_date, end_date, closed, result
		FROM periods WHERE closed = 0 ORDER BY id LIMIT 1`)

	p, err := scanPeriod(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Period{}, false, nil
	}
	if err != nil {
		return model.Period{}, false, fmt.Errorf("querying open period: %w", err)
	}
	return p, true, nil
}

// CreatePeriod opens a new named period starting at start.
func (q *queries) CreatePeriod(ctx context.Context, name string, start time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO periods (name, start_date, closed, result)
		VALUES (?, ?, 0, '0')`,
		name, start.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("inserting period %s: %w", name, err)
	}
	return res.LastInsertId()
}

// ClosePeriod stamps a period closed with its frozen result and end
// date. The caller is responsible for running this inside the same
// transaction as the balance resets.
func (q *queries) ClosePeriod(ctx context.Context, periodID int64, end time.Time, result decimal.Decimal) error {
	_, err := q.db.ExecContext(ctx, `
		UPDATE periods SET closed = 1, end_date = ?, result = ? WHERE id = ?`,
		end.UTC().Format(time.RFC3339), result.String(), periodID)
	if err != nil {
		return fmt.Errorf("closing period %d: %w", periodID, err)
	}
	return nil
}

// Periods returns all periods, oldest first.
func (q *queries) Periods(ctx context.Context) ([]model.Period, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, name, start_date, end_date, closed, result
		FROM periods ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying periods: %w", err)
	}
	defer rows.Close()

	var periods []model.Period
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, err
		}
		periods = append(periods, p)
	}
	return periods, rows.Err()
}

func scanPeriod(row rowScanner) (model.Period, error) {
	var (
		p      model.Period
		start  string
		end    sql.NullString
		closed int
		result string
	)
	if err := row.Scan(&p.ID, &p.Name, &start, &end, &closed, &result); err != nil {
		return model.Period{}, err
	}

	var err error
	p.StartDate, err = time.Parse(time.RFC3339, start)
	if err != nil {
		return model.Period{}, fmt.Errorf("parsing period start %q: %w", start, err)
	}
	if end.Valid {
		p.EndDate, err = time.Parse(time.RFC3339, end.String)
		if err != nil {
			return model.Period{}, fmt.Errorf("parsing period end %q: %w", end.String, err)
		}
	}
	p.Closed = closed != 0
	p.Result, err = decimal.NewFromString(result)
	if err != nil {
		return model.Period{}, fmt.Errorf("parsing period result %q: %w", result, err)
	}
	return p, nil
}
