package store

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// AccumulatedResults returns the running total of all closed-period
// results.
func (q *queries) AccumulatedResults(ctx context.Context) (decimal.Decimal, error) {
	var raw string
	err := q.db.QueryRowContext(ctx, `SELECT accumulated_results FROM ledger WHERE id = 1`).Scan(&raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("reading accumulated results: %w", err)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing accumulated results %q: %w", raw, err)
	}
	return d, nil
}

// AddToAccumulatedResults folds a period result into the running total.
func (q *queries) AddToAccumulatedResults(ctx context.Context, delta decimal.Decimal) error {
	current, err := q.AccumulatedResults(ctx)
	if err != nil {
		return err
	}
	_, err = q.db.ExecContext(ctx, `UPDATE ledger SET accumulated_results = ? WHERE id = 1`,
		current.Add(delta).String())
	if err != nil {
		return fmt.Errorf("updating accumulated results: %w", err)
	}
	return nil
}

// setAccumulatedResults overwrites the running total. Restore-only.
func (q *queries) setAccumulatedResults(ctx context.Context, value decimal.Decimal) error {
	_, err := q.db.ExecContext(ctx, `UPDATE ledger SET accumulated_results = ? WHERE id = 1`,
		value.String())
	if err != nil {
		return fmt.Errorf("setting accumulated results: %w", err)
	}
	return nil
}
