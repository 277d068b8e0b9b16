package store

import (
	"context"
	"fmt"
	"time"

	"github.com/ledgerbook-dev/ledgerbook/internal/model"
)

// CreateActivity appends one audit record.
func (q *queries) CreateActivity(ctx context.Context, a model.Activity) (int64, error) {
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO activities (username, full_name, kind, description, timestamp)
		VALUES (?, ?, ?, ?, ?)`,
		a.Username, a.FullName, string(a.Kind), a.Description,
		a.Timestamp.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("inserting activity: %w", err)
	}
	return res.LastInsertId()
}

// RecentActivities returns the latest audit records, newest first.
func (q *queries) RecentActivities(ctx context.Context, limit int) ([]model.Activity, error) {
	return q.queryActivities(ctx, `
		SELECT id, username, full_name, kind, description, timestamp
		FROM activities ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
}

// ActivitiesByUser returns the latest audit records of one actor.
func (q *queries) ActivitiesByUser(ctx context.Context, username string, limit int) ([]model.Activity, error) {
	return q.queryActivities(ctx, `
		SELECT id, username, full_name, kind, description, timestamp
		FROM activities WHERE username = ?
		ORDER BY timestamp DESC, id DESC LIMIT ?`, username, limit)
}

// CountActivities returns the total number of audit records.
func (q *queries) CountActivities(ctx context.Context) (int, error) {
	var n int
	if err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM activities`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting activities: %w", err)
	}
	return n, nil
}

func (q *queries) queryActivities(ctx context.Context, query string, args ...any) ([]model.Activity, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying activities: %w", err)
	}
	defer rows.Close()

	var activities []model.Activity
	for rows.Next() {
		var (
			a    model.Activity
			kind string
			ts   string
		)
		if err := rows.Scan(&a.ID, &a.Username, &a.FullName, &kind, &a.Description, &ts); err != nil {
			return nil, fmt.Errorf("scanning activity: %w", err)
		}
		a.Timestamp, err = time.Parse(time.RFC3339, ts)
		if err != nil {
			return nil, fmt.Errorf("parsing activity timestamp %q: %w", ts, err)
		}
		a.Kind = model.ActivityKind(kind)
		activities = append(activities, a)
	}
	return activities, rows.Err()
}
