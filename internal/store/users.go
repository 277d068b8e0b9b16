package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ledgerbook-dev/ledgerbook/internal/model"
)

// GetUserByUsername looks up a user by login name. The second return
// value is false when the user does not exist.
func (q *queries) GetUserByUsername(ctx context.Context, username string) (model.User, bool, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, first_name, last_name, document, level, active, created_at
		FROM users WHERE username = ?`, username)

	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, false, nil
	}
	if err != nil {
		return model.User{}, false, fmt.Errorf("querying user %s: %w", username, err)
	}
	return u, true, nil
}

// CreateUser inserts a new user and returns its ID.
func (q *queries) CreateUser(ctx context.Context, u model.User) (int64, error) {
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO users (username, password_hash, first_name, last_name, document, level, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.Username, u.PasswordHash, u.FirstName, u.LastName, u.Document,
		int(u.Level), boolToInt(u.Active), u.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("inserting user %s: %w", u.Username, err)
	}
	return res.LastInsertId()
}

// UsernameExists reports whether a login name is taken.
func (q *queries) UsernameExists(ctx context.Context, username string) (bool, error) {
	var n int
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE username = ?`, username).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking username %s: %w", username, err)
	}
	return n > 0, nil
}

// DocumentExists reports whether a document number is registered.
func (q *queries) DocumentExists(ctx context.Context, document string) (bool, error) {
	var n int
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE document = ?`, document).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking document %s: %w", document, err)
	}
	return n > 0, nil
}

// UpdatePassword replaces a user's password hash.
func (q *queries) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	_, err := q.db.ExecContext(ctx, `UPDATE users SET password_hash = ? WHERE id = ?`, passwordHash, userID)
	if err != nil {
		return fmt.Errorf("updating password of user %d: %w", userID, err)
	}
	return nil
}

// SetUserActive toggles the soft-delete flag. Users are never removed.
func (q *queries) SetUserActive(ctx context.Context, userID int64, active bool) error {
	_, err := q.db.ExecContext(ctx, `UPDATE users SET active = ? WHERE id = ?`, boolToInt(active), userID)
	if err != nil {
		return fmt.Errorf("setting active flag of user %d: %w", userID, err)
	}
	return nil
}

// Users returns every user in creation order.
func (q *queries) Users(ctx context.Context) ([]model.User, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, username, password_hash, first_name, last_name, document, level, active, created_at
		FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// CountUsers returns the number of registered users.
func (q *queries) CountUsers(ctx context.Context) (int, error) {
	var n int
	if err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return n, nil
}

func scanUser(row rowScanner) (model.User, error) {
	var (
		u         model.User
		level     int
		active    int
		createdAt string
	)
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.Document, &level, &active, &createdAt); err != nil {
		return model.User{}, err
	}
	var err error
	u.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return model.User{}, fmt.Errorf("parsing user created_at %q: %w", createdAt, err)
	}
	u.Level = model.AccessLevel(level)
	u.Active = active != 0
	return u, nil
}
