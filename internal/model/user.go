package model

import "time"

// AccessLevel gates which operations a user may invoke.
type AccessLevel int

const (
	LevelWorker        AccessLevel = 1
	LevelAdministrator AccessLevel = 2
)

func (l AccessLevel) String() string {
	switch l {
	case LevelWorker:
		return "worker"
	case LevelAdministrator:
		return "administrator"
	}
	return "unknown"
}

// User is a system account. Users are deactivated, never deleted.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	FirstName    string
	LastName     string
	Document     string
	Level        AccessLevel
	Active       bool
	CreatedAt    time.Time
}

// FullName returns the display name for reports and activity records.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// IsAdmin reports whether the user holds the administrator level.
func (u User) IsAdmin() bool {
	return u.Level == LevelAdministrator
}
