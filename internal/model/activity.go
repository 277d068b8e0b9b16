package model

import "time"

// ActivityKind labels entries in the audit trail.
type ActivityKind string

const (
	ActivityLogin          ActivityKind = "login"
	ActivityLogout         ActivityKind = "logout"
	ActivityCreateUser     ActivityKind = "create-user"
	ActivityChangePassword ActivityKind = "change-password"
	ActivitySale           ActivityKind = "record-sale"
	ActivityPurchase       ActivityKind = "record-purchase"
	ActivityTransaction    ActivityKind = "record-transaction"
	ActivityClosePeriod    ActivityKind = "close-period"
)

// Activity is one append-only audit record. Once written it belongs to
// the system, not to the acting user.
type Activity struct {
	ID          int64
	Username    string
	FullName    string
	Kind        ActivityKind
	Description string
	Timestamp   time.Time
}
