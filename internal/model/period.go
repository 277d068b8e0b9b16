package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Period is a named accounting window. At most one period is open at a
// time; closing is one-way and stamps the result and end date.
type Period struct {
	ID        int64
	Name      string
	StartDate time.Time
	EndDate   time.Time // zero while the period is open
	Closed    bool
	Result    decimal.Decimal // populated only at close time
}

// Open reports whether the period is still accepting activity.
func (p Period) Open() bool {
	return !p.Closed
}
