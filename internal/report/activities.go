package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/ledgerbook-dev/ledgerbook/internal/model"
)

// Activities renders the audit trail. The title distinguishes the
// all-users view from a per-user one.
func Activities(activities []model.Activity, title string, now time.Time) string {
	var b strings.Builder
	header(&b, "ACTIVITY REPORT - "+title, now, wide)

	for _, a := range activities {
		fmt.Fprintf(&b, "User: %s (%s)\n", a.Username, a.FullName)
		fmt.Fprintf(&b, "Date/Time: %s\n", a.Timestamp.Format("02/01/2006 15:04:05"))
		fmt.Fprintf(&b, "Kind: %s\n", a.Kind)
		fmt.Fprintf(&b, "Description: %s\n", a.Description)
		b.WriteString(rule(wide, "-"))
	}

	return b.String()
}
