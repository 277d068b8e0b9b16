package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/ledgerbook-dev/ledgerbook/internal/store"
)

// Transactions renders the latest transactions, newest first.
func Transactions(details []store.TransactionDetail, now time.Time) string {
	var b strings.Builder
	header(&b, fmt.Sprintf("TRANSACTION REPORT\nLatest %d transactions", len(details)), now, wide)

	for _, d := range details {
		fmt.Fprintf(&b, "Date: %s\n", d.Date.Format("02/01/2006 15:04"))
		fmt.Fprintf(&b, "Kind: %s\n", d.Kind)
		fmt.Fprintf(&b, "Concept: %s\n", d.Concept)
		fmt.Fprintf(&b, "Amount: %s\n", money(d.Amount))
		fmt.Fprintf(&b, "Account: %s\n", d.AccountName)
		fmt.Fprintf(&b, "User: %s\n", d.UserFullName)
		b.WriteString(rule(wide, "-"))
	}

	return b.String()
}
