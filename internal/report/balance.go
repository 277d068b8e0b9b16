package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerbook-dev/ledgerbook/internal/ledger"
)

// BalanceSheet renders the balance sheet with the accounting identity
// verification section.
func BalanceSheet(bs ledger.BalanceSheet, check ledger.IdentityCheck, now time.Time) string {
	var b strings.Builder
	header(&b, "BALANCE SHEET", now, narrow)

	b.WriteString("ASSETS\n")
	b.WriteString(rule(30, "-"))
	section(&b, "CURRENT ASSETS", bs.CurrentAssets, bs.TotalCurrentAssets)
	section(&b, "NON-CURRENT ASSETS", bs.NonCurrentAssets, bs.TotalNonCurrentAssets)
	fmt.Fprintf(&b, "TOTAL ASSETS: %s\n\n", money(bs.TotalAssets))

	b.WriteString("LIABILITIES\n")
	b.WriteString(rule(30, "-"))
	section(&b, "CURRENT LIABILITIES", bs.CurrentLiabilities, bs.TotalCurrentLiabilities)
	section(&b, "NON-CURRENT LIABILITIES", bs.NonCurrentLiabilities, bs.TotalNonCurrentLiab)
	fmt.Fprintf(&b, "TOTAL LIABILITIES: %s\n\n", money(bs.TotalLiabilities))

	b.WriteString("EQUITY\n")
	b.WriteString(rule(30, "-"))
	for _, line := range bs.CapitalAndReserves {
		fmt.Fprintf(&b, "  %s: %s\n", line.Name, money(line.Balance))
	}
	fmt.Fprintf(&b, "  Accumulated Results: %s\n", money(bs.AccumulatedResults))
	fmt.Fprintf(&b, "  Period Result: %s\n", money(bs.PeriodResult))
	fmt.Fprintf(&b, "TOTAL EQUITY: %s\n\n", money(bs.TotalEquity))

	b.WriteString(rule(narrow, "="))
	b.WriteString("ACCOUNTING IDENTITY VERIFICATION\n")
	b.WriteString(rule(narrow, "="))
	fmt.Fprintf(&b, "ASSETS: %s\n", money(check.TotalAssets))
	fmt.Fprintf(&b, "LIABILITIES + EQUITY: %s\n", money(check.TotalLiabilitiesAndEquity))
	if check.Balanced {
		b.WriteString("OK: the accounting identity is balanced\n")
	} else {
		fmt.Fprintf(&b, "WARNING: the accounting identity is NOT balanced (difference: %s)\n",
			money(check.Difference))
	}

	return b.String()
}

func section(b *strings.Builder, title string, lines []ledger.AccountBalance, total decimal.Decimal) {
	b.WriteString(title + ":\n")
	for _, line := range lines {
		fmt.Fprintf(b, "  %s: %s\n", line.Name, money(line.Balance))
	}
	fmt.Fprintf(b, "  TOTAL %s: %s\n\n", title, money(total))
}
