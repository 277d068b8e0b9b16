package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/ledgerbook-dev/ledgerbook/internal/ledger"
)

// IncomeStatement renders the income statement. Profit, loss and
// break-even are called out explicitly.
func IncomeStatement(stmt ledger.IncomeStatement, now time.Time) string {
	var b strings.Builder
	header(&b, "INCOME STATEMENT", now, narrow)

	b.WriteString("INCOME:\n")
	for _, line := range stmt.Income {
		fmt.Fprintf(&b, "  %s: %s\n", line.Name, money(line.Balance))
	}
	fmt.Fprintf(&b, "  TOTAL INCOME: %s\n\n", money(stmt.TotalIncome))

	b.WriteString("EXPENSES:\n")
	for _, line := range stmt.Expenses {
		fmt.Fprintf(&b, "  %s: %s\n", line.Name, money(line.Balance))
	}
	fmt.Fprintf(&b, "  TOTAL EXPENSES: %s\n\n", money(stmt.TotalExpenses))

	fmt.Fprintf(&b, "PERIOD RESULT: %s\n", money(stmt.PeriodResult))
	switch {
	case stmt.PeriodResult.IsPositive():
		b.WriteString("(PROFIT)\n")
	case stmt.PeriodResult.IsNegative():
		b.WriteString("(LOSS)\n")
	default:
		b.WriteString("(BREAK-EVEN)\n")
	}

	return b.String()
}
