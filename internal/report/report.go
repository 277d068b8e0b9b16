package report

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

const (
	wide   = 80
	narrow = 60
)

// money renders an amount as "$1,234.50". Display only; arithmetic
// stays in decimal.
func money(d decimal.Decimal) string {
	f, _ := d.Float64()
	return "$" + humanize.FormatFloat("#,###.##", f)
}

func rule(width int, ch string) string {
	return strings.Repeat(ch, width) + "\n"
}

func header(b *strings.Builder, title string, now time.Time, width int) {
	b.WriteString(rule(width, "="))
	b.WriteString(title + "\n")
	b.WriteString("Date: " + now.Format("02/01/2006 15:04") + "\n")
	b.WriteString(rule(width, "="))
	b.WriteString("\n")
}

// Failure renders a report whose generation failed. The error goes into
// the report body instead of aborting the whole report.
func Failure(title string, err error, now time.Time) string {
	var b strings.Builder
	header(&b, title, now, narrow)
	b.WriteString("Error generating report: " + err.Error() + "\n")
	return b.String()
}
