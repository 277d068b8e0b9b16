package report

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ledgerbook-dev/ledgerbook/internal/ledger"
	"github.com/ledgerbook-dev/ledgerbook/internal/model"
	"github.com/ledgerbook-dev/ledgerbook/internal/store"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var testTime = time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)

func TestBalanceSheet_Balanced(t *testing.T) {
	bs := ledger.BalanceSheet{
		CurrentAssets:           []ledger.AccountBalance{{Name: "Cash", Balance: dec("5000")}},
		TotalCurrentAssets:      dec("5000"),
		TotalAssets:             dec("5000"),
		CapitalAndReserves:      []ledger.AccountBalance{{Name: "Social Capital", Balance: dec("5000")}},
		TotalCapitalAndReserves: dec("5000"),
		AccumulatedResults:      decimal.Zero,
		PeriodResult:            decimal.Zero,
		TotalEquity:             dec("5000"),
	}
	check := ledger.CheckIdentity(bs)

	out := BalanceSheet(bs, check, testTime)
	assert.Contains(t, out, "BALANCE SHEET")
	assert.Contains(t, out, "Cash: $5,000.00")
	assert.Contains(t, out, "TOTAL ASSETS: $5,000.00")
	assert.Contains(t, out, "Social Capital: $5,000.00")
	assert.Contains(t, out, "TOTAL EQUITY: $5,000.00")
	assert.Contains(t, out, "identity is balanced")
	assert.NotContains(t, out, "NOT balanced")
}

func TestBalanceSheet_ReportsImbalance(t *testing.T) {
	bs := ledger.BalanceSheet{
		PeriodResult: dec("600"),
		TotalEquity:  dec("600"),
	}
	check := ledger.CheckIdentity(bs)

	out := BalanceSheet(bs, check, testTime)
	assert.Contains(t, out, "NOT balanced")
	assert.Contains(t, out, "$600.00")
}

func TestIncomeStatement_ProfitLossBreakEven(t *testing.T) {
	stmt := ledger.IncomeStatement{
		Income:       []ledger.AccountBalance{{Name: "Sales Income", Balance: dec("1000")}},
		Expenses:     []ledger.AccountBalance{{Name: "Purchases Expense", Balance: dec("400")}},
		TotalIncome:   dec("1000"),
		TotalExpenses: dec("400"),
		PeriodResult:  dec("600"),
	}
	out := IncomeStatement(stmt, testTime)
	assert.Contains(t, out, "PERIOD RESULT: $600.00")
	assert.Contains(t, out, "(PROFIT)")

	stmt.PeriodResult = dec("-600")
	assert.Contains(t, IncomeStatement(stmt, testTime), "(LOSS)")

	stmt.PeriodResult = decimal.Zero
	assert.Contains(t, IncomeStatement(stmt, testTime), "(BREAK-EVEN)")
}

func TestTransactions(t *testing.T) {
	details := []store.TransactionDetail{
		{
			Transaction: model.Transaction{
				Date: testTime, Concept: "Sale: Consulting",
				Amount: dec("1000"), Kind: model.KindSale,
			},
			AccountName:  "Sales Income",
			UserFullName: "Root Admin",
		},
	}
	out := Transactions(details, testTime)
	assert.Contains(t, out, "Latest 1 transactions")
	assert.Contains(t, out, "Concept: Sale: Consulting")
	assert.Contains(t, out, "Amount: $1,000.00")
	assert.Contains(t, out, "User: Root Admin")
}

func TestFailure_SubstitutesError(t *testing.T) {
	out := Failure("BALANCE SHEET", errors.New("database is locked"), testTime)
	assert.Contains(t, out, "BALANCE SHEET")
	assert.Contains(t, out, "Error generating report: database is locked")
}

func TestActivities(t *testing.T) {
	activities := []model.Activity{
		{
			Username: "root", FullName: "Root Admin",
			Kind: model.ActivityLogin, Description: "logged in: root",
			Timestamp: testTime,
		},
	}
	out := Activities(activities, "all users", testTime)
	assert.Contains(t, out, "ACTIVITY REPORT - all users")
	assert.Contains(t, out, "User: root (Root Admin)")
	assert.Contains(t, out, "logged in: root")
}
