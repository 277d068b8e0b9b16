package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ledgerbook-dev/ledgerbook/internal/ledger"
	"github.com/ledgerbook-dev/ledgerbook/internal/model"
	"github.com/ledgerbook-dev/ledgerbook/internal/report"
)

func newReportCommand(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate reports",
	}

	cmd.AddCommand(newBalanceReportCommand(flags))
	cmd.AddCommand(newIncomeReportCommand(flags))
	cmd.AddCommand(newTransactionsReportCommand(flags))
	cmd.AddCommand(newActivitiesReportCommand(flags))

	return cmd
}

func newBalanceReportCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show the balance sheet with the accounting identity check",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(flags)
			if err != nil {
				return err
			}
			defer e.close()

			bs, err := e.ledger.BalanceSheet(cmd.Context())
			if err != nil {
				fmt.Fprint(cmd.OutOrStdout(), report.Failure("BALANCE SHEET", err, time.Now()))
				return nil
			}
			check := ledger.CheckIdentity(bs)

			fmt.Fprint(cmd.OutOrStdout(), report.BalanceSheet(bs, check, time.Now()))
			return nil
		},
	}
}

func newIncomeReportCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "income",
		Short: "Show the income statement for the open period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(flags)
			if err != nil {
				return err
			}
			defer e.close()

			stmt, err := e.ledger.IncomeStatement(cmd.Context())
			if err != nil {
				fmt.Fprint(cmd.OutOrStdout(), report.Failure("INCOME STATEMENT", err, time.Now()))
				return nil
			}

			fmt.Fprint(cmd.OutOrStdout(), report.IncomeStatement(stmt, time.Now()))
			return nil
		},
	}
}

func newTransactionsReportCommand(flags *rootFlags) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "Show the most recent transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(flags)
			if err != nil {
				return err
			}
			defer e.close()

			details, err := e.store.RecentTransactions(cmd.Context(), limit)
			if err != nil {
				fmt.Fprint(cmd.OutOrStdout(), report.Failure("TRANSACTION REPORT", err, time.Now()))
				return nil
			}

			fmt.Fprint(cmd.OutOrStdout(), report.Transactions(details, time.Now()))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum transactions to show")
	return cmd
}

func newActivitiesReportCommand(flags *rootFlags) *cobra.Command {
	var (
		limit    int
		username string
	)

	cmd := &cobra.Command{
		Use:   "activities",
		Short: "Show the activity log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(flags)
			if err != nil {
				return err
			}
			defer e.close()

			ctx := cmd.Context()
			title := "all users"
			var activities []model.Activity
			if username != "" {
				title = username
				activities, err = e.store.ActivitiesByUser(ctx, username, limit)
			} else {
				activities, err = e.store.RecentActivities(ctx, limit)
			}
			if err != nil {
				fmt.Fprint(cmd.OutOrStdout(), report.Failure("ACTIVITY REPORT", err, time.Now()))
				return nil
			}

			fmt.Fprint(cmd.OutOrStdout(), report.Activities(activities, title, time.Now()))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "maximum activities to show")
	cmd.Flags().StringVar(&username, "username", "", "filter by username")
	return cmd
}
