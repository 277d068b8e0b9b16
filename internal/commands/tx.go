package commands

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ledgerbook-dev/ledgerbook/internal/model"
)

func newTxCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tx <category> <concept> <amount>",
		Short: "Record a transaction against any account category",
		Long: "Record a transaction against an account of the given category.\n" +
			"The account is created from the concept on first use.\n\n" +
			"Categories: " + categoryList(),
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			category := model.Category(args[0])
			amount, err := decimal.NewFromString(args[2])
			if err != nil {
				return fmt.Errorf("parsing amount %q: %w", args[2], err)
			}

			e, err := openEnv(flags)
			if err != nil {
				return err
			}
			defer e.close()

			ctx := cmd.Context()
			actor, err := e.authenticate(ctx, flags)
			if err != nil {
				return err
			}

			tx, err := e.ledger.RecordGeneral(ctx, category, args[1], amount, actor)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Transaction recorded: %s (%s) - $%s\n", tx.Concept, category, tx.Amount.StringFixed(2))
			return nil
		},
	}
}

func categoryList() string {
	names := make([]string, 0, len(model.Categories()))
	for _, c := range model.Categories() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}
