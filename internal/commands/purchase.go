package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newPurchaseCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "purchase <concept> <amount>",
		Short: "Record a purchase",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("parsing amount %q: %w", args[1], err)
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

			tx, err := e.ledger.RecordPurchase(ctx, args[0], amount, actor)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Purchase recorded: %s - $%s\n", tx.Concept, tx.Amount.StringFixed(2))
			return nil
		},
	}
}
