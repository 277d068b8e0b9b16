package commands

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newClosePeriodCommand(flags *rootFlags) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "close-period",
		Short: "Close the open accounting period",
		Long: "Close the open period: fold its result into accumulated results,\n" +
			"zero every income and expense balance and open the next period.\n" +
			"This cannot be undone.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
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

			if !yes {
				fmt.Fprint(cmd.OutOrStdout(), "Closing a period is irreversible. Continue? [y/N]: ")
				reader := bufio.NewReader(cmd.InOrStdin())
				answer, _ := reader.ReadString('\n')
				if !strings.EqualFold(strings.TrimSpace(answer), "y") {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}

			result, err := e.ledger.ClosePeriod(ctx, actor)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Period closed with result $%s. A new period is open.\n", result.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "skip the confirmation prompt")
	return cmd
}
