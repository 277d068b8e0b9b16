package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ledgerbook-dev/ledgerbook/internal/store"
)

func newBackupCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "backup <file>",
		Short: "Write a YAML snapshot of the ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(flags)
			if err != nil {
				return err
			}
			defer e.close()

			state, err := e.store.LoadState(cmd.Context())
			if err != nil {
				return fmt.Errorf("loading ledger state: %w", err)
			}

			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("creating snapshot file: %w", err)
			}
			defer f.Close()

			if err := store.EncodeState(f, state); err != nil {
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("writing snapshot file: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Snapshot written to %s (%d accounts, %d periods)\n",
				args[0], len(state.Accounts), len(state.Periods))
			return nil
		},
	}
}

func newRestoreCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <file>",
		Short: "Replace the ledger with a YAML snapshot",
		Long: "Replace every account, balance and period with the snapshot's\n" +
			"contents. Transactions recorded since the snapshot are discarded.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening snapshot file: %w", err)
			}
			defer f.Close()

			state, err := store.DecodeState(f)
			if err != nil {
				return err
			}

			e, err := openEnv(flags)
			if err != nil {
				return err
			}
			defer e.close()

			ctx := cmd.Context()
			if _, err := e.authenticate(ctx, flags); err != nil {
				return err
			}

			err = e.store.WithTx(ctx, func(tx *store.Tx) error {
				return tx.RestoreState(ctx, state)
			})
			if err != nil {
				return fmt.Errorf("restoring snapshot: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Snapshot restored from %s (%d accounts, %d periods)\n",
				args[0], len(state.Accounts), len(state.Periods))
			return nil
		},
	}
}
