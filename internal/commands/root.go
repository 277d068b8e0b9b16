package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerbook-dev/ledgerbook/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands
// registered.
func NewRootCommand() *cobra.Command {
	var flags rootFlags

	rootCmd := &cobra.Command{
		Use:     "ledgerbook",
		Short:   "Double-entry bookkeeping for small businesses",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "ledgerbook.yaml", "path to the ledgerbook config file")
	rootCmd.PersistentFlags().StringVar(&flags.username, "user", "", "acting username (or LEDGERBOOK_USER)")
	rootCmd.PersistentFlags().StringVar(&flags.password, "password", "", "acting user's password (or LEDGERBOOK_PASSWORD)")

	rootCmd.AddCommand(newInitCommand(&flags))
	rootCmd.AddCommand(newSaleCommand(&flags))
	rootCmd.AddCommand(newPurchaseCommand(&flags))
	rootCmd.AddCommand(newTxCommand(&flags))
	rootCmd.AddCommand(newReportCommand(&flags))
	rootCmd.AddCommand(newClosePeriodCommand(&flags))
	rootCmd.AddCommand(newUserCommand(&flags))
	rootCmd.AddCommand(newBackupCommand(&flags))
	rootCmd.AddCommand(newRestoreCommand(&flags))

	return rootCmd
}

type rootFlags struct {
	configPath string
	username   string
	password   string
}
