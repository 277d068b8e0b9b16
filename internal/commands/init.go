package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ledgerbook-dev/ledgerbook/internal/config"
	"github.com/ledgerbook-dev/ledgerbook/internal/ledger"
	"github.com/ledgerbook-dev/ledgerbook/internal/store"
	"github.com/ledgerbook-dev/ledgerbook/internal/users"
	"github.com/ledgerbook-dev/ledgerbook/pkg/logger"
)

func newInitCommand(flags *rootFlags) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new ledgerbook directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runInit(cmd, absDir, name)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "business name (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func runInit(cmd *cobra.Command, dir, name string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	cfg := config.Default(name)
	cfg.Database.Path = filepath.Join(dir, "data", "ledger.db")
	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	log := logger.New(logger.Config{Level: cfg.Logging.Level, Pretty: cfg.Logging.Pretty})

	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()

	userSvc := users.NewService(st, cfg.Security.PasswordMinLength, log)
	admin, err := userSvc.BootstrapAdmin(ctx, users.CreateParams{
		Username:  cfg.Admin.Username,
		Password:  cfg.Admin.Password,
		FirstName: cfg.Admin.FirstName,
		LastName:  cfg.Admin.LastName,
		Document:  cfg.Admin.Document,
	})
	if err != nil {
		return fmt.Errorf("bootstrapping administrator: %w", err)
	}

	ledgerSvc := ledger.NewService(st, log)
	period, err := ledgerSvc.EnsureOpenPeriod(ctx, "Period 1")
	if err != nil {
		return fmt.Errorf("opening first period: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized ledgerbook for %s at %s\n", name, dir)
	fmt.Fprintf(cmd.OutOrStdout(), "Administrator: %s  Open period: %s\n", admin.Username, period.Name)
	return nil
}
