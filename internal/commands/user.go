package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ledgerbook-dev/ledgerbook/internal/model"
	"github.com/ledgerbook-dev/ledgerbook/internal/users"
)

func newUserCommand(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage system users",
	}

	cmd.AddCommand(newUserCreateCommand(flags))
	cmd.AddCommand(newUserListCommand(flags))
	cmd.AddCommand(newUserPasswdCommand(flags))
	cmd.AddCommand(newUserDeactivateCommand(flags))

	return cmd
}

func newUserCreateCommand(flags *rootFlags) *cobra.Command {
	var params struct {
		username  string
		password  string
		firstName string
		lastName  string
		document  string
		admin     bool
	}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new user (administrator only)",
		Args:  cobra.NoArgs,
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

			level := model.LevelWorker
			if params.admin {
				level = model.LevelAdministrator
			}

			user, err := e.users.Create(ctx, users.CreateParams{
				Username:  params.username,
				Password:  params.password,
				FirstName: params.firstName,
				LastName:  params.lastName,
				Document:  params.document,
				Level:     level,
			}, actor)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "User created: %s (%s, %s)\n", user.Username, user.FullName(), user.Level)
			return nil
		},
	}

	cmd.Flags().StringVar(&params.username, "username", "", "username (required)")
	cmd.Flags().StringVar(&params.password, "new-password", "", "initial password (required)")
	cmd.Flags().StringVar(&params.firstName, "first-name", "", "first name (required)")
	cmd.Flags().StringVar(&params.lastName, "last-name", "", "last name (required)")
	cmd.Flags().StringVar(&params.document, "document", "", "identity document (required)")
	cmd.Flags().BoolVar(&params.admin, "admin", false, "grant administrator level")
	for _, f := range []string{"username", "new-password", "first-name", "last-name", "document"} {
		_ = cmd.MarkFlagRequired(f)
	}

	return cmd
}

func newUserListCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(flags)
			if err != nil {
				return err
			}
			defer e.close()

			list, err := e.users.List(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "USERNAME\tNAME\tDOCUMENT\tLEVEL\tACTIVE")
			for _, u := range list {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\n", u.Username, u.FullName(), u.Document, u.Level, u.Active)
			}
			return w.Flush()
		},
	}
}

func newUserPasswdCommand(flags *rootFlags) *cobra.Command {
	var oldPassword, newPassword string

	cmd := &cobra.Command{
		Use:   "passwd <username>",
		Short: "Change a user's password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(flags)
			if err != nil {
				return err
			}
			defer e.close()

			if err := e.users.ChangePassword(cmd.Context(), args[0], oldPassword, newPassword); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Password changed for %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&oldPassword, "old-password", "", "current password (required)")
	cmd.Flags().StringVar(&newPassword, "new-password", "", "new password (required)")
	_ = cmd.MarkFlagRequired("old-password")
	_ = cmd.MarkFlagRequired("new-password")

	return cmd
}

func newUserDeactivateCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate <username>",
		Short: "Deactivate a user (administrator only)",
		Args:  cobra.ExactArgs(1),
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

			if err := e.users.Deactivate(ctx, args[0], actor); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "User deactivated: %s\n", args[0])
			return nil
		},
	}
}
