package cli

import (
	"fmt"

	"github.com/machaira/blog/internal/app"
	"github.com/machaira/blog/internal/db"
	"github.com/spf13/cobra"
)

func newCreateSuperUserCommand(st *state) *cobra.Command {
	var username, password, email string

	cmd := &cobra.Command{
		Use:   "createsuperuser",
		Short: "Create or update a staff account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || password == "" {
				return fmt.Errorf("--username and --password are required")
			}

			log := st.logger("superuser")
			gdb, err := app.OpenDatabase(st.cfg, log)
			if err != nil {
				return err
			}
			defer db.Close(gdb)

			if err := db.NewMigrator(gdb, st.cfg.Database.SearchConfig).Migrate(cmd.Context()); err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}

			created, err := db.EnsureUser(gdb, username, password, email)
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "Superuser %s created.\n", username)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Superuser %s updated.\n", username)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "login name")
	cmd.Flags().StringVar(&password, "password", "", "password, stored as a bcrypt hash")
	cmd.Flags().StringVar(&email, "email", "", "e-mail address")

	return cmd
}
