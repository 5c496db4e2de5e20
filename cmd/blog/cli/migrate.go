package cli

import (
	"fmt"

	"github.com/machaira/blog/internal/app"
	"github.com/machaira/blog/internal/db"
	"github.com/spf13/cobra"
)

func newMigrateCommand(st *state) *cobra.Command {
	var (
		status   bool
		rollback bool
	)

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply, inspect or roll back database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if status && rollback {
				return fmt.Errorf("--status and --rollback cannot be combined")
			}

			log := st.logger("migrate")
			gdb, err := app.OpenDatabase(st.cfg, log)
			if err != nil {
				return err
			}
			defer db.Close(gdb)

			ctx := cmd.Context()
			migrator := db.NewMigrator(gdb, st.cfg.Database.SearchConfig)
			out := cmd.OutOrStdout()

			switch {
			case status:
				statuses, err := migrator.Status(ctx)
				if err != nil {
					return err
				}
				for _, s := range statuses {
					mark := " "
					if s.Applied {
						mark = "X"
					}
					fmt.Fprintf(out, "[%s] %04d %s\n", mark, s.Version, s.Description)
				}
				return nil
			case rollback:
				if err := migrator.Rollback(ctx); err != nil {
					return err
				}
				fmt.Fprintln(out, "Rolled back the last migration.")
				return nil
			default:
				if err := migrator.Migrate(ctx); err != nil {
					return err
				}
				fmt.Fprintln(out, "Database is up to date.")
				return nil
			}
		},
	}

	cmd.Flags().BoolVar(&status, "status", false, "list migrations and whether they are applied")
	cmd.Flags().BoolVar(&rollback, "rollback", false, "roll back the last applied migration")

	return cmd
}
