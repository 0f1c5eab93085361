package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// ErrNoMigrations is returned by migrate when the backend has no schema.
var ErrNoMigrations = errors.New("migrations are only available for the postgres backend")

// Migrator applies or rolls back the storage schema.
type Migrator interface {
	Up() error
	Down() error
}

func (r *runner) migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if r.opts.Migrator == nil {
					return ErrNoMigrations
				}
				if err := r.opts.Migrator.Up(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date.")
				return nil
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the last migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if r.opts.Migrator == nil {
					return ErrNoMigrations
				}
				if err := r.opts.Migrator.Down(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Rolled back the last migration.")
				return nil
			},
		},
	)

	return cmd
}
