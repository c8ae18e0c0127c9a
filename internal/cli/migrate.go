package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create tables and indexes for the configured store",
		Long: `Create the employee and attendance tables (postgres) or collections and
unique indexes (mongo). Safe to run repeatedly. The memory store needs no migration.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := openStores(ctx, rootOpts.Config.Store, rootOpts.Logger)
			if err != nil {
				return fmt.Errorf("migrate %s store: %w", rootOpts.Config.Store.Driver, err)
			}
			if err := st.close(ctx); err != nil {
				return fmt.Errorf("close store: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s store is up to date\n", rootOpts.Config.Store.Driver)
			return nil
		},
	}
}
