// Package cli holds the roster command tree: the API server, schema migration and
// the dashboard client commands.
package cli

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"roster/internal/platform/config"
	"roster/internal/platform/logger"
)

// RootOptions holds global flags and the resolved configuration shared by every command.
type RootOptions struct {
	Format string // "text" | "json"

	Config config.Config
	Logger *slog.Logger

	// getenv lets tests supply configuration without touching the process environment.
	getenv func(string) string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the roster command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Employee records, attendance and reporting",
		Long: `roster serves the employee records API and drives it from the terminal.

Configuration comes from ROSTER_* environment variables; see "roster serve --help".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			cfg, err := config.Load(opts.getenv)
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			opts.Config = cfg
			opts.Logger = logger.NewWithWriter(cmd.ErrOrStderr(), cfg.Log)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewDashboardCommand(opts))

	return cmd
}
