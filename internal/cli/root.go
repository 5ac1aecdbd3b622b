// Package cli implements the diyaa command line: the server plus offline
// commands that read and change progress directly.
package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/ImCitizen13/diyaa-al-quran/internal/config"
	"github.com/ImCitizen13/diyaa-al-quran/internal/entrypoint"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	DBPath  string
	DataDir string
	Version string

	// now overrides the clock in tests.
	now func() time.Time
}

// NewRootCommand creates the root command for the diyaa CLI.
func NewRootCommand(version string) *cobra.Command {
	return newRootCommand(&RootOptions{Version: version})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "diyaa",
		Short:         "Diyaa al-Quran - Quran memorization tracker",
		Long:          "Track memorized ayahs, daily goals and streaks, and serve them over HTTP.",
		Version:       opts.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "database path (overrides DATABASE_PATH)")
	cmd.PersistentFlags().StringVar(&opts.DataDir, "data-dir", "", "quran data directory (overrides QURAN_DATA_DIR)")

	// Add subcommands
	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewStatsCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewRestoreCommand(opts))
	cmd.AddCommand(NewResetCommand(opts))
	cmd.AddCommand(NewMemorizeCommand(opts))
	cmd.AddCommand(NewForgetCommand(opts))
	cmd.AddCommand(NewBackupCommand(opts))

	return cmd
}

// loadConfig reads .env, the environment and the global flags.
func (o *RootOptions) loadConfig() *config.Config {
	config.LoadDotEnv()
	cfg := config.NewConfig()
	if o.DBPath != "" {
		cfg.Database.Path = o.DBPath
	}
	if o.DataDir != "" {
		cfg.Quran.DataDir = o.DataDir
	}
	return cfg
}

// openApp opens the shared components. Callers must Close the app.
func (o *RootOptions) openApp(ctx context.Context) (*entrypoint.App, error) {
	var appOpts []entrypoint.Option
	if o.now != nil {
		appOpts = append(appOpts, entrypoint.WithClock(o.now))
	}
	return entrypoint.Open(ctx, o.loadConfig(), appOpts...)
}
