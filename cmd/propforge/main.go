// Package main is the entry point for the propforge CLI. The CLI
// manages the persisted failure database that the property runner
// replays: listing, inspecting and pruning recorded counterexamples.
package main

import (
	"fmt"
	"os"

	"github.com/propforge/propforge/pkg/config"
	"github.com/propforge/propforge/pkg/replay"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Build information, set via ldflags
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global flags
var (
	flagConfigDir string
	flagDatabase  string
	flagVerbose   bool
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Execute runs the root command.
func Execute() error {
	rootCmd := &cobra.Command{
		Use:   "propforge",
		Short: "propforge - property-based testing for Go",
		Long: `propforge is a property-based testing engine for Go: composable
strategies with integrated shrinking, a deterministic seeded runner and
a persisted failure database.

This CLI manages the failure database. Counterexamples recorded during
test runs can be listed, inspected and pruned here.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "Config directory (default: user config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDatabase, "database", "", "Failure database path (overrides settings)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newDBCmd())

	return rootCmd.Execute()
}

// newLogger builds the CLI logger. Debug level only with --verbose.
func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if flagVerbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

// loadManager resolves settings, honoring --config-dir.
func loadManager() (*config.Manager, error) {
	var opts []config.Option
	if flagConfigDir != "" {
		opts = append(opts, config.WithConfigDir(flagConfigDir))
	}
	mgr, err := config.NewManager(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return mgr, nil
}

// openStore opens the failure database, honoring --database.
func openStore(mgr *config.Manager) (*replay.SQLiteStore, error) {
	path := flagDatabase
	if path == "" {
		path = mgr.DatabasePath()
	}
	store, err := replay.OpenSQLite(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open failure database %s: %w", path, err)
	}
	return store, nil
}
