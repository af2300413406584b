package main

import (
	"fmt"
	"os"
	"time"

	"github.com/propforge/propforge/pkg/replay"
	"github.com/spf13/cobra"
)

// newDBCmd groups the failure database subcommands.
func newDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Manage the failure database",
		Long: `Manage the persisted failure database.

Counterexamples found during test runs are stored with the seed that
regenerates them; the runner replays them at the start of later runs.`,
	}

	cmd.AddCommand(newDBListCmd(), newDBShowCmd(), newDBPruneCmd())
	return cmd
}

// newDBListCmd creates the db list subcommand.
func newDBListCmd() *cobra.Command {
	var filterExpr string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded counterexamples",
		Long: `List recorded counterexamples.

An optional --filter expression narrows the output. The expression
language supports:
  PropertyIs("name"), PropertyContains("part"),
  SeedIs(12345), ValueContains("text"), OlderThan("72h")
combined with && (and), || (or) and ! (not).

Example:
  propforge db list
  propforge db list --filter 'PropertyContains("codec") && OlderThan("168h")'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()
			mgr, err := loadManager()
			if err != nil {
				return err
			}
			store, err := openStore(mgr)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			records, err := store.All()
			if err != nil {
				return fmt.Errorf("failed to list failures: %w", err)
			}

			if filterExpr != "" {
				match, err := compileFilter(filterExpr)
				if err != nil {
					return err
				}
				filtered := records[:0]
				for _, rec := range records {
					if match(rec) {
						filtered = append(filtered, rec)
					}
				}
				records = filtered
			}
			log.Debug().Int("records", len(records)).Msg("listing failures")

			if len(records) == 0 {
				fmt.Println("No recorded counterexamples.")
				return nil
			}
			fmt.Print(renderRecordTable(records, mgr.Settings().Color))
			return nil
		},
	}

	cmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "Filter expression")
	return cmd
}

// newDBShowCmd creates the db show subcommand.
func newDBShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <record-id>",
		Short: "Show one recorded counterexample in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := loadManager()
			if err != nil {
				return err
			}
			store, err := openStore(mgr)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			records, err := store.All()
			if err != nil {
				return fmt.Errorf("failed to read failures: %w", err)
			}
			for _, rec := range records {
				if rec.ID == args[0] {
					fmt.Print(renderRecordDetail(rec, mgr.Settings().Color))
					return nil
				}
			}
			return &replay.NotFoundError{ID: args[0]}
		},
	}
	return cmd
}

// newDBPruneCmd creates the db prune subcommand.
func newDBPruneCmd() *cobra.Command {
	var (
		olderThan time.Duration
		all       bool
	)

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove old counterexample records",
		Long: `Remove counterexample records older than the given age.

Example:
  propforge db prune --older-than 720h
  propforge db prune --all`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !all && olderThan <= 0 {
				return fmt.Errorf("either --older-than or --all is required")
			}

			mgr, err := loadManager()
			if err != nil {
				return err
			}
			store, err := openStore(mgr)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			cutoff := time.Now()
			if !all {
				cutoff = cutoff.Add(-olderThan)
			}
			n, err := store.Prune(cutoff)
			if err != nil {
				return fmt.Errorf("prune failed: %w", err)
			}
			fmt.Fprintf(os.Stdout, "Removed %d record(s).\n", n)
			return nil
		},
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", 0, "Remove records older than this duration")
	cmd.Flags().BoolVar(&all, "all", false, "Remove every record")
	return cmd
}
