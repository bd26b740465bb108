package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/coolbeans/legigraph/internal/config"
	"github.com/coolbeans/legigraph/internal/logx"
	"github.com/coolbeans/legigraph/pkg/hierarchy"
	"github.com/coolbeans/legigraph/pkg/lawregistry"
)

// lawnamesCmd builds the §4.1 alias table: one pass over every requested
// snapshot's documents, collecting each document's heading/abbreviation
// strings and their validity windows, written once as a single corpus-wide
// CSV consumed by the referenceareas stage's lawregistry.Build call.
func lawnamesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lawnames <us|de>",
		Short: "Build the corpus-wide law-name alias table (§4.1)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := parseJurisdiction(args[0])
			if err != nil {
				return err
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			requested, err := cmd.Flags().GetStringSlice("snapshots")
			if err != nil {
				return err
			}

			discovered, err := discoverSnapshots(cfg.CorpusRoot(j))
			if err != nil {
				return err
			}
			snapshots := config.ExpandSnapshots(requested, discovered)

			logger := logx.Stage(baseLogger, "lawnames")

			var all []lawregistry.SnapshotDocuments
			for _, snap := range snapshots {
				dir := snapshotDir(cfg, j, snap, false)
				docs, err := loadSnapshotDocuments(dir)
				if err != nil {
					return err
				}
				date, err := parseSnapshotDate(j, snap)
				if err != nil {
					return err
				}
				all = append(all, lawregistry.SnapshotDocuments{Date: date, Documents: docs})
				logx.Item(logger, snap).Info().Int("documents", len(docs)).Msg("scanned snapshot")
			}

			aliases := lawregistry.CollectAliases(all)
			outPath := stageFile(cfg, "lawnames", j, "aliases", "csv")
			if err := writeFileAtomic(outPath, func(w io.Writer) error {
				return lawregistry.WriteAliasCSV(w, aliases)
			}); err != nil {
				return err
			}

			logger.Info().Int("aliases", len(aliases)).Str("out", outPath).Msg("wrote alias table")
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d aliases to %s\n", len(aliases), outPath)
			return nil
		},
	}
	cmd.Flags().StringSlice("snapshots", []string{"all"}, "Snapshot labels to scan, or \"all\"")
	return cmd
}

// loadAliases reloads a previously written lawnames alias table, used by
// the referenceareas stage to rebuild the day's lawregistry.Registry
// without re-scanning the corpus.
func loadAliases(cfg config.Config, j hierarchy.Jurisdiction) ([]lawregistry.Alias, error) {
	path := stageFile(cfg, "lawnames", j, "aliases", "csv")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load alias table (run `legigraph lawnames` first?): %w", err)
	}
	defer f.Close()
	return lawregistry.ReadAliasCSV(f)
}
