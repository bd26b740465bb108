package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/coolbeans/legigraph/internal/logx"
	"github.com/coolbeans/legigraph/internal/pipeline"
	"github.com/coolbeans/legigraph/pkg/citeparse"
	"github.com/coolbeans/legigraph/pkg/hierarchy"
	"github.com/coolbeans/legigraph/pkg/stats"
)

// referenceparseCmd runs §4.3: parse every reference marker wrapped by
// referenceareas into one or more citation paths, reading and writing the
// referenceparse stage's own directories so later stages never revisit
// the original corpus.
func referenceparseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "referenceparse <us|de>",
		Short: "Parse wrapped citation markers into paths (§4.3)",
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
			requested, _ := cmd.Flags().GetStringSlice("snapshots")
			overwrite, _ := cmd.Flags().GetBool("overwrite")

			inRoot := func(snap string) string { return stageDir(cfg, "referenceareas", j, snap) }
			discovered, err := discoverSnapshots(stageDir(cfg, "referenceareas", j, ""))
			if err != nil {
				return err
			}

			outDir := func(snap string) string { return stageDir(cfg, "referenceparse", j, snap) }
			snapshots := pipeline.Prepare(discovered, requested, overwrite, func(snap string) bool {
				return pathExists(outDir(snap))
			})

			logger := logx.Stage(baseLogger, "referenceparse")

			return pipeline.Run(context.Background(), snapshots, workerCount(cmd), func(_ context.Context, snap string) error {
				itemLog := logx.Item(logger, snap)
				docs, err := loadSnapshotDocuments(inRoot(snap))
				if err != nil {
					return err
				}

				report := stats.NewReport()
				dir := outDir(snap)
				for _, doc := range docs {
					for _, leaf := range doc.Root.Leaves() {
						if leaf.Text == nil {
							continue
						}
						for _, seg := range leaf.Text.Segments {
							marker, ok := seg.(*hierarchy.ReferenceMarker)
							if !ok {
								continue
							}
							if marker.Jurisdiction == hierarchy.JurisdictionDE {
								citeparse.ParseDEMarker(marker, report)
							} else {
								citeparse.ParseUSMarker(marker, doc.ID, report)
							}
						}
					}
					if err := writeDocument(dir, doc); err != nil {
						return err
					}
				}

				if err := flushReport(dir, report); err != nil {
					return err
				}
				itemLog.Info().Int("documents", len(docs)).Int("issues", report.Len()).Msg("parsed citations")
				return nil
			})
		},
	}
	addCommonFlags(cmd)
	return cmd
}
