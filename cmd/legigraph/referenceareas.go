package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/coolbeans/legigraph/internal/config"
	"github.com/coolbeans/legigraph/internal/logx"
	"github.com/coolbeans/legigraph/internal/pipeline"
	"github.com/coolbeans/legigraph/pkg/lawregistry"
	"github.com/coolbeans/legigraph/pkg/refarea"
	"github.com/coolbeans/legigraph/pkg/stats"
)

// referenceareasCmd runs §4.2: detect and wrap citation spans inside every
// leaf's text, reading the original corpus and the lawnames alias table,
// writing reference-annotated XML to the referenceareas stage directory.
func referenceareasCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "referenceareas <us|de>",
		Short: "Detect and wrap citation spans in leaf text (§4.2)",
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
			regulations, _ := cmd.Flags().GetBool("regulations")

			discovered, err := discoverSnapshots(cfg.CorpusRoot(j))
			if err != nil {
				return err
			}
			requested = config.ExpandSnapshots(requested, discovered)

			outDir := func(snap string) string { return stageDir(cfg, "referenceareas", j, snap) }
			snapshots := pipeline.Prepare(discovered, requested, overwrite, func(snap string) bool {
				return pathExists(outDir(snap))
			})

			aliases, err := loadAliases(cfg, j)
			if err != nil {
				return err
			}

			logger := logx.Stage(baseLogger, "referenceareas")

			return pipeline.Run(context.Background(), snapshots, workerCount(cmd), func(_ context.Context, snap string) error {
				itemLog := logx.Item(logger, snap)
				date, err := parseSnapshotDate(j, snap)
				if err != nil {
					return err
				}
				docs, err := loadJurisdictionSnapshot(cfg, j, snap, regulations)
				if err != nil {
					return err
				}

				report := stats.NewReport()
				registry := lawregistry.Build(aliases, date, j)
				dir := outDir(snap)

				for _, doc := range docs {
					dominant := refarea.DominantUnit(doc)
					detector := refarea.New(j, registry, doc.ID, dominant, report)
					detector.ProcessDocument(doc)
					if err := writeDocument(dir, doc); err != nil {
						return err
					}
				}

				if err := flushReport(dir, report); err != nil {
					return err
				}
				itemLog.Info().Int("documents", len(docs)).Int("issues", report.Len()).Msg("wrapped reference areas")
				return nil
			})
		},
	}
	addCommonFlags(cmd)
	return cmd
}
