package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/coolbeans/legigraph/internal/logx"
	"github.com/coolbeans/legigraph/internal/pipeline"
	"github.com/coolbeans/legigraph/pkg/citekey"
	"github.com/coolbeans/legigraph/pkg/stats"
)

// crossreferencelookupCmd runs §4.4: build the citekey -> node-key lookup
// table for one snapshot and persist it as the stage's CSV deliverable
// (spec §6 "Citekey lookup CSV").
func crossreferencelookupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crossreferencelookup <us|de>",
		Short: "Build the citekey lookup table (§4.4)",
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

			inRoot := func(snap string) string { return stageDir(cfg, "referenceparse", j, snap) }
			discovered, err := discoverSnapshots(stageDir(cfg, "referenceparse", j, ""))
			if err != nil {
				return err
			}

			outFile := func(snap string) string { return stageFile(cfg, "crossreferencelookup", j, snap, "csv") }
			snapshots := pipeline.Prepare(discovered, requested, overwrite, func(snap string) bool {
				return outputExists(outFile(snap))
			})

			logger := logx.Stage(baseLogger, "crossreferencelookup")

			return pipeline.Run(context.Background(), snapshots, workerCount(cmd), func(_ context.Context, snap string) error {
				itemLog := logx.Item(logger, snap)
				docs, err := loadSnapshotDocuments(inRoot(snap))
				if err != nil {
					return err
				}

				report := stats.NewReport()
				lookup := citekey.Build(docs, report)

				path := outFile(snap)
				if err := writeFileAtomic(path, func(w io.Writer) error {
					return lookup.WriteCSV(w)
				}); err != nil {
					return err
				}
				if err := flushReport(stageDir(cfg, "crossreferencelookup", j, snap), report); err != nil {
					return err
				}
				itemLog.Info().Int("citekeys", lookup.Len()).Msg("built citekey lookup")
				return nil
			})
		},
	}
	addCommonFlags(cmd)
	return cmd
}
