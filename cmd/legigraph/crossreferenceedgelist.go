package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/coolbeans/legigraph/internal/logx"
	"github.com/coolbeans/legigraph/internal/pipeline"
	"github.com/coolbeans/legigraph/pkg/citekey"
	"github.com/coolbeans/legigraph/pkg/edgelist"
	"github.com/coolbeans/legigraph/pkg/stats"
)

// crossreferenceedgelistCmd runs §4.5: resolve every parsed citation path
// to a target node and materialize the snapshot's reference-edge CSV
// (spec §6 "Edge list CSV"). It rebuilds its own citekey.Lookup rather
// than reading crossreferencelookup's persisted CSV, since the lookup is
// a cheap tree-walk over documents already on disk for this stage.
func crossreferenceedgelistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crossreferenceedgelist <us|de>",
		Short: "Materialize reference edges from parsed citations (§4.5)",
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
			detailed, _ := cmd.Flags().GetBool("detailed")
			if !cmd.Flags().Changed("detailed") {
				detailed = cfg.DetailedEdges
			}

			inRoot := func(snap string) string { return stageDir(cfg, "referenceparse", j, snap) }
			discovered, err := discoverSnapshots(stageDir(cfg, "referenceparse", j, ""))
			if err != nil {
				return err
			}

			outFile := func(snap string) string { return stageFile(cfg, "crossreferenceedgelist", j, snap, "csv") }
			snapshots := pipeline.Prepare(discovered, requested, overwrite, func(snap string) bool {
				return outputExists(outFile(snap))
			})

			logger := logx.Stage(baseLogger, "crossreferenceedgelist")

			return pipeline.Run(context.Background(), snapshots, workerCount(cmd), func(_ context.Context, snap string) error {
				itemLog := logx.Item(logger, snap)
				docs, err := loadSnapshotDocuments(inRoot(snap))
				if err != nil {
					return err
				}

				report := stats.NewReport()
				lookup := citekey.Build(docs, report)
				edges := edgelist.Build(docs, lookup, detailed, report)

				path := outFile(snap)
				if err := writeFileAtomic(path, func(w io.Writer) error {
					return edgelist.WriteCSV(w, edges)
				}); err != nil {
					return err
				}
				if err := flushReport(stageDir(cfg, "crossreferenceedgelist", j, snap), report); err != nil {
					return err
				}
				itemLog.Info().Int("edges", len(edges)).Msg("materialized edge list")
				return nil
			})
		},
	}
	addCommonFlags(cmd)
	cmd.Flags().Bool("detailed", false, "Resolve each citation path to its deepest citekey found in the lookup (§4.5)")
	return cmd
}
