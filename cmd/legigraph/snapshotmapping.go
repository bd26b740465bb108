package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/coolbeans/legigraph/internal/logx"
	"github.com/coolbeans/legigraph/internal/pipeline"
	"github.com/coolbeans/legigraph/pkg/hierarchy"
	"github.com/coolbeans/legigraph/pkg/snapshotmap"
	"github.com/coolbeans/legigraph/pkg/stats"
)

// snapshotPair is one (source, destination) snapshot pairing spaced by
// --interval (spec §4.6 "source, destination, interval"), the unit of
// work for this stage rather than a single snapshot.
type snapshotPair struct {
	source string
	dest   string
}

func (p snapshotPair) String() string { return p.source + "->" + p.dest }

// snapshotmappingCmd runs §4.6: map leaf nodes of a source snapshot onto
// leaf nodes of a destination snapshot spaced --interval entries later in
// the corpus's discovered snapshot order, writing the mapping JSON (spec
// §6 "Snapshot mapping JSON").
func snapshotmappingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshotmapping <us|de>",
		Short: "Map leaf nodes across snapshot pairs (§4.6)",
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
			interval := cfg.Interval
			if n, err := cmd.Flags().GetInt("interval"); err == nil && cmd.Flags().Changed("interval") {
				interval = n
			}
			if interval <= 0 {
				return fmt.Errorf("--interval must be positive, got %d", interval)
			}

			inRoot := func(snap string) string { return stageDir(cfg, "referenceparse", j, snap) }
			discovered, err := discoverSnapshots(stageDir(cfg, "referenceparse", j, ""))
			if err != nil {
				return err
			}
			wanted := make(map[string]bool, len(requested))
			all := len(requested) == 1 && requested[0] == "all"
			for _, s := range requested {
				wanted[s] = true
			}

			var pairs []snapshotPair
			for i := 0; i+interval < len(discovered); i++ {
				src := discovered[i]
				if !all && !wanted[src] {
					continue
				}
				pairs = append(pairs, snapshotPair{source: src, dest: discovered[i+interval]})
			}

			outFile := func(p snapshotPair) string {
				return stageFile(cfg, "snapshotmapping", j, p.source+"_"+p.dest, "json")
			}
			if !overwrite {
				filtered := pairs[:0]
				for _, p := range pairs {
					if !outputExists(outFile(p)) {
						filtered = append(filtered, p)
					}
				}
				pairs = filtered
			}

			logger := logx.Stage(baseLogger, "snapshotmapping")

			return pipeline.Run(context.Background(), pairs, workerCount(cmd), func(_ context.Context, p snapshotPair) error {
				itemLog := logx.Item(logger, p.String())

				srcDocs, err := loadSnapshotDocuments(inRoot(p.source))
				if err != nil {
					return err
				}
				destDocs, err := loadSnapshotDocuments(inRoot(p.dest))
				if err != nil {
					return err
				}

				srcLeaves := collectLeaves(srcDocs)
				destLeaves := collectLeaves(destDocs)

				report := stats.NewReport()
				mapping := snapshotmap.Map(srcLeaves, destLeaves, cfg.SnapshotMapping, report)

				path := outFile(p)
				if err := writeFileAtomic(path, func(w io.Writer) error {
					enc := json.NewEncoder(w)
					enc.SetIndent("", "  ")
					return enc.Encode(mapping)
				}); err != nil {
					return err
				}
				if err := flushReport(stageDir(cfg, "snapshotmapping", j, p.source+"_"+p.dest), report); err != nil {
					return err
				}
				itemLog.Info().Int("mapped", len(mapping)).Int("source_leaves", len(srcLeaves)).Int("dest_leaves", len(destLeaves)).Msg("mapped snapshot pair")
				return nil
			})
		},
	}
	addCommonFlags(cmd)
	cmd.Flags().Int("interval", 0, "Snapshot-pair spacing, in discovered-snapshot steps (§4.6)")
	return cmd
}

// collectLeaves flattens every document's leaves into the normalized form
// pkg/snapshotmap.Map expects.
func collectLeaves(docs []*hierarchy.Document) []snapshotmap.Leaf {
	var leaves []snapshotmap.Leaf
	for _, doc := range docs {
		for _, node := range doc.Root.Leaves() {
			text := ""
			if node.Text != nil {
				text = normalizeLeafText(node.Text.PlainText())
			}
			leaves = append(leaves, snapshotmap.Leaf{Key: node.Key, Citekey: node.Citekey, Text: text})
		}
	}
	return leaves
}
