// Command legigraph builds the temporally-indexed citation multi-graph
// described by spec §1-9: per-snapshot law-name registries, reference-area
// detection, citation parsing, citekey/edge-list materialization, and
// cross-snapshot leaf mapping, over the US and German federal statute
// corpora.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/coolbeans/legigraph/internal/config"
	"github.com/coolbeans/legigraph/internal/logx"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "legigraph",
		Short: "Citation and cross-snapshot graph builder for US and DE statutes",
		Long: `legigraph turns a hierarchy-XML statute corpus into a temporally
indexed citation multi-graph.

Stages run in order over a snapshot range:
  lawnames               build the law-name alias table (§4.1)
  referenceareas          detect and wrap citation spans (§4.2)
  referenceparse          parse wrapped citations into paths (§4.3)
  crossreferencelookup    build the citekey lookup table (§4.4)
  crossreferenceedgelist  materialize reference edges (§4.5)
  snapshotmapping         map leaves across snapshot pairs (§4.6)`,
		Version: version,
	}

	rootCmd.PersistentFlags().String("config", "", "Path to a config file (YAML/JSON/TOML, viper-loaded)")
	rootCmd.PersistentFlags().String("us-corpus", "", "US corpus root directory")
	rootCmd.PersistentFlags().String("de-corpus", "", "DE corpus root directory")
	rootCmd.PersistentFlags().String("regulations-root", "", "US regulations (C.F.R.) corpus root directory")
	rootCmd.PersistentFlags().String("output-root", "", "Root directory for pipeline output files")
	rootCmd.PersistentFlags().Int("workers", 0, "Worker pool size (0 = GOMAXPROCS)")

	rootCmd.AddCommand(lawnamesCmd())
	rootCmd.AddCommand(referenceareasCmd())
	rootCmd.AddCommand(referenceparseCmd())
	rootCmd.AddCommand(crossreferencelookupCmd())
	rootCmd.AddCommand(crossreferenceedgelistCmd())
	rootCmd.AddCommand(snapshotmappingCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig resolves internal/config.Config from the root command's
// persistent flags, binding them onto a fresh viper instance (spec §6
// CLI surface flags feed the AMBIENT STACK's "Configuration" layer).
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	v := viper.New()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return config.Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	if s, _ := cmd.Flags().GetString("us-corpus"); s != "" {
		v.Set("us_corpus_root", s)
	}
	if s, _ := cmd.Flags().GetString("de-corpus"); s != "" {
		v.Set("de_corpus_root", s)
	}
	if s, _ := cmd.Flags().GetString("regulations-root"); s != "" {
		v.Set("regulations_root", s)
	}
	if s, _ := cmd.Flags().GetString("output-root"); s != "" {
		v.Set("output_root", s)
	}
	if regs, _ := cmd.Flags().GetBool("regulations"); regs {
		v.Set("regulations", true)
	}
	if interval, err := cmd.Flags().GetInt("interval"); err == nil && interval > 0 {
		v.Set("interval", interval)
	}

	return config.Load(v)
}

// workerCount resolves the --workers flag against spec §5's "a worker
// pool of size = CPU count, or a bounded small pool" guidance, and the
// --single-process override (spec §6 CLI surface).
func workerCount(cmd *cobra.Command) int {
	if single, _ := cmd.Flags().GetBool("single-process"); single {
		return 1
	}
	if n, _ := cmd.Flags().GetInt("workers"); n > 0 {
		return n
	}
	return runtime.GOMAXPROCS(0)
}

// addCommonFlags wires the §6 CLI surface's shared flags onto a stage
// subcommand.
func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("snapshots", []string{"all"}, "Snapshot labels to process, or \"all\"")
	cmd.Flags().Bool("overwrite", false, "Reprocess snapshots whose output already exists")
	cmd.Flags().Bool("single-process", false, "Run with a single worker, ignoring --workers")
	cmd.Flags().Bool("regulations", false, "Also load US regulation (C.F.R.) documents alongside statutes (read by referenceareas)")
}

var baseLogger = logx.Default()
