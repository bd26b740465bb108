// Package config resolves legigraph's run configuration: corpus paths,
// the research window, and the §4.6 mapping tunables (SPEC_FULL AMBIENT
// STACK, "Configuration").
package config

import (
	"fmt"
	"strconv"

	"github.com/spf13/viper"

	"github.com/coolbeans/legigraph/pkg/hierarchy"
	"github.com/coolbeans/legigraph/pkg/snapshotmap"
)

// Config is the fully-resolved run configuration, loaded once at CLI
// startup and passed down as a plain struct — nothing below this package
// imports viper directly, matching the teacher's preference for passing
// already-resolved config structs into its pipeline types (`CrawlConfig`,
// `IngestConfig`).
type Config struct {
	// USCorpusRoot / DECorpusRoot hold the root directory of each
	// jurisdiction's hierarchy-XML corpus.
	USCorpusRoot string
	DECorpusRoot string

	// RegulationsRoot holds the root directory of US regulation XML
	// (C.F.R.), consulted only when the `--regulations` flag is set (SPEC_FULL
	// "OPEN QUESTIONS DECIDED", "US snapshot-mapping regulation file
	// inclusion").
	RegulationsRoot string

	// OutputRoot is the root directory pipeline stages write their
	// per-snapshot output files under.
	OutputRoot string

	// IncludeRegulations records the `--regulations` CLI flag (§6 CLI
	// surface). No stage reads this field; referenceareas reads the flag
	// itself when loading documents.
	IncludeRegulations bool

	// DetailedEdges enables pkg/edgelist's deeper-path-suffix walk
	// (spec §4.5 "Detailed mode").
	DetailedEdges bool

	// Interval is the default snapshot-pair interval for
	// snapshotmapping (spec §4.6 "source, destination, interval").
	Interval int

	// SnapshotMapping holds the three §4.6 Phase 3/4 tunables; the
	// fourth setting, the pair interval, is Interval above.
	SnapshotMapping snapshotmap.Options
}

// Default returns a Config with the spec's documented defaults
// (SnapshotMapping via snapshotmap.DefaultOptions, Interval 1).
func Default() Config {
	return Config{
		Interval:        1,
		SnapshotMapping: snapshotmap.DefaultOptions(),
	}
}

// Load resolves a Config from v, falling back to Default()'s values for
// anything v does not set. v is typically the process-wide viper instance
// populated from a config file and/or bound CLI flags.
func Load(v *viper.Viper) (Config, error) {
	cfg := Default()

	if root := v.GetString("us_corpus_root"); root != "" {
		cfg.USCorpusRoot = root
	}
	if root := v.GetString("de_corpus_root"); root != "" {
		cfg.DECorpusRoot = root
	}
	if root := v.GetString("regulations_root"); root != "" {
		cfg.RegulationsRoot = root
	}
	if root := v.GetString("output_root"); root != "" {
		cfg.OutputRoot = root
	}
	cfg.IncludeRegulations = v.GetBool("regulations")
	cfg.DetailedEdges = v.GetBool("detailed_edges")

	if v.IsSet("interval") {
		cfg.Interval = v.GetInt("interval")
	}
	if v.IsSet("min_text_length") {
		cfg.SnapshotMapping.MinTextLength = v.GetInt("min_text_length")
	}
	if v.IsSet("radius") {
		cfg.SnapshotMapping.Radius = v.GetInt("radius")
	}
	if v.IsSet("distance_threshold") {
		cfg.SnapshotMapping.DistanceThreshold = v.GetFloat64("distance_threshold")
	}

	if cfg.Interval <= 0 {
		return cfg, fmt.Errorf("config: interval must be positive, got %d", cfg.Interval)
	}
	return cfg, nil
}

// CorpusRoot returns the configured corpus root for a jurisdiction.
func (c Config) CorpusRoot(j hierarchy.Jurisdiction) string {
	if j == hierarchy.JurisdictionUS {
		return c.USCorpusRoot
	}
	return c.DECorpusRoot
}

// ExpandSnapshots resolves the "all" research-window sentinel (spec §6
// CLI surface, "--snapshots <list|all>") against the list of snapshot
// labels discovered on disk by the caller (typically a directory
// listing); requested is returned unchanged when it already names a
// concrete, non-"all" list.
func ExpandSnapshots(requested []string, discovered []string) []string {
	if len(requested) == 1 && requested[0] == "all" {
		return discovered
	}
	return requested
}

// ParseSnapshotLabel validates a snapshot label is well-formed for j,
// without constructing a full hierarchy.Date (callers needing the date
// itself should use hierarchy.ParseYYYYMMDD/ParseISO directly).
func ParseSnapshotLabel(j hierarchy.Jurisdiction, label string) error {
	if j == hierarchy.JurisdictionUS {
		if _, err := strconv.Atoi(label); err != nil {
			return fmt.Errorf("config: invalid US snapshot year %q: %w", label, err)
		}
		return nil
	}
	_, err := hierarchy.ParseISO(label)
	return err
}
