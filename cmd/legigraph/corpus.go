package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/coolbeans/legigraph/internal/config"
	"github.com/coolbeans/legigraph/internal/pipeline"
	"github.com/coolbeans/legigraph/pkg/hierarchy"
	"github.com/coolbeans/legigraph/pkg/stats"
)

// discoverSnapshots lists the snapshot-directory names present under a
// corpus root, sorted ascending (spec §6 "Snapshot literals: YYYY (US) or
// YYYY-MM-DD (DE)"). Each entry is a directory holding one or more
// hierarchy-XML files valid as of that snapshot.
func discoverSnapshots(corpusRoot string) ([]string, error) {
	entries, err := os.ReadDir(corpusRoot)
	if err != nil {
		return nil, fmt.Errorf("discover snapshots under %s: %w", corpusRoot, err)
	}
	var snapshots []string
	for _, e := range entries {
		if e.IsDir() {
			snapshots = append(snapshots, e.Name())
		}
	}
	sort.Strings(snapshots)
	return snapshots, nil
}

// snapshotDir returns the on-disk directory for one snapshot of a
// jurisdiction's statute corpus.
func snapshotDir(cfg config.Config, j hierarchy.Jurisdiction, snapshot string, _ bool) string {
	return filepath.Join(cfg.CorpusRoot(j), snapshot)
}

// loadJurisdictionSnapshot loads one snapshot's statute documents, plus —
// for the US corpus, when includeRegulations is set — its C.F.R.
// regulation documents alongside them (SPEC_FULL "OPEN QUESTIONS DECIDED",
// "US snapshot-mapping regulation file inclusion": statute files are
// always included, regulation files only iff the run is so configured).
func loadJurisdictionSnapshot(cfg config.Config, j hierarchy.Jurisdiction, snapshot string, includeRegulations bool) ([]*hierarchy.Document, error) {
	docs, err := loadSnapshotDocuments(filepath.Join(cfg.CorpusRoot(j), snapshot))
	if err != nil {
		return nil, err
	}
	if includeRegulations && j == hierarchy.JurisdictionUS && cfg.RegulationsRoot != "" {
		regDir := filepath.Join(cfg.RegulationsRoot, snapshot)
		if pathExists(regDir) {
			regDocs, err := loadSnapshotDocuments(regDir)
			if err != nil {
				return nil, err
			}
			docs = append(docs, regDocs...)
		}
	}
	return docs, nil
}

// loadSnapshotDocuments reads every hierarchy-XML file in dir.
func loadSnapshotDocuments(dir string) ([]*hierarchy.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read snapshot dir %s: %w", dir, err)
	}
	var docs []*hierarchy.Document
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".xml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		doc, err := hierarchy.ReadDocument(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// documentOutputPath names the reference-annotated XML file the
// referenceareas/referenceparse stages write back for one document,
// inside the stage output directory dir.
func documentOutputPath(dir string, doc *hierarchy.Document) string {
	return filepath.Join(dir, doc.ID+".xml")
}

// writeDocument atomically writes doc to its final path via
// internal/pipeline.TempOutput.
func writeDocument(dir string, doc *hierarchy.Document) error {
	return writeFileAtomic(documentOutputPath(dir, doc), func(w io.Writer) error {
		return hierarchy.WriteDocument(w, doc)
	})
}

func writeFileAtomic(finalPath string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(finalPath), 0755); err != nil {
		return err
	}
	out, err := pipeline.NewTempOutput(finalPath)
	if err != nil {
		return err
	}
	if err := write(out); err != nil {
		out.Abort()
		return err
	}
	return out.Commit()
}

// parseJurisdiction validates the positional dataset argument (spec §6
// CLI surface "dataset in {us, de}").
func parseJurisdiction(s string) (hierarchy.Jurisdiction, error) {
	switch s {
	case "us":
		return hierarchy.JurisdictionUS, nil
	case "de":
		return hierarchy.JurisdictionDE, nil
	default:
		return "", fmt.Errorf("dataset must be \"us\" or \"de\", got %q", s)
	}
}

// outputExists reports whether path already holds a regular file, for
// internal/pipeline.Prepare's overwrite-skip filter.
func outputExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// pathExists reports whether path names any existing file or directory.
func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// stageDir is the per-snapshot output directory of one named pipeline
// stage, rooted under cfg.OutputRoot (spec §5 "stage N+1 consumes only
// files materialized by stage N").
func stageDir(cfg config.Config, stage string, j hierarchy.Jurisdiction, snapshot string) string {
	return filepath.Join(cfg.OutputRoot, string(j), stage, snapshot)
}

// stageFile is a single per-snapshot output file of one named pipeline
// stage (used by crossreferencelookup/crossreferenceedgelist, spec §6
// "a separate file per snapshot").
func stageFile(cfg config.Config, stage string, j hierarchy.Jurisdiction, snapshot, ext string) string {
	return filepath.Join(cfg.OutputRoot, string(j), stage, snapshot+"."+ext)
}

// parseSnapshotDate parses a snapshot label into a hierarchy.Date for the
// jurisdiction's literal form (spec §6 "Snapshot literals: YYYY (US) or
// YYYY-MM-DD (DE)").
func parseSnapshotDate(j hierarchy.Jurisdiction, snapshot string) (hierarchy.Date, error) {
	if j == hierarchy.JurisdictionUS {
		return hierarchy.ParseYYYYMMDD(snapshot + "0101")
	}
	return hierarchy.ParseISO(snapshot)
}

// flushReport writes one work item's recoverable-failure report (spec §7)
// to a report.log file in dir; an empty report writes nothing. Not itself
// one of spec §6's external wire contracts.
func flushReport(dir string, report *stats.Report) error {
	if report.Len() == 0 {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	lines := report.Lines()
	content := strings.Join(lines, "\n") + "\n"
	return os.WriteFile(filepath.Join(dir, "report.log"), []byte(content), 0644)
}

// normalizeLeafText lower-cases and whitespace-collapses a leaf's plain
// text, the form spec §4.6 "Input" requires for the mapping engine.
func normalizeLeafText(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
