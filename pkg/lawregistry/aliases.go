package lawregistry

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"github.com/coolbeans/legigraph/pkg/hierarchy"
)

// SnapshotDocuments pairs one corpus snapshot date with the documents on
// disk at that date, the unit CollectAliases walks across (spec §4.1
// inputs: "a per-document list of aliases" plus "a validity window per
// alias").
type SnapshotDocuments struct {
	Date      hierarchy.Date
	Documents []*hierarchy.Document
}

// CollectAliases derives the alias table spec §4.1 takes as input by
// walking every corpus snapshot in ascending date order and recording,
// for each document, its heading/short-heading/abbreviations as
// candidate alias strings (grounded on the original's
// `DeLawNamesStep.execute_item`, which collects exactly these four
// attributes per document file).
//
// The corpus model here has no separate validity-table input (unlike the
// original's `DE_VALIDITY_TABLE`): a document's own per-snapshot record is
// the only source of truth. So a window is synthesized as the contiguous
// run of snapshot dates across which a given (law-id, alias string) pair
// is unchanged — [first date of the run, last date of the run] — which
// is sufficient for Build's `start <= d <= end` selection since d is
// always itself one of this corpus's own snapshot dates.
func CollectAliases(snapshots []SnapshotDocuments) []Alias {
	sorted := make([]SnapshotDocuments, len(snapshots))
	copy(sorted, snapshots)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	type run struct {
		lawID string
		start hierarchy.Date
		end   hierarchy.Date
	}
	open := map[string]*run{} // "<law-id>\x00<alias>" -> in-progress run
	var aliases []Alias

	seenThisSnapshot := map[string]bool{}
	closeRun := func(k string, r *run, name string) {
		aliases = append(aliases, Alias{Name: name, LawID: r.lawID, Start: r.start, End: r.end})
	}

	for _, snap := range sorted {
		for k := range seenThisSnapshot {
			delete(seenThisSnapshot, k)
		}
		for _, doc := range snap.Documents {
			for _, name := range []string{doc.Heading, doc.HeadingShort, doc.Abbr1, doc.Abbr2} {
				if name == "" {
					continue
				}
				k := doc.ID + "\x00" + name
				seenThisSnapshot[k] = true
				if r, ok := open[k]; ok && r.lawID == doc.ID {
					r.end = snap.Date
					continue
				}
				open[k] = &run{lawID: doc.ID, start: snap.Date, end: snap.Date}
			}
		}
		for k, r := range open {
			if !seenThisSnapshot[k] {
				// Run ended before this snapshot: close it at its last
				// recorded end date.
				closeRun(k, r, aliasNameOf(k))
				delete(open, k)
			}
		}
	}
	for k, r := range open {
		closeRun(k, r, aliasNameOf(k))
	}

	return aliases
}

func aliasNameOf(key string) string {
	for i := 0; i < len(key); i++ {
		if key[i] == 0 {
			return key[i+1:]
		}
	}
	return key
}

// WriteAliasCSV emits aliases as "name,law_id,start,end" rows, an internal
// CLI artifact (not one of spec §6's documented wire contracts) that lets
// the lawnames stage persist its corpus scan for later stages to reload
// without re-walking the corpus.
func WriteAliasCSV(w io.Writer, aliases []Alias) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"name", "law_id", "start", "end"}); err != nil {
		return err
	}
	for _, a := range aliases {
		if err := cw.Write([]string{a.Name, a.LawID, formatDate(a.Start), formatDate(a.End)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadAliasCSV loads an alias table previously written by WriteAliasCSV.
func ReadAliasCSV(r io.Reader) ([]Alias, error) {
	cr := csv.NewReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	if len(rows[0]) != 4 || rows[0][0] != "name" || rows[0][1] != "law_id" {
		return nil, fmt.Errorf("lawregistry: unexpected alias CSV header %v", rows[0])
	}

	aliases := make([]Alias, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) != 4 {
			return nil, fmt.Errorf("lawregistry: malformed alias row %v", row)
		}
		start, err := parseDate(row[2])
		if err != nil {
			return nil, fmt.Errorf("lawregistry: alias start date: %w", err)
		}
		end, err := parseDate(row[3])
		if err != nil {
			return nil, fmt.Errorf("lawregistry: alias end date: %w", err)
		}
		aliases = append(aliases, Alias{Name: row[0], LawID: row[1], Start: start, End: end})
	}
	return aliases, nil
}

// formatDate/parseDate round-trip a hierarchy.Date as "YYYY-MM-DD",
// falling back to "YYYY-01-01" for year-only (US) dates so every row has
// a stable 10-byte width.
func formatDate(d hierarchy.Date) string {
	month, day := d.Month, d.Day
	if month == 0 {
		month, day = 1, 1
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, month, day)
}

func parseDate(s string) (hierarchy.Date, error) {
	return hierarchy.ParseISO(s)
}
