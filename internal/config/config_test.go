package config

import (
	"testing"

	"github.com/spf13/viper"

	"github.com/coolbeans/legigraph/pkg/hierarchy"
)

func TestLoadAppliesDefaultsAndOverrides(t *testing.T) {
	v := viper.New()
	v.Set("us_corpus_root", "/corpus/us")
	v.Set("radius", 3)

	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.USCorpusRoot != "/corpus/us" {
		t.Fatalf("USCorpusRoot = %q", cfg.USCorpusRoot)
	}
	if cfg.SnapshotMapping.Radius != 3 {
		t.Fatalf("Radius = %d, want 3 (override)", cfg.SnapshotMapping.Radius)
	}
	if cfg.SnapshotMapping.MinTextLength != 50 {
		t.Fatalf("MinTextLength = %d, want 50 (default)", cfg.SnapshotMapping.MinTextLength)
	}
	if cfg.Interval != 1 {
		t.Fatalf("Interval = %d, want 1 (default)", cfg.Interval)
	}
}

func TestLoadRejectsNonPositiveInterval(t *testing.T) {
	v := viper.New()
	v.Set("interval", 0)
	if _, err := Load(v); err == nil {
		t.Fatal("Load: want error for interval=0")
	}
}

func TestExpandSnapshotsAll(t *testing.T) {
	got := ExpandSnapshots([]string{"all"}, []string{"1994", "1996", "1998"})
	want := []string{"1994", "1996", "1998"}
	if len(got) != len(want) {
		t.Fatalf("ExpandSnapshots = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ExpandSnapshots[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestExpandSnapshotsConcreteListUnchanged(t *testing.T) {
	got := ExpandSnapshots([]string{"1994"}, []string{"1994", "1996"})
	if len(got) != 1 || got[0] != "1994" {
		t.Fatalf("ExpandSnapshots = %v, want [1994]", got)
	}
}

func TestParseSnapshotLabel(t *testing.T) {
	if err := ParseSnapshotLabel(hierarchy.JurisdictionUS, "1994"); err != nil {
		t.Fatalf("US label: %v", err)
	}
	if err := ParseSnapshotLabel(hierarchy.JurisdictionUS, "not-a-year"); err == nil {
		t.Fatal("US label: want error for non-numeric year")
	}
	if err := ParseSnapshotLabel(hierarchy.JurisdictionDE, "2020-01-01"); err != nil {
		t.Fatalf("DE label: %v", err)
	}
	if err := ParseSnapshotLabel(hierarchy.JurisdictionDE, "1994"); err == nil {
		t.Fatal("DE label: want error for bare year")
	}
}
