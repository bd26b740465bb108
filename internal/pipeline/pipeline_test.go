package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
)

func TestPrepareFiltersSnapshotsAndExisting(t *testing.T) {
	candidates := []string{"1990", "1992", "1994", "1996"}
	existing := map[string]bool{"1992": true}

	got := Prepare(candidates, []string{"1990", "1992", "1994"}, false, func(item string) bool {
		return existing[item]
	})
	want := []string{"1990", "1994"}
	if len(got) != len(want) {
		t.Fatalf("Prepare = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Prepare[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPrepareOverwriteIgnoresExisting(t *testing.T) {
	got := Prepare([]string{"1990", "1992"}, nil, true, func(string) bool { return true })
	if len(got) != 2 {
		t.Fatalf("Prepare(overwrite=true) = %v, want both items kept", got)
	}
}

func TestRunExecutesAllItems(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	var count int64
	err := Run(context.Background(), items, 2, func(ctx context.Context, item int) error {
		atomic.AddInt64(&count, 1)
		return nil
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if count != int64(len(items)) {
		t.Fatalf("count = %d, want %d", count, len(items))
	}
}

func TestRunPropagatesFirstError(t *testing.T) {
	items := []int{1, 2, 3}
	boom := errors.New("boom")
	err := Run(context.Background(), items, 1, func(ctx context.Context, item int) error {
		if item == 2 {
			return boom
		}
		return nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Run error = %v, want %v", err, boom)
	}
}

func TestTempOutputCommitRenamesIntoPlace(t *testing.T) {
	dir := t.TempDir()
	final := filepath.Join(dir, "out.csv")

	out, err := NewTempOutput(final)
	if err != nil {
		t.Fatalf("NewTempOutput: %v", err)
	}
	if _, err := out.WriteString("a,b\n"); err != nil {
		t.Fatalf("WriteString: %v", err)
	}
	if err := out.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	data, err := os.ReadFile(final)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "a,b\n" {
		t.Fatalf("content = %q", data)
	}
}

func TestTempOutputAbortLeavesNoFiles(t *testing.T) {
	dir := t.TempDir()
	final := filepath.Join(dir, "out.csv")

	out, err := NewTempOutput(final)
	if err != nil {
		t.Fatalf("NewTempOutput: %v", err)
	}
	if err := out.Abort(); err != nil {
		t.Fatalf("Abort: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("dir entries = %v, want none", entries)
	}
}
