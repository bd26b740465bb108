// Package pipeline implements the scheduling contract of spec §5: a
// bounded worker pool over a bag-of-items map, with cooperative
// cancellation and atomic partial-output cleanup.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Prepare builds the work queue for one stage: candidates restricted to
// the requested snapshots (already "all"-expanded by the caller via
// internal/config.ExpandSnapshots), optionally filtered to drop items
// whose output already exists (spec §5 "prepare(overwrite, snapshots) ->
// [items]").
func Prepare(candidates []string, snapshots []string, overwrite bool, outputExists func(item string) bool) []string {
	items := candidates
	if len(snapshots) > 0 {
		wanted := make(map[string]bool, len(snapshots))
		for _, s := range snapshots {
			wanted[s] = true
		}
		filtered := make([]string, 0, len(items))
		for _, item := range items {
			if wanted[item] {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}

	if overwrite || outputExists == nil {
		return items
	}
	remaining := make([]string, 0, len(items))
	for _, item := range items {
		if !outputExists(item) {
			remaining = append(remaining, item)
		}
	}
	return remaining
}

// Run executes execute(item) for every item in items over a worker pool
// of size workers (spec §5 "a worker pool of size = CPU count... or a
// bounded small pool (size <= 2)"), stopping at the first error and
// cancelling in-flight work (golang.org/x/sync/errgroup's own
// fail-fast-cancel semantics, matching spec §5 "independent... no shared
// mutable state is required across workers").
func Run[T any](ctx context.Context, items []T, workers int, execute func(context.Context, T) error) error {
	if workers < 1 {
		workers = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, item := range items {
		item := item
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return execute(gctx, item)
		})
	}
	return g.Wait()
}

// TempOutput is a single output file written under a run-unique temp name
// (tagged with a google/uuid run identifier) and atomically renamed into
// place on Commit, or removed on Abort (spec §5 "Suspension points...
// blocks on the filesystem at input-read and output-write"; cooperative
// cancellation must not leave a half-written file at the final path).
type TempOutput struct {
	*os.File
	tempPath  string
	finalPath string
	done      bool
}

// NewTempOutput creates a temp file alongside finalPath (same directory,
// so the later rename is same-filesystem and atomic).
func NewTempOutput(finalPath string) (*TempOutput, error) {
	dir := filepath.Dir(finalPath)
	tempPath := filepath.Join(dir, fmt.Sprintf(".%s.tmp", uuid.NewString()))

	f, err := os.Create(tempPath)
	if err != nil {
		return nil, fmt.Errorf("pipeline: create temp output %s: %w", tempPath, err)
	}
	return &TempOutput{File: f, tempPath: tempPath, finalPath: finalPath}, nil
}

// Commit closes the temp file and atomically renames it to its final
// path. Commit and Abort are mutually exclusive; calling either twice is
// a no-op.
func (t *TempOutput) Commit() error {
	if t.done {
		return nil
	}
	t.done = true
	if err := t.File.Close(); err != nil {
		os.Remove(t.tempPath)
		return fmt.Errorf("pipeline: close temp output %s: %w", t.tempPath, err)
	}
	if err := os.Rename(t.tempPath, t.finalPath); err != nil {
		os.Remove(t.tempPath)
		return fmt.Errorf("pipeline: rename %s to %s: %w", t.tempPath, t.finalPath, err)
	}
	return nil
}

// Abort closes and removes the temp file without materializing it at its
// final path, used on cancellation or execute() failure.
func (t *TempOutput) Abort() error {
	if t.done {
		return nil
	}
	t.done = true
	t.File.Close()
	return os.Remove(t.tempPath)
}
