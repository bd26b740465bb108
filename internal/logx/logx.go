// Package logx sets up legigraph's process-wide structured logger
// (SPEC_FULL AMBIENT STACK, "Logging"). It replaces the source pipeline's
// plain per-item problem logs with zerolog's structured fields, since
// spec §7's "recoverable failures aggregated by stage into a single log
// file keyed by input item" is itself a primitive log-aggregation
// mechanism.
package logx

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New builds the process-wide base logger writing to w (typically
// os.Stderr), at level.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// Default builds the process-wide base logger writing to os.Stderr at
// info level, matching the teacher's plain-stderr default.
func Default() zerolog.Logger {
	return New(os.Stderr, zerolog.InfoLevel)
}

// Stage returns a child logger tagged with the pipeline stage name
// (`logger.With().Str("stage", "referenceareas").Logger()`), so every
// structured log line from that stage self-identifies.
func Stage(base zerolog.Logger, stage string) zerolog.Logger {
	return base.With().Str("stage", stage).Logger()
}

// Item returns a child logger additionally tagged with the work item
// currently being processed (a snapshot label, or "snapshot/document"),
// for the structured per-item fields spec §7 requires on every
// recoverable-failure log line.
func Item(stageLogger zerolog.Logger, item string) zerolog.Logger {
	return stageLogger.With().Str("item", item).Logger()
}
