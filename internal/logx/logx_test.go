package logx

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestStageAndItemAddFields(t *testing.T) {
	var buf bytes.Buffer
	base := New(&buf, zerolog.InfoLevel)

	logger := Item(Stage(base, "referenceareas"), "1994/42")
	logger.Info().Msg("recoverable failure")

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("json.Unmarshal: %v\nlog line: %s", err, buf.String())
	}
	if decoded["stage"] != "referenceareas" {
		t.Fatalf("stage field = %v, want referenceareas", decoded["stage"])
	}
	if decoded["item"] != "1994/42" {
		t.Fatalf("item field = %v, want 1994/42", decoded["item"])
	}
	if decoded["message"] != "recoverable failure" {
		t.Fatalf("message field = %v", decoded["message"])
	}
}
