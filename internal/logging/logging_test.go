package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, Config{Level: "warn", Format: "json"})

	logger.Info().Msg("hidden")
	logger.Warn().Str("file", "t1.txt").Msg("visible")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line at warn level, got %q", buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("json output expected: %v", err)
	}
	if entry["message"] != "visible" || entry["file"] != "t1.txt" {
		t.Fatalf("unexpected entry %v", entry)
	}
}

func TestNewLoggerConsoleDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, Config{Level: "nonsense"})

	logger.Debug().Msg("debug line")
	logger.Info().Msg("info line")

	out := buf.String()
	if strings.Contains(out, "debug line") {
		t.Fatalf("debug should be filtered: %q", out)
	}
	if !strings.Contains(out, "info line") {
		t.Fatalf("info should be written: %q", out)
	}
}
