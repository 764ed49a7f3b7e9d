package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNewLogger_WritesJSONToWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo)

	logger.Debug("hidden")
	logger.Info("hello", "key", "value")

	out := strings.TrimSpace(buf.String())
	if strings.Contains(out, "hidden") {
		t.Fatal("debug record leaked past the info level")
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(out), &rec); err != nil {
		t.Fatalf("output is not a JSON record: %v\n%s", err, out)
	}
	if rec["msg"] != "hello" || rec["key"] != "value" {
		t.Fatalf("record fields wrong: %v", rec)
	}
}
