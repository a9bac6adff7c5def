package telemetry

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestInfoWritesJSONLine(t *testing.T) {
	var buf bytes.Buffer
	restore := SetOutput(&buf)
	defer restore()

	Info("feedback.completed", map[string]any{"source": "local", "word_count": 19})

	var payload map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &payload); err != nil {
		t.Fatalf("decode log json: %v", err)
	}
	if payload["level"] != "info" || payload["msg"] != "feedback.completed" {
		t.Fatalf("unexpected level/msg: %v", payload)
	}
	if payload["source"] != "local" {
		t.Fatalf("expected source field, got %v", payload["source"])
	}
	if _, ok := payload["ts"]; !ok {
		t.Fatalf("expected ts field")
	}
}

func TestReservedKeysWin(t *testing.T) {
	var buf bytes.Buffer
	restore := SetOutput(&buf)
	defer restore()

	Error("feedback.remote_failed", map[string]any{"level": "debug", "msg": "spoofed"})

	var payload map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &payload); err != nil {
		t.Fatalf("decode log json: %v", err)
	}
	if payload["level"] != "error" || payload["msg"] != "feedback.remote_failed" {
		t.Fatalf("reserved keys overwritten: %v", payload)
	}
}
