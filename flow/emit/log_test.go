package emit

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

// TestLogEmitter_Text verifies human-readable output.
func TestLogEmitter_Text(t *testing.T) {
	var buf bytes.Buffer
	emitter := NewLogEmitter(&buf, false)

	emitter.Emit(Event{
		FlowID: "signup",
		Seq:    1,
		Step:   "account",
		To:     "account",
		Msg:    "enter",
	})

	out := buf.String()
	if !strings.HasPrefix(out, "[enter]") {
		t.Errorf("expected [enter] prefix, got %q", out)
	}
	if !strings.Contains(out, "flowID=signup") {
		t.Errorf("expected flow ID in output, got %q", out)
	}
	if !strings.Contains(out, "step=account") {
		t.Errorf("expected step in output, got %q", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("expected trailing newline")
	}
}

// TestLogEmitter_TextMeta verifies metadata is appended as JSON.
func TestLogEmitter_TextMeta(t *testing.T) {
	var buf bytes.Buffer
	emitter := NewLogEmitter(&buf, false)

	emitter.Emit(Event{
		FlowID: "signup",
		Msg:    "fallback",
		Meta:   map[string]interface{}{"requested": "confirm"},
	})

	out := buf.String()
	if !strings.Contains(out, `meta={"requested":"confirm"}`) {
		t.Errorf("expected meta in output, got %q", out)
	}
}

// TestLogEmitter_JSON verifies one-event-per-line JSON output.
func TestLogEmitter_JSON(t *testing.T) {
	var buf bytes.Buffer
	emitter := NewLogEmitter(&buf, true)

	emitter.Emit(Event{
		FlowID: "signup",
		Seq:    2,
		Step:   "profile",
		From:   "account",
		To:     "profile",
		Msg:    "enter",
	})

	line := strings.TrimSpace(buf.String())
	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(line), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v (%q)", err, line)
	}

	if decoded["flowID"] != "signup" {
		t.Errorf("expected flowID signup, got %v", decoded["flowID"])
	}
	if decoded["msg"] != "enter" {
		t.Errorf("expected msg enter, got %v", decoded["msg"])
	}
	if decoded["from"] != "account" {
		t.Errorf("expected from account, got %v", decoded["from"])
	}
	if decoded["seq"].(float64) != 2 {
		t.Errorf("expected seq 2, got %v", decoded["seq"])
	}
}

// TestLogEmitter_NilWriter verifies the stdout default does not panic.
func TestLogEmitter_NilWriter(t *testing.T) {
	emitter := NewLogEmitter(nil, false)
	if emitter.writer == nil {
		t.Error("nil writer should default to stdout")
	}
}
