package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"Error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q): want %v, got %v", in, want, got)
		}
	}
}

func TestNew_ErrorRecordsCarryStacktrace(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelInfo)

	log.Error("save failed", "error", "boom")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if rec["msg"] != "save failed" {
		t.Errorf("unexpected msg %v", rec["msg"])
	}
	if _, ok := rec["stacktrace"]; !ok {
		t.Error("expected stacktrace attribute on ERROR record")
	}
}

func TestNew_InfoRecordsHaveNoStacktrace(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelInfo).With("component", "test")

	log.Info("request")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if _, ok := rec["stacktrace"]; ok {
		t.Error("did not expect stacktrace on INFO record")
	}
	if rec["component"] != "test" {
		t.Errorf("expected component attr to survive WithAttrs, got %v", rec["component"])
	}
}

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelWarn)

	log.Info("dropped")
	if buf.Len() != 0 {
		t.Errorf("expected INFO to be filtered at WARN level, got %s", buf.String())
	}
}
