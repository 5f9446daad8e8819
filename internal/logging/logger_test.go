package logging

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLoggerWritesJSONToFile(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewLogger(dir, LevelDebug)
	if err != nil {
		t.Fatalf("NewLogger() error: %v", err)
	}

	logger.Info("debate started", "topic", "AI regulation", "rounds", 6)
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "debate.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}

	var entry map[string]any
	if err := json.Unmarshal(data, &entry); err != nil {
		t.Fatalf("log entry is not JSON: %v\n%s", err, data)
	}
	if entry["msg"] != "debate started" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["topic"] != "AI regulation" {
		t.Errorf("topic = %v", entry["topic"])
	}
}

func TestChildLoggersCarryAttributes(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewLogger(dir, LevelInfo)
	if err != nil {
		t.Fatalf("NewLogger() error: %v", err)
	}

	child := logger.WithParticipant("Candidate A").WithSection("Opening Statements")
	child.Warn("empty response, retrying", "attempt", 1)
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "debate.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}

	var entry map[string]any
	if err := json.Unmarshal(data, &entry); err != nil {
		t.Fatalf("log entry is not JSON: %v", err)
	}
	if entry["participant"] != "Candidate A" {
		t.Errorf("participant = %v", entry["participant"])
	}
	if entry["section"] != "Opening Statements" {
		t.Errorf("section = %v", entry["section"])
	}
}

func TestLevelFiltering(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewLogger(dir, LevelWarn)
	if err != nil {
		t.Fatalf("NewLogger() error: %v", err)
	}

	logger.Debug("not visible")
	logger.Info("also not visible")
	logger.Error("visible")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "debate.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d log lines, want 1:\n%s", len(lines), data)
	}
	if !strings.Contains(lines[0], "visible") {
		t.Errorf("unexpected line: %s", lines[0])
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"Info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNopLoggerIsSafe(t *testing.T) {
	logger := NopLogger()
	logger.Info("discarded")
	logger.WithParticipant("x").Error("also discarded")
	if err := logger.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}
