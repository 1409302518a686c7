package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func initFileLogger(t *testing.T, level string) string {
	t.Helper()
	logFile := filepath.Join(t.TempDir(), "offtool.log")

	cfg := FileConfig{
		Path:       logFile,
		MaxSizeMB:  1,
		MaxBackups: 1,
		MaxAgeDays: 1,
		Compress:   false,
	}
	if err := InitWithFileConfig(level, cfg, false); err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	t.Cleanup(Nop)
	return logFile
}

func readLogLines(t *testing.T, path string) []map[string]any {
	t.Helper()
	Sync()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}

	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(string(content)), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("log line is not JSON: %q: %v", line, err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestLogLevels(t *testing.T) {
	tests := []struct {
		level    string
		expected []string
	}{
		{"error", []string{"error"}},
		{"warn", []string{"warn", "error"}},
		{"info", []string{"info", "warn", "error"}},
		{"debug", []string{"debug", "info", "warn", "error"}},
		{"bogus", []string{"info", "warn", "error"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logFile := initFileLogger(t, tt.level)

			Debug("debug message")
			Info("info message")
			Warn("warn message")
			Error("error message")

			entries := readLogLines(t, logFile)
			if len(entries) != len(tt.expected) {
				t.Fatalf("expected %d entries, got %d", len(tt.expected), len(entries))
			}
			for i, want := range tt.expected {
				if entries[i]["level"] != want {
					t.Errorf("entry %d: expected level %s, got %v", i, want, entries[i]["level"])
				}
			}
		})
	}
}

func TestStructuredFields(t *testing.T) {
	logFile := initFileLogger(t, "info")

	Info("decoded mesh", zap.String("path", "cube.off"), zap.Int("vertices", 8))
	Sugar.Infow("encoded mesh", "faces", 12)

	entries := readLogLines(t, logFile)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	if entries[0]["msg"] != "decoded mesh" || entries[0]["path"] != "cube.off" {
		t.Errorf("unexpected first entry %v", entries[0])
	}
	if entries[0]["vertices"] != float64(8) {
		t.Errorf("expected vertices 8, got %v", entries[0]["vertices"])
	}
	if entries[1]["faces"] != float64(12) {
		t.Errorf("expected faces 12, got %v", entries[1]["faces"])
	}

	caller, _ := entries[0]["caller"].(string)
	if !strings.HasPrefix(caller, "logger/logger_test.go") {
		t.Errorf("expected caller in test file, got %q", caller)
	}
}

func TestDefaultLoggerDiscards(t *testing.T) {
	// Must not panic before Init.
	Info("nobody is listening")
	Sugar.Debugf("still nobody %d", 1)
	Sync()
}

func TestNop(t *testing.T) {
	logFile := initFileLogger(t, "debug")

	Info("before reset")
	Nop()
	Info("after reset")
	Sugar.Warnf("after reset %d", 2)

	entries := readLogLines(t, logFile)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0]["msg"] != "before reset" {
		t.Errorf("unexpected entry %v", entries[0])
	}
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("/tmp/test.log")

	if cfg.Path != "/tmp/test.log" {
		t.Errorf("expected path /tmp/test.log, got %s", cfg.Path)
	}
	if cfg.MaxSizeMB != 50 {
		t.Errorf("expected MaxSizeMB 50, got %d", cfg.MaxSizeMB)
	}
	if cfg.MaxBackups != 3 {
		t.Errorf("expected MaxBackups 3, got %d", cfg.MaxBackups)
	}
	if cfg.MaxAgeDays != 7 {
		t.Errorf("expected MaxAgeDays 7, got %d", cfg.MaxAgeDays)
	}
	if !cfg.Compress {
		t.Error("expected Compress to be true")
	}
}
