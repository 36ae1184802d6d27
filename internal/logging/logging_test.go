package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app-cost.log")
	logger, err := New(Config{Level: "debug", Format: "json", Output: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Debug("price computed")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"price computed"`) {
		t.Errorf("log output missing message: %s", data)
	}
}

func TestNewFallsBackToInfoOnBadLevel(t *testing.T) {
	logger, err := New(Config{Level: "loud", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if logger.Core().Enabled(-1) {
		t.Error("debug level should be disabled when the level cannot be parsed")
	}
}

func TestGlobalHelpersWriteToLogger(t *testing.T) {
	prev := Logger
	t.Cleanup(func() { Logger = prev })

	core, logs := observer.New(zapcore.DebugLevel)
	Logger = zap.New(core)

	Debug("interactive command", zap.String("verb", "set"))
	Warn("edit rejected")
	Error("command failed")
	With(zap.String("catalog", "EU App Development")).Named("engine").Info("price computed")

	entries := logs.All()
	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}
	levels := []zapcore.Level{zapcore.DebugLevel, zapcore.WarnLevel, zapcore.ErrorLevel, zapcore.InfoLevel}
	for i, want := range levels {
		if entries[i].Level != want {
			t.Errorf("entry %d level = %s, want %s", i, entries[i].Level, want)
		}
	}
	last := entries[3]
	if last.LoggerName != "engine" || last.ContextMap()["catalog"] != "EU App Development" {
		t.Errorf("With/Named lost context: %+v", last)
	}
}

func TestInitializeDefaultRestoresWarnLevel(t *testing.T) {
	prev := Logger
	t.Cleanup(func() { Logger = prev })

	if err := Initialize(Config{Level: "debug", Format: "json", Output: "stderr"}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	InitializeDefault()
	if Logger.Core().Enabled(zapcore.InfoLevel) {
		t.Error("default logger should not log below warn")
	}
	if !Logger.Core().Enabled(zapcore.WarnLevel) {
		t.Error("default logger should log warnings")
	}
}
