package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevelFallsBackToInfo(t *testing.T) {
	if got := ParseLevel("debug"); got != zapcore.DebugLevel {
		t.Fatalf("expected debug, got %v", got)
	}
	if got := ParseLevel("chatty"); got != zapcore.InfoLevel {
		t.Fatalf("expected info fallback, got %v", got)
	}
}

func TestNewWritesFileAndConsole(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "faraday.log")
	var console bytes.Buffer
	logger, err := New(DefaultConfig(path), &console)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("preset started", zap.String("preset", "through"))
	_ = logger.Sync()

	if strings.Contains(console.String(), "hidden") {
		t.Fatalf("expected debug line filtered at info level")
	}
	if !strings.Contains(console.String(), "preset started") {
		t.Fatalf("expected console line, got %q", console.String())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), `"preset":"through"`) {
		t.Fatalf("expected JSON field in log file, got %q", string(data))
	}
}

func TestNewWithoutOutputsIsNop(t *testing.T) {
	logger, err := New(Config{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger.Info("nothing")
}
