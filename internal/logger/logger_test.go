package logger

import (
	"bytes"
	"strings"
	"testing"
)

func resetGlobal(t *testing.T) {
	t.Helper()
	mu.Lock()
	defaultLogger = nil
	initialized = false
	mu.Unlock()
}

func TestGet_BeforeInit(t *testing.T) {
	resetGlobal(t)

	log := Get()
	if _, ok := log.(*NullLogger); !ok {
		t.Errorf("expected NullLogger before Init, got %T", log)
	}
	// Must not panic.
	log.Info("ignored")
}

func TestInitAndShutdown(t *testing.T) {
	resetGlobal(t)

	var buf bytes.Buffer
	if err := Init(Config{Level: LevelInfo, Format: FormatText, Writer: &buf}); err != nil {
		t.Fatalf("Init: %v", err)
	}

	Get().Info("hello", "key", "value")
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("log output missing message: %q", buf.String())
	}

	if err := Shutdown(); err != nil {
		t.Errorf("Shutdown: %v", err)
	}
	if _, ok := Get().(*NullLogger); !ok {
		t.Error("expected NullLogger after Shutdown")
	}
}

func TestInit_Twice(t *testing.T) {
	resetGlobal(t)

	var buf bytes.Buffer
	if err := Init(Config{Level: LevelInfo, Format: FormatText, Writer: &buf}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer Shutdown()

	if err := Init(Config{Level: LevelInfo, Format: FormatText, Writer: &buf}); err == nil {
		t.Error("expected error on double Init")
	}
}

func TestLevelFiltering(t *testing.T) {
	resetGlobal(t)

	var buf bytes.Buffer
	if err := Init(Config{Level: LevelWarn, Format: FormatText, Writer: &buf}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer Shutdown()

	log := Get()
	log.Debug("debug message")
	log.Info("info message")
	log.Warn("warn message")

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("below-level messages leaked: %q", out)
	}
	if !strings.Contains(out, "warn message") {
		t.Errorf("warn message missing: %q", out)
	}
}

func TestWith_BindsContext(t *testing.T) {
	resetGlobal(t)

	var buf bytes.Buffer
	if err := Init(Config{Level: LevelInfo, Format: FormatJSON, Writer: &buf}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer Shutdown()

	With("component", "scanner").Info("started")

	out := buf.String()
	if !strings.Contains(out, "scanner") {
		t.Errorf("bound field missing: %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
