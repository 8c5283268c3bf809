package utils

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"", LevelInfo},
		{"verbose", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %d; want %d", tt.in, got, tt.want)
		}
	}
}

func TestLoggerFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf, LevelWarn)
	l.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	l.Debug("hidden debug")
	l.Info("hidden info")
	l.Warn("shown %d", 1)
	l.Error("shown %d", 2)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("messages below warn were written: %q", out)
	}
	if !strings.Contains(out, "shown 1") || !strings.Contains(out, "shown 2") {
		t.Errorf("expected warn and error lines, got %q", out)
	}
	if !strings.Contains(out, "[2024-01-02 03:04:05]") {
		t.Errorf("expected timestamp prefix, got %q", out)
	}
}
