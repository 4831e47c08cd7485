package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in       string
		expected log.Level
	}{
		{"debug", log.DebugLevel},
		{"INFO", log.InfoLevel},
		{" warn ", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"", log.InfoLevel},
		{"chatty", log.InfoLevel},
	}

	for _, tc := range tests {
		if got := ParseLevel(tc.in); got != tc.expected {
			t.Errorf("ParseLevel(%q) = %v, expected %v", tc.in, got, tc.expected)
		}
	}
}

func TestNewWriterFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, "blockfall-web", "warn")

	logger.Info("hidden")
	logger.Warn("shown", "session", "abc")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "session=abc") {
		t.Errorf("warn line missing: %q", out)
	}
	if !strings.Contains(out, "blockfall-web") {
		t.Errorf("prefix missing: %q", out)
	}
}
