package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestInitAndNamed(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "debug", Format: "json", Writer: &buf})

	logger := Named("collect")
	logger.Info().Msg("hello")
	out := buf.String()
	if !strings.Contains(out, `"component":"collect"`) {
		t.Errorf("output missing component field: %s", out)
	}
	if !strings.Contains(out, `"message":"hello"`) {
		t.Errorf("output missing message: %s", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"debug", "debug"},
		{"WARN", "warn"},
		{"warning", "warn"},
		{"", "info"},
		{"nonsense", "info"},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in).String(); got != tt.want {
			t.Errorf("parseLevel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
