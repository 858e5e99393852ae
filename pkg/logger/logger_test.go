package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, "info", "json")

	log.Debug().Msg("hidden")
	log.Info().Str("slug", "first-neural-network").Msg("Article served")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("Expected 1 line at info level, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("Expected JSON output: %v", err)
	}
	if entry["service"] != ServiceName {
		t.Errorf("Expected service %q, got %v", ServiceName, entry["service"])
	}
	if entry["slug"] != "first-neural-network" || entry["message"] != "Article served" {
		t.Errorf("Unexpected entry: %v", entry)
	}
}

func TestNewLogger_Levels(t *testing.T) {
	tests := []struct {
		level string
		debug bool
		warn  bool
	}{
		{level: "debug", debug: true, warn: true},
		{level: "WARN", debug: false, warn: true},
		{level: "error", debug: false, warn: false},
		{level: "", debug: false, warn: true},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		log := newLogger(&buf, tt.level, "json")

		log.Debug().Msg("debug")
		if got := buf.Len() > 0; got != tt.debug {
			t.Errorf("level %q: debug logged = %v, want %v", tt.level, got, tt.debug)
		}
		buf.Reset()

		log.Warn().Msg("warn")
		if got := buf.Len() > 0; got != tt.warn {
			t.Errorf("level %q: warn logged = %v, want %v", tt.level, got, tt.warn)
		}
	}
}

func TestNewLogger_Pretty(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, "info", "pretty")

	log.Info().Msg("Server listening")

	out := buf.String()
	if strings.HasPrefix(out, "{") {
		t.Errorf("Expected console output, got JSON: %s", out)
	}
	if !strings.Contains(out, "Server listening") {
		t.Errorf("Expected message in output, got %s", out)
	}
}
