package jsonlog

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

type entry struct {
	Level      string            `json:"level"`
	Time       string            `json:"time"`
	Message    string            `json:"message"`
	Properties map[string]string `json:"properties"`
	Trace      string            `json:"trace"`
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []entry {
	t.Helper()
	var entries []entry
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var e entry
		if err := json.Unmarshal(line, &e); err != nil {
			t.Fatalf("invalid log line %q: %v", line, err)
		}
		entries = append(entries, e)
	}
	return entries
}

func TestJSONLogger(t *testing.T) {
	t.Run("Below minimum level", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(&buf, LevelInfo)
		l.PrintDebug("property search", map[string]string{"query": "SELECT 1"})
		if buf.Len() != 0 {
			t.Errorf("expected no output; got %s", buf.String())
		}
	})

	t.Run("DEBUG Level", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(&buf, LevelDebug)
		l.PrintDebug("property search", map[string]string{"args": "[10]"})
		entries := decodeLines(t, &buf)
		if len(entries) != 1 {
			t.Fatalf("expected 1 log line; got %d", len(entries))
		}
		if entries[0].Level != "DEBUG" || entries[0].Properties["args"] != "[10]" {
			t.Errorf("unexpected entry %+v", entries[0])
		}
	})

	t.Run("INFO Level", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(&buf, LevelInfo)
		l.PrintInfo("database connection pool established", map[string]string{"env": "development"})
		entries := decodeLines(t, &buf)
		if len(entries) != 1 || entries[0].Message != "database connection pool established" {
			t.Fatalf("unexpected entries %+v", entries)
		}
		if entries[0].Trace != "" {
			t.Error("expected no trace on INFO entries")
		}
	})

	t.Run("ERROR Level", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(&buf, LevelInfo)
		l.PrintError(errors.New("connection refused"), nil)
		entries := decodeLines(t, &buf)
		if len(entries) != 1 || entries[0].Level != "ERROR" || entries[0].Message != "connection refused" {
			t.Fatalf("unexpected entries %+v", entries)
		}
	})

	t.Run("FATAL Level", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(&buf, LevelError)
		l.PrintFatal(errors.New("invalid dsn"), nil)
		entries := decodeLines(t, &buf)
		if len(entries) != 1 || entries[0].Level != "FATAL" {
			t.Fatalf("unexpected entries %+v", entries)
		}
		if entries[0].Trace == "" {
			t.Error("expected a stack trace on FATAL entries")
		}
	})

	t.Run("Off", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(&buf, LevelOff)
		l.PrintFatal(errors.New("ignored"), nil)
		if buf.Len() != 0 {
			t.Errorf("expected no output; got %s", buf.String())
		}
	})

	t.Run("io.Writer", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(&buf, LevelInfo)
		l.Write([]byte("mail: dial failed\n"))
		entries := decodeLines(t, &buf)
		if len(entries) != 1 || strings.HasSuffix(entries[0].Message, "\n") {
			t.Fatalf("unexpected entries %+v", entries)
		}
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"error", LevelError, false},
		{"off", LevelOff, false},
		{"verbose", LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("expected error %v; got %v", tt.wantErr, err)
			}
			if got != tt.want {
				t.Errorf("expected %s; got %s", tt.want, got)
			}
		})
	}
}
