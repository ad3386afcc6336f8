package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNew_WritesJSONWithService(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{Service: "test", Level: ParseLevel("debug"), Output: buf})

	log.Debug().Str("op", "groups").Msg("poll")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("entry is not JSON: %v (%s)", err, buf.String())
	}
	if entry["service"] != "test" || entry["op"] != "groups" || entry["message"] != "poll" {
		t.Fatalf("entry = %#v", entry)
	}
}

func TestNew_RespectsLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{Level: zerolog.WarnLevel, Output: buf})

	log.Info().Msg("quiet")
	if buf.Len() != 0 {
		t.Fatalf("info entry written at warn level: %s", buf.String())
	}
	log.Warn().Msg("loud")
	if !strings.Contains(buf.String(), "loud") {
		t.Fatalf("warn entry missing: %s", buf.String())
	}
}

func TestNew_ConsoleFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{Format: "console", Output: buf})

	log.Info().Msg("hello")
	if strings.HasPrefix(buf.String(), "{") {
		t.Fatalf("console format wrote JSON: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "hello") {
		t.Fatalf("console entry missing message: %s", buf.String())
	}
}

func TestParseLevelDefaults(t *testing.T) {
	tests := map[string]zerolog.Level{
		"":        zerolog.InfoLevel,
		"invalid": zerolog.InfoLevel,
		" DEBUG ": zerolog.DebugLevel,
		"warn":    zerolog.WarnLevel,
		"trace":   zerolog.TraceLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestOpenFile_CreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "huddle", "huddle.log")

	file, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile returned error: %v", err)
	}
	if _, err := file.WriteString("line\n"); err != nil {
		t.Fatalf("WriteString: %v", err)
	}
	if err := file.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	file, err = OpenFile(path)
	if err != nil {
		t.Fatalf("reopen returned error: %v", err)
	}
	_, _ = file.WriteString("line\n")
	_ = file.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "line\nline\n" {
		t.Fatalf("file contents = %q, want two appended lines", data)
	}
}

func TestOpenFile_EmptyPathErrors(t *testing.T) {
	if _, err := OpenFile(" "); err == nil {
		t.Fatalf("OpenFile returned nil error for empty path")
	}
}
