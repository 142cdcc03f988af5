package logging

import (
	"bytes"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type testStringer string

func (s testStringer) String() string { return string(s) }

func TestInitAndLoggingToFile(t *testing.T) {
	tempDir := t.TempDir()
	logPath := filepath.Join(tempDir, "nested", "evaloop.log")

	if err := Init(logPath, true); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	t.Cleanup(func() {
		_ = Close()
	})

	LogEvent("hello %s", "world")
	LogDebug("debug %s", "only")
	_ = Close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "hello world") {
		t.Fatalf("expected LogEvent content, got: %s", content)
	}
	if !strings.Contains(content, "[DEBUG] debug only") {
		t.Fatalf("expected LogDebug content, got: %s", content)
	}
}

func TestLogDebugSilentWhenDisabled(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "evaloop.log")
	if err := Init(logPath, false); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	LogDebug("should not appear")
	_ = Close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if strings.Contains(string(data), "should not appear") {
		t.Fatalf("debug line written while disabled: %s", data)
	}
}

func TestBuildFetchMessageDefaults(t *testing.T) {
	msg := buildFetchMessage(" loader ", " ", "", map[string]any{"ok": true})
	if !strings.Contains(msg, "[LOADER]") {
		t.Fatalf("expected uppercased direction, got: %s", msg)
	}
	if !strings.Contains(msg, "source=unknown") {
		t.Fatalf("expected default source, got: %s", msg)
	}
	if !strings.Contains(msg, "status=unknown") {
		t.Fatalf("expected default status, got: %s", msg)
	}
	if !strings.Contains(msg, "detail={\"ok\":true}") {
		t.Fatalf("expected payload json, got: %s", msg)
	}
}

func TestBuildFetchMessageOmitsNilDetail(t *testing.T) {
	msg := buildFetchMessage("loader", "a.json", "ok", nil)
	if strings.Contains(msg, "detail=") {
		t.Fatalf("expected no detail, got: %s", msg)
	}
}

func TestFormatPayloadVariants(t *testing.T) {
	if got := formatPayload(nil); got != "null" {
		t.Fatalf("nil payload: %s", got)
	}
	if got := formatPayload(" "); got != `""` {
		t.Fatalf("empty string payload: %s", got)
	}
	if got := formatPayload([]byte("hi")); got != "hi" {
		t.Fatalf("byte payload: %s", got)
	}
	if got := formatPayload(testStringer("ok")); got != "ok" {
		t.Fatalf("stringer payload: %s", got)
	}
	if got := formatPayload(errors.New("boom")); got != "boom" {
		t.Fatalf("error payload: %s", got)
	}
}

func TestInitWithoutFileWritesStdoutOnly(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	if err := Init("", false); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	LogEvent("discard")
	if buf.Len() != 0 {
		t.Fatalf("expected previous writer to be replaced, got: %s", buf.String())
	}
}

type fakeOutcome struct {
	degraded bool
	summary  string
}

func (f fakeOutcome) Degraded() bool  { return f.degraded }
func (f fakeOutcome) Summary() string { return f.summary }

func TestLogOutcomeMarksDegradedData(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(prev) })

	LogOutcome("site", fakeOutcome{summary: "loaded 3 models from results.json"})
	LogOutcome("site", fakeOutcome{degraded: true, summary: "using embedded:leaderboard"})

	out := buf.String()
	if !strings.Contains(out, "[SITE] loaded 3 models from results.json") {
		t.Fatalf("expected plain outcome line, got: %s", out)
	}
	if !strings.Contains(out, "[SITE] WARNING degraded data: using embedded:leaderboard") {
		t.Fatalf("expected degraded warning, got: %s", out)
	}
}
