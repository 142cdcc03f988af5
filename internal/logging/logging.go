package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	mu      sync.Mutex
	logFile *os.File
	debug   bool
)

// Init routes the standard logger to stdout and, when logPath is set, to an appended log file.
func Init(logPath string, debugEnabled bool) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	debug = debugEnabled

	var writers []io.Writer
	writers = append(writers, os.Stdout)

	if logPath != "" {
		if dir := filepath.Dir(logPath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		logFile = file
		writers = append(writers, logFile)
	}

	log.SetOutput(io.MultiWriter(writers...))
	return nil
}

// Close detaches the log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	debug = false
	if logFile == nil {
		return nil
	}
	log.SetOutput(os.Stderr)
	err := logFile.Close()
	logFile = nil
	return err
}

func LogEvent(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Println(msg)
}

// LogDebug logs only when Init was called with debug enabled.
func LogDebug(format string, args ...any) {
	mu.Lock()
	enabled := debug
	mu.Unlock()
	if !enabled {
		return
	}
	log.Println("[DEBUG] " + fmt.Sprintf(format, args...))
}

// LogFetch records one attempt to read a results source.
func LogFetch(direction, source, status string, payload any) {
	log.Println(buildFetchMessage(direction, source, status, payload))
}

func buildFetchMessage(direction, source, status string, payload any) string {
	dir := strings.TrimSpace(direction)
	if dir != "" {
		dir = strings.ToUpper(dir)
	}
	sourceValue := strings.TrimSpace(source)
	if sourceValue == "" {
		sourceValue = "unknown"
	}
	statusValue := strings.TrimSpace(status)
	if statusValue == "" {
		statusValue = "unknown"
	}
	parts := []string{fmt.Sprintf("[%s]", dir)}
	parts = append(parts, fmt.Sprintf("source=%s", sourceValue))
	parts = append(parts, fmt.Sprintf("status=%s", statusValue))
	if payload != nil {
		parts = append(parts, fmt.Sprintf("detail=%s", formatPayload(payload)))
	}
	return strings.Join(parts, " ")
}

func formatPayload(payload any) string {
	switch v := payload.(type) {
	case nil:
		return "null"
	case string:
		if strings.TrimSpace(v) == "" {
			return `""`
		}
		return v
	case []byte:
		if len(v) == 0 {
			return "[]"
		}
		return string(v)
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}

// Outcome is the part of a load result the logger reports on.
type Outcome interface {
	Degraded() bool
	Summary() string
}

// LogOutcome logs how results were obtained, with a warning prefix when the data is degraded.
func LogOutcome(component string, outcome Outcome) {
	prefix := "[" + strings.ToUpper(strings.TrimSpace(component)) + "]"
	if outcome.Degraded() {
		log.Println(prefix + " WARNING degraded data: " + outcome.Summary())
		return
	}
	log.Println(prefix + " " + outcome.Summary())
}
