package telemetry

import (
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"
)

// Log lines are single JSON objects so they can be shipped as-is.
// Errors additionally go to stderr.

var (
	mu     sync.Mutex
	out    io.Writer = os.Stdout
	errOut io.Writer = os.Stderr
)

// SetOutput redirects all log output. Used by tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
	errOut = w
}

// Info writes an info-level log line with the given fields.
func Info(msg string, fields map[string]any) {
	emit(out, "info", msg, fields)
}

// Error writes an error-level log line with the given fields.
func Error(msg string, fields map[string]any) {
	emit(errOut, "error", msg, fields)
}

func emit(w io.Writer, level, msg string, fields map[string]any) {
	entry := map[string]any{
		"ts":    time.Now().UTC().Format(time.RFC3339Nano),
		"level": level,
		"msg":   msg,
	}
	for k, v := range fields {
		if _, taken := entry[k]; taken {
			continue
		}
		entry[k] = v
	}

	mu.Lock()
	defer mu.Unlock()
	enc := json.NewEncoder(w)
	if err := enc.Encode(entry); err != nil {
		// Fields that refuse to marshal should not drop the event.
		_ = enc.Encode(map[string]any{
			"ts":    entry["ts"],
			"level": "error",
			"msg":   "telemetry: marshal failed",
			"event": msg,
			"error": err.Error(),
		})
	}
}
