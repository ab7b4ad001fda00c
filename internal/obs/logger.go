package obs

import (
	"encoding/json"
	"io"
	"sync"
	"time"
)

// Logger emits discrete structured events as one JSON object per line.
// The destination writer is the only transport concern; everything else
// (stdout, log shipper) lives outside the core.
type Logger struct {
	mu  sync.Mutex
	out io.Writer
}

// NewLogger creates a logger writing to out.
func NewLogger(out io.Writer) *Logger {
	return &Logger{out: out}
}

// Event writes an event enriched with the scope's correlation data. Nil
// values in fields are dropped. A nil scope is allowed for process-level
// events.
//
//nolint:errcheck // writing to the log sink; errors are not recoverable
func (l *Logger) Event(scope *Scope, event string, fields map[string]any) {
	payload := map[string]any{
		"event":     event,
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	}
	if scope != nil {
		payload["request_id"] = scope.RequestID
		payload["method"] = scope.Method
		payload["path"] = scope.Path
	}
	for key, value := range fields {
		if value == nil {
			continue
		}
		payload[key] = value
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.out.Write(append(data, '\n'))
}
