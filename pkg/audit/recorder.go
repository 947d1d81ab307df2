package audit

import (
	"fmt"
	"strings"
	"sync"
)

// Entry is one recorded audit message.
//
// Fields:
//   - Level: The entry level ("debug", "info", "warn", "error")
//   - Message: The formatted message text
type Entry struct {
	Level   string
	Message string
}

// Recorder is a Sink implementation that captures entries in memory.
//
// It is intended for tests that assert on what a component logged.
// Safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

// NewRecorder creates an empty Recorder.
//
// Returns:
//   - *Recorder: A recorder ready to capture entries
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Debugf records a debug level entry.
func (r *Recorder) Debugf(format string, args ...any) {
	r.record("debug", format, args...)
}

// Infof records an info level entry.
func (r *Recorder) Infof(format string, args ...any) {
	r.record("info", format, args...)
}

// Warnf records a warning level entry.
func (r *Recorder) Warnf(format string, args ...any) {
	r.record("warn", format, args...)
}

// Errorf records an error level entry.
func (r *Recorder) Errorf(format string, args ...any) {
	r.record("error", format, args...)
}

func (r *Recorder) record(level, format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Level: level, Message: fmt.Sprintf(format, args...)})
}

// Entries returns a copy of all recorded entries in order.
//
// Returns:
//   - []Entry: The recorded entries
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Contains reports whether any recorded message contains the substring.
//
// Parameters:
//   - substr: Substring to search for
//
// Returns:
//   - bool: true if any entry's message contains substr
func (r *Recorder) Contains(substr string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

// Reset discards all recorded entries.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
}
