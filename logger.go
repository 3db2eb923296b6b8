package main

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// debugLogger is an append-only in-memory message queue. While the alt
// screen is active, writing to stdout would corrupt the UI, so diagnostics
// accumulate here and are flushed to the console only after the tea program
// has released the terminal. Purely diagnostic; nothing reads it back.
type debugLogger struct {
	mu      sync.Mutex
	enabled bool
	msgs    []string
}

// debugLog is shared by every component; enabled from config in main.
var debugLog = &debugLogger{}

// Logf records a message with a timestamp. A no-op unless enabled.
func (l *debugLogger) Logf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.enabled {
		return
	}
	l.msgs = append(l.msgs, time.Now().Format("15:04:05.000 ")+fmt.Sprintf(format, args...))
}

// Flush writes all queued messages to w and empties the queue.
func (l *debugLogger) Flush(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, msg := range l.msgs {
		fmt.Fprintln(w, msg)
	}
	l.msgs = nil
}
