package main

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// The watchers are the background halves of the two views. Each owns its
// own lock and ticker; they never block on each other. Snapshots reach the
// UI through a send func (wired to (*tea.Program).Send), so all table state
// stays inside the Elm loop.

// ProcessWatcher periodically re-enumerates the OS process set.
//
// Two intervals are at play: the poll interval is a cheap liveness tick,
// the re-render delay is how often the expensive full enumeration actually
// runs. A background tick that finds the lock held, or that falls inside
// the re-render delay, is skipped outright; ticks are never queued.
type ProcessWatcher struct {
	mu          sync.Mutex
	source      ProcessSource
	poll        time.Duration
	rerender    time.Duration
	lastRefresh time.Time // guarded by mu
	send        func(tea.Msg)
}

// NewProcessWatcher builds a watcher over source. lastRefresh starts in
// the past so the first tick refreshes immediately.
func NewProcessWatcher(source ProcessSource, poll, rerender time.Duration) *ProcessWatcher {
	return &ProcessWatcher{
		source:      source,
		poll:        poll,
		rerender:    rerender,
		lastRefresh: time.Now().Add(-rerender - time.Minute),
	}
}

// Notify sets the snapshot destination. Must be called before Run.
func (w *ProcessWatcher) Notify(send func(tea.Msg)) { w.send = send }

// Refresh performs a manual, user-triggered refresh. Unlike the background
// loop it waits for the lock instead of skipping.
func (w *ProcessWatcher) Refresh() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.refreshLocked()
}

// refreshLocked enumerates and publishes one snapshot. Caller holds mu.
func (w *ProcessWatcher) refreshLocked() {
	records, err := w.source.ListProcesses()
	if err != nil {
		debugLog.Logf("process enumeration failed: %v", err)
	}
	w.send(procSnapshotMsg{records: records, err: err})
	w.lastRefresh = time.Now()
}

// Run drives the background loop until ctx is cancelled. Cancellation is
// checked once per tick; a refresh in flight is never interrupted.
func (w *ProcessWatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.poll)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !w.mu.TryLock() {
				continue // a manual refresh owns the view; skip this tick
			}
			if time.Since(w.lastRefresh) < w.rerender {
				w.mu.Unlock()
				continue
			}
			w.refreshLocked()
			w.mu.Unlock()
		}
	}
}

// FileWatcher re-enumerates the open files of whichever process the
// selection slot points at. It refreshes only when the observed selection
// differs from the last one it completed a refresh for.
//
// lastObserved is seeded Unset, which is distinct from every legitimate
// selection, including pid 0 and an explicit none, so the very first
// write to the slot is guaranteed to trigger a refresh.
type FileWatcher struct {
	mu           sync.Mutex
	source       FileSource
	selection    *SharedSelection
	poll         time.Duration
	lastObserved Selection // guarded by mu
	send         func(tea.Msg)
}

// NewFileWatcher builds a watcher reading selection and enumerating
// through source.
func NewFileWatcher(source FileSource, selection *SharedSelection, poll time.Duration) *FileWatcher {
	return &FileWatcher{
		source:       source,
		selection:    selection,
		poll:         poll,
		lastObserved: UnsetSelection(),
	}
}

// Notify sets the snapshot destination. Must be called before Run.
func (w *FileWatcher) Notify(send func(tea.Msg)) { w.send = send }

// Refresh re-enumerates the current selection unconditionally, waiting for
// the lock like any manual refresh.
func (w *FileWatcher) Refresh() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.refreshLocked(w.selection.Load())
}

// refreshLocked enumerates cur's files and publishes the snapshot.
// lastObserved is recorded only after the refresh completed, so a failure
// leaves it stale and the next tick retries. That is safe because a
// refresh fully replaces the row set each time. Caller holds mu.
func (w *FileWatcher) refreshLocked(cur Selection) {
	var records []FileRecord
	if pid, ok := cur.PID(); ok {
		var err error
		records, err = w.source.ListOpenFiles(pid)
		if err != nil {
			debugLog.Logf("file enumeration for %s failed: %v", cur, err)
			return
		}
	}
	w.send(fileSnapshotMsg{sel: cur, records: records})
	w.lastObserved = cur
}

// Run drives the background loop until ctx is cancelled.
func (w *FileWatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.poll)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !w.mu.TryLock() {
				continue
			}
			cur := w.selection.Load()
			if cur == w.lastObserved {
				w.mu.Unlock()
				continue
			}
			w.refreshLocked(cur)
			w.mu.Unlock()
		}
	}
}
