package main

import (
	"fmt"
	"sync"
)

// selectionState distinguishes "never assigned" from "explicitly nothing".
// The file watcher uses "did the selection change since I last observed it"
// as its refresh trigger, so a zero value that collides with a real pid (or
// with an explicit clear) would silently swallow the first selection.
type selectionState int

const (
	// selectionUnset means no write has happened since startup.
	selectionUnset selectionState = iota
	// selectionNone means a writer explicitly cleared the selection.
	selectionNone
	// selectionSome means PID holds a committed pid.
	selectionSome
)

// Selection is a three-state tagged value: Unset, None, or Some(pid).
// It is a plain value; comparison with == does the right thing, including
// for pid 0.
type Selection struct {
	state selectionState
	pid   int
}

// UnsetSelection returns the never-assigned sentinel.
func UnsetSelection() Selection { return Selection{state: selectionUnset} }

// NoSelection returns the explicit "no process focused" value.
func NoSelection() Selection { return Selection{state: selectionNone} }

// SomeSelection returns a committed selection for pid.
func SomeSelection(pid int) Selection { return Selection{state: selectionSome, pid: pid} }

// IsUnset reports whether no write has ever happened.
func (s Selection) IsUnset() bool { return s.state == selectionUnset }

// IsNone reports whether the selection was explicitly cleared.
func (s Selection) IsNone() bool { return s.state == selectionNone }

// PID returns the selected pid and whether one is committed.
func (s Selection) PID() (int, bool) { return s.pid, s.state == selectionSome }

func (s Selection) String() string {
	switch s.state {
	case selectionNone:
		return "none"
	case selectionSome:
		return fmt.Sprintf("pid %d", s.pid)
	default:
		return "unset"
	}
}

// SharedSelection is the single slot that lets the files table track
// whatever process the process table has highlighted. It is constructed
// once in main and passed by reference to both sides.
//
// Contract: only the process pane's highlight path writes; the file watcher
// and the kill helper only read. Readers must tolerate the referenced pid
// no longer being alive; that resolves as an empty result downstream, not
// as an error.
type SharedSelection struct {
	mu  sync.RWMutex
	cur Selection
}

// NewSharedSelection returns a slot in the Unset state.
func NewSharedSelection() *SharedSelection {
	return &SharedSelection{cur: UnsetSelection()}
}

// Set commits pid as the current selection.
func (s *SharedSelection) Set(pid int) {
	s.mu.Lock()
	s.cur = SomeSelection(pid)
	s.mu.Unlock()
}

// Clear records that no process is focused. This is distinct from the
// startup state: a clear still counts as a change the file watcher must
// react to.
func (s *SharedSelection) Clear() {
	s.mu.Lock()
	s.cur = NoSelection()
	s.mu.Unlock()
}

// Load returns the current selection.
func (s *SharedSelection) Load() Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}
