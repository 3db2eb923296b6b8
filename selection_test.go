package main

import (
	"sync"
	"testing"
)

func TestSelectionThreeStates(t *testing.T) {
	unset := UnsetSelection()
	none := NoSelection()
	zero := SomeSelection(0)

	if unset == none {
		t.Error("Unset must not equal None")
	}
	if unset == zero {
		t.Error("Unset must not equal Some(0)")
	}
	if none == zero {
		t.Error("None must not equal Some(0)")
	}
	if unset != UnsetSelection() {
		t.Error("Unset must equal itself")
	}
	if none != NoSelection() {
		t.Error("None must equal itself")
	}
	if SomeSelection(7) != SomeSelection(7) {
		t.Error("Some(pid) must equal itself")
	}
	if SomeSelection(7) == SomeSelection(8) {
		t.Error("different pids must not compare equal")
	}
}

func TestSelectionAccessors(t *testing.T) {
	if pid, ok := SomeSelection(42).PID(); !ok || pid != 42 {
		t.Errorf("Some(42).PID() = %d, %v", pid, ok)
	}
	if _, ok := UnsetSelection().PID(); ok {
		t.Error("Unset must not report a pid")
	}
	if _, ok := NoSelection().PID(); ok {
		t.Error("None must not report a pid")
	}
	if !UnsetSelection().IsUnset() || UnsetSelection().IsNone() {
		t.Error("Unset state flags wrong")
	}
	if !NoSelection().IsNone() || NoSelection().IsUnset() {
		t.Error("None state flags wrong")
	}
}

func TestSharedSelectionStartsUnset(t *testing.T) {
	s := NewSharedSelection()
	if !s.Load().IsUnset() {
		t.Errorf("fresh slot = %v, want unset", s.Load())
	}
}

func TestSharedSelectionWriteVisibleToImmediateRead(t *testing.T) {
	s := NewSharedSelection()

	s.Set(100)
	if got := s.Load(); got != SomeSelection(100) {
		t.Errorf("after Set(100): %v", got)
	}

	s.Clear()
	if got := s.Load(); !got.IsNone() {
		t.Errorf("after Clear: %v", got)
	}

	// A clear is not the startup state; the change must remain observable.
	if s.Load().IsUnset() {
		t.Error("Clear must not look like Unset")
	}

	s.Set(0)
	if got := s.Load(); got != SomeSelection(0) {
		t.Errorf("pid 0 must be storable: %v", got)
	}
}

func TestSharedSelectionConcurrentReaders(t *testing.T) {
	s := NewSharedSelection()
	var wg sync.WaitGroup

	done := make(chan struct{})
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
					s.Load()
				}
			}
		}()
	}

	for pid := range 1000 {
		s.Set(pid)
	}
	close(done)
	wg.Wait()

	if got := s.Load(); got != SomeSelection(999) {
		t.Errorf("final selection = %v, want pid 999", got)
	}
}
