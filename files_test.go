package main

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

// writeFDDir lays out a fake /proc/<pid>/fd with symlinks to targets.
// Symlink targets do not need to exist; sizes come from the injected stat.
func writeFDDir(t *testing.T, root string, pid int, targets map[int]string) {
	t.Helper()
	dir := filepath.Join(root, strconv.Itoa(pid), "fd")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	for fd, target := range targets {
		if err := os.Symlink(target, filepath.Join(dir, strconv.Itoa(fd))); err != nil {
			t.Fatal(err)
		}
	}
}

func TestListOpenFiles(t *testing.T) {
	root := t.TempDir()
	writeFDDir(t, root, 42, map[int]string{
		0: "/dev/pts/1",
		1: "/var/log/app.log",
		5: "socket:[12345]",
	})

	sizes := map[string]int64{
		"/var/log/app.log": 2048,
		"/dev/pts/1":       0,
	}
	s := &FDSource{Root: root, statSize: func(path string) (int64, error) {
		if n, ok := sizes[path]; ok {
			return n, nil
		}
		return 0, os.ErrNotExist
	}}

	records, err := s.ListOpenFiles(42)
	if err != nil {
		t.Fatal(err)
	}
	want := []FileRecord{
		{FD: 0, Path: "/dev/pts/1", Size: 0},
		{FD: 1, Path: "/var/log/app.log", Size: 2048},
		{FD: 5, Path: "socket:[12345]", Size: 0},
	}
	if len(records) != len(want) {
		t.Fatalf("got %d records: %#v", len(records), records)
	}
	for i := range want {
		if records[i] != want[i] {
			t.Errorf("record %d = %#v, want %#v", i, records[i], want[i])
		}
	}
}

func TestListOpenFilesVanishedProcess(t *testing.T) {
	s := &FDSource{Root: t.TempDir(), statSize: statFileSize}
	records, err := s.ListOpenFiles(9999)
	if err != nil {
		t.Fatalf("vanished process must not error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("records = %#v, want empty", records)
	}
}

func TestListOpenFilesStatFailureKeepsRow(t *testing.T) {
	root := t.TempDir()
	writeFDDir(t, root, 7, map[int]string{
		3: "/gone/file",
	})
	s := &FDSource{Root: root, statSize: func(string) (int64, error) {
		return 0, errors.New("removed after enumeration")
	}}

	records, err := s.ListOpenFiles(7)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("row dropped on stat failure: %#v", records)
	}
	if records[0].Size != 0 || records[0].Path != "/gone/file" {
		t.Errorf("record = %#v, want size 0 with path intact", records[0])
	}
}

func TestListOpenFilesSkipsStatForNonPaths(t *testing.T) {
	root := t.TempDir()
	writeFDDir(t, root, 8, map[int]string{
		1: "pipe:[777]",
	})
	s := &FDSource{Root: root, statSize: func(path string) (int64, error) {
		t.Errorf("stat called for non-path target %q", path)
		return 0, nil
	}}

	records, err := s.ListOpenFiles(8)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].Size != 0 {
		t.Errorf("records = %#v", records)
	}
}
