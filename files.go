package main

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

// FileRecord is one row of the open-files table. fds are unique only
// within one process at one instant; the whole set is regenerated on every
// refresh.
type FileRecord struct {
	FD   int
	Path string
	Size int64
}

// FileSource enumerates the open file handles of one process.
type FileSource interface {
	ListOpenFiles(pid int) ([]FileRecord, error)
}

// FDSource reads open file descriptors from /proc/<pid>/fd.
type FDSource struct {
	// Root is the procfs mount point, normally "/proc".
	Root string
	// statSize resolves a path to its size in bytes. Swappable in tests.
	statSize func(path string) (int64, error)
}

// NewFDSource returns a source over the live /proc.
func NewFDSource() *FDSource {
	return &FDSource{Root: "/proc", statSize: statFileSize}
}

// ListOpenFiles resolves every descriptor symlink under /proc/<pid>/fd.
// A process that exited between selection and enumeration, or one we lack
// permission to inspect, yields an empty list and a nil error; both are
// ordinary churn, not failures. A size lookup that fails (the file was
// removed after the descriptor was enumerated) leaves the row in place
// with size zero, consistent with the silent-skip policy everywhere else.
func (s *FDSource) ListOpenFiles(pid int) ([]FileRecord, error) {
	fdDir := filepath.Join(s.Root, strconv.Itoa(pid), "fd")
	entries, err := os.ReadDir(fdDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) || errors.Is(err, os.ErrPermission) {
			return []FileRecord{}, nil
		}
		return nil, err
	}

	records := make([]FileRecord, 0, len(entries))
	for _, e := range entries {
		fd, err := strconv.Atoi(e.Name())
		if err != nil {
			continue
		}
		target, err := os.Readlink(filepath.Join(fdDir, e.Name()))
		if err != nil {
			continue // descriptor closed mid-enumeration
		}

		size := int64(0)
		if filepath.IsAbs(target) {
			if n, err := s.statSize(target); err == nil {
				size = n
			}
		}
		records = append(records, FileRecord{FD: fd, Path: target, Size: size})
	}

	sort.Slice(records, func(i, j int) bool { return records[i].FD < records[j].FD })
	return records, nil
}

func statFileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
