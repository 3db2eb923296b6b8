package main

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

// ProcessRecord is one row of the process table. Records are ephemeral:
// every refresh regenerates the whole set, and nothing persists across
// refreshes except pid equality.
type ProcessRecord struct {
	PID    int
	Name   string
	Status string
}

// ProcessSource enumerates the currently visible OS processes.
type ProcessSource interface {
	ListProcesses() ([]ProcessRecord, error)
}

// ProcSource reads process facts from /proc.
type ProcSource struct {
	// Root is the procfs mount point, normally "/proc". Tests point it at
	// a fixture tree.
	Root string
	// ShowKernelThreads includes processes with an empty cmdline.
	ShowKernelThreads bool
}

// NewProcSource returns a source over the live /proc.
func NewProcSource(showKernelThreads bool) *ProcSource {
	return &ProcSource{Root: "/proc", ShowKernelThreads: showKernelThreads}
}

// ListProcesses enumerates every pid directory under the procfs root.
// A process that exits mid-enumeration is dropped, not retried and not
// reported. Records are returned sorted by pid ascending: ReadDir yields
// lexicographic order ("10" before "9"), and the cursor restoration walk
// needs a monotone pid column.
func (s *ProcSource) ListProcesses() ([]ProcessRecord, error) {
	entries, err := os.ReadDir(s.Root)
	if err != nil {
		return nil, err
	}

	records := make([]ProcessRecord, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		pid, err := strconv.Atoi(e.Name())
		if err != nil || pid <= 0 {
			continue // not a pid dir
		}

		status, err := os.ReadFile(filepath.Join(s.Root, e.Name(), "status"))
		if err != nil {
			continue // vanished mid-enumeration
		}
		name, state, err := parseProcStatus(status)
		if err != nil {
			continue
		}

		if !s.ShowKernelThreads && s.isKernelThread(e.Name()) {
			continue
		}

		records = append(records, ProcessRecord{PID: pid, Name: name, Status: state})
	}

	sort.Slice(records, func(i, j int) bool { return records[i].PID < records[j].PID })
	return records, nil
}

// isKernelThread reports whether the pid has an empty cmdline, which is how
// kernel threads present themselves.
func (s *ProcSource) isKernelThread(pidDir string) bool {
	cmdline, err := os.ReadFile(filepath.Join(s.Root, pidDir, "cmdline"))
	if err != nil {
		// Can't tell; keep the row rather than guess it away.
		return false
	}
	return len(cmdline) == 0
}

// stateNames maps the /proc state letter to the word shown in the table.
var stateNames = map[byte]string{
	'R': "running",
	'S': "sleeping",
	'D': "disk-sleep",
	'Z': "zombie",
	'T': "stopped",
	't': "tracing-stop",
	'X': "dead",
	'I': "idle",
	'P': "parked",
	'W': "waking",
}

// parseProcStatus extracts the Name and State fields from the contents of
// /proc/<pid>/status.
func parseProcStatus(data []byte) (name, state string, err error) {
	for line := range strings.Lines(string(data)) {
		switch {
		case strings.HasPrefix(line, "Name:"):
			name = strings.TrimSpace(strings.TrimPrefix(line, "Name:"))
		case strings.HasPrefix(line, "State:"):
			raw := strings.TrimSpace(strings.TrimPrefix(line, "State:"))
			if raw == "" {
				return "", "", errors.New("empty State field")
			}
			if word, ok := stateNames[raw[0]]; ok {
				state = word
			} else {
				state = string(raw[0])
			}
		}
		if name != "" && state != "" {
			return name, state, nil
		}
	}
	return "", "", errors.New("status missing Name or State")
}

// TerminateProcess sends SIGTERM to pid. A pid that is already gone counts
// as success; the table self-heals on the next refresh either way.
func TerminateProcess(pid int) error {
	if err := unix.Kill(pid, unix.SIGTERM); err != nil {
		if errors.Is(err, unix.ESRCH) {
			return nil
		}
		return err
	}
	return nil
}
