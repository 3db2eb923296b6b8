package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseProcStatus(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantName   string
		wantStatus string
		wantErr    bool
	}{
		{
			name:       "sleeping process",
			input:      "Name:\tbash\nUmask:\t0022\nState:\tS (sleeping)\nTgid:\t100\n",
			wantName:   "bash",
			wantStatus: "sleeping",
		},
		{
			name:       "running process",
			input:      "Name:\tprocsweep\nState:\tR (running)\n",
			wantName:   "procsweep",
			wantStatus: "running",
		},
		{
			name:       "zombie process",
			input:      "Name:\tdefunct\nState:\tZ (zombie)\n",
			wantName:   "defunct",
			wantStatus: "zombie",
		},
		{
			name:       "idle kernel thread",
			input:      "Name:\tkworker/0:1\nState:\tI (idle)\n",
			wantName:   "kworker/0:1",
			wantStatus: "idle",
		},
		{
			name:       "unknown state letter passes through",
			input:      "Name:\tmystery\nState:\tQ (quantum)\n",
			wantName:   "mystery",
			wantStatus: "Q",
		},
		{
			name:    "missing State field",
			input:   "Name:\tbash\nTgid:\t100\n",
			wantErr: true,
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, status, err := parseProcStatus([]byte(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q/%q", name, status)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if name != tt.wantName || status != tt.wantStatus {
				t.Errorf("got %q/%q, want %q/%q", name, status, tt.wantName, tt.wantStatus)
			}
		})
	}
}

// writeProcDir lays out one fake /proc/<pid> directory.
func writeProcDir(t *testing.T, root, pid, status, cmdline string) {
	t.Helper()
	dir := filepath.Join(root, pid)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if status != "" {
		if err := os.WriteFile(filepath.Join(dir, "status"), []byte(status), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "cmdline"), []byte(cmdline), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestListProcessesSortedByPID(t *testing.T) {
	root := t.TempDir()
	// ReadDir yields "100" before "20" before "9"; the source must undo
	// that lexicographic order.
	writeProcDir(t, root, "100", "Name:\tc\nState:\tR (running)\n", "c\x00")
	writeProcDir(t, root, "20", "Name:\tb\nState:\tS (sleeping)\n", "b\x00")
	writeProcDir(t, root, "9", "Name:\ta\nState:\tZ (zombie)\n", "a\x00")

	s := &ProcSource{Root: root}
	records, err := s.ListProcesses()
	if err != nil {
		t.Fatal(err)
	}
	want := []ProcessRecord{
		{PID: 9, Name: "a", Status: "zombie"},
		{PID: 20, Name: "b", Status: "sleeping"},
		{PID: 100, Name: "c", Status: "running"},
	}
	if len(records) != len(want) {
		t.Fatalf("got %d records, want %d: %#v", len(records), len(want), records)
	}
	for i := range want {
		if records[i] != want[i] {
			t.Errorf("record %d = %#v, want %#v", i, records[i], want[i])
		}
	}
}

func TestListProcessesDropsVanishedAndNonPIDEntries(t *testing.T) {
	root := t.TempDir()
	writeProcDir(t, root, "10", "Name:\ta\nState:\tR (running)\n", "a\x00")
	// A pid dir with no status file is a process that exited
	// mid-enumeration.
	if err := os.MkdirAll(filepath.Join(root, "11"), 0o755); err != nil {
		t.Fatal(err)
	}
	// Non-numeric entries like /proc/sys are not processes.
	if err := os.MkdirAll(filepath.Join(root, "sys"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "uptime"), []byte("1 2"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := &ProcSource{Root: root}
	records, err := s.ListProcesses()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].PID != 10 {
		t.Errorf("records = %#v, want only pid 10", records)
	}
}

func TestListProcessesKernelThreadFilter(t *testing.T) {
	root := t.TempDir()
	writeProcDir(t, root, "2", "Name:\tkthreadd\nState:\tS (sleeping)\n", "")
	writeProcDir(t, root, "10", "Name:\tbash\nState:\tS (sleeping)\n", "bash\x00")

	s := &ProcSource{Root: root}
	records, err := s.ListProcesses()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].Name != "bash" {
		t.Errorf("kernel thread not filtered: %#v", records)
	}

	s.ShowKernelThreads = true
	records, err = s.ListProcesses()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Errorf("kernel thread missing with filter off: %#v", records)
	}
}

func TestListProcessesMissingRoot(t *testing.T) {
	s := &ProcSource{Root: filepath.Join(t.TempDir(), "nope")}
	if _, err := s.ListProcesses(); err == nil {
		t.Error("expected error for missing procfs root")
	}
}
