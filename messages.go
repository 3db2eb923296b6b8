package main

// TUI messages for the Elm architecture. Snapshots arrive from the
// watchers via Program.Send; the rest originate inside Update.

// procSnapshotMsg carries one complete read of the process set.
type procSnapshotMsg struct {
	records []ProcessRecord
	err     error
}

// fileSnapshotMsg carries the open files of exactly one selection. sel
// identifies which selection the rows belong to, so a snapshot can never
// mix files of two different processes.
type fileSnapshotMsg struct {
	sel     Selection
	records []FileRecord
}

// killResultMsg reports the result of a terminate request.
type killResultMsg struct {
	pid int
	err error
}
