// Package main implements procsweep, a TUI dashboard that lists running
// processes and shows the open file handles of whichever process is
// highlighted.
//
// The two tables refresh independently in the background and stay
// consistent through a single shared selection slot: the process table
// publishes the highlighted pid, the files table re-enumerates whenever
// the published value changes. Cursor position survives refreshes via a
// locally-greedy closest-pid walk.
//
// The application uses the Bubbletea framework with the Elm architecture
// pattern for state management.
//
// # Architecture
//
//   - model.go: Core TUI model with Init, Update, and View methods; pane
//     layout, column sizing, cursor restoration on snapshot arrival
//   - watcher.go: Background refresh loops (ProcessWatcher, FileWatcher)
//     feeding snapshots into the Elm loop via Program.Send
//   - selection.go: Three-state shared selection slot (Unset/None/Some)
//   - cursor.go: Pure closest-pid hill-climb
//   - procs.go: Process enumeration over /proc (ProcessSource interface)
//   - files.go: Open-file enumeration over /proc/<pid>/fd (FileSource)
//   - formatter.go: Display formatting for fd link targets with an
//     extensible PathFormatter interface
//   - config.go: Viper-backed configuration
//   - logger.go: Deferred diagnostic log, flushed after the UI exits
//   - styles.go: Lipgloss styles for terminal rendering
//   - keys.go: Key bindings configuration
//   - messages.go: TUI message types for the Elm architecture
//   - helpers.go: Utility functions for string formatting
//
// # Extensibility
//
// Custom fd target formatters can be registered using RegisterFormatter:
//
//	RegisterFormatter(&MyCustomFormatter{})
//
// The ProcessSource and FileSource interfaces allow for custom
// implementations and easier testing through dependency injection.
package main
