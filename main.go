package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

// version is set at build time via ldflags
var version = "dev"

func main() {
	// Handle --version / -v flag
	if len(os.Args) > 1 {
		arg := os.Args[1]
		if arg == "-v" || arg == "--version" || arg == "version" {
			fmt.Println("procsweep", version)
			return
		}
		if arg == "-h" || arg == "--help" || arg == "help" {
			printHelp()
			return
		}
	}

	cfg, err := Load()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	debugLog.enabled = cfg.Debug.Log

	sel := NewSharedSelection()
	pw := NewProcessWatcher(
		NewProcSource(cfg.Refresh.ShowKernelThreads),
		cfg.Refresh.ProcessPoll(),
		cfg.Refresh.RerenderDelay(),
	)
	fw := NewFileWatcher(NewFDSource(), sel, cfg.Refresh.FilePoll())

	p := tea.NewProgram(NewModel(cfg, sel, pw, fw), tea.WithAltScreen())

	// Snapshots flow from the watchers into the Elm loop; both loops stop
	// when the program returns and the context is cancelled.
	pw.Notify(p.Send)
	fw.Notify(p.Send)
	ctx, cancel := context.WithCancel(context.Background())
	go pw.Run(ctx)
	go fw.Run(ctx)

	_, runErr := p.Run()
	cancel()

	// The deferred log can only hit the console once the alt screen is gone.
	debugLog.Flush(os.Stdout)

	if runErr != nil {
		fmt.Printf("Error running procsweep: %v\n", runErr)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println(`procsweep - TUI dashboard of processes and their open files

Usage:
  procsweep [flags]

Flags:
  -h, --help      Show this help message
  -v, --version   Show version

Keybindings:
  ↑/k          Move up
  ↓/j          Move down
  t/tab        Toggle pane focus
  /            Search processes by name or pid
  r            Refresh focused pane
  enter/d      Terminate highlighted process
  q            Quit

Configuration:
  ` + ConfigDir() + `/config.yaml (optional), PROCSWEEP_* env overrides`)
}
