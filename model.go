package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// paneID identifies one of the two tables.
type paneID int

const (
	procPaneID paneID = iota
	filePaneID
)

// geometry is a terminal size snapshot. Both panes cache the geometry
// their columns were last built for and only rebuild when it changes.
type geometry struct {
	Columns int
	Lines   int
}

func (g geometry) valid() bool { return g.Columns > 0 && g.Lines > 0 }

// Fixed column widths; the name/path column absorbs whatever is left.
const (
	pidColWidth    = 8
	statusColWidth = 10
	fdColWidth     = 6
	sizeColWidth   = 10
	minFlexWidth   = 8

	// chromeLines is vertical space outside the tables: title, pane
	// titles, status and help lines.
	chromeLines = 7
)

// landscapeFor decides orientation from terminal geometry: side-by-side
// when the terminal is wide relative to its height.
func landscapeFor(g geometry, divisor int) bool {
	return g.Columns/divisor > g.Lines
}

// paneSize returns the width and height available to each table for the
// given orientation. Both panes always get the same formula so their
// layouts never disagree within one frame.
func paneSize(g geometry, landscape bool) (width, height int) {
	if landscape {
		return g.Columns / 2, max(3, g.Lines-chromeLines)
	}
	return g.Columns, max(3, (g.Lines-chromeLines)/2)
}

// procColumns builds the process table columns for one pane width.
func procColumns(paneWidth int) []table.Column {
	name := max(minFlexWidth, paneWidth-pidColWidth-statusColWidth-6)
	return []table.Column{
		{Title: "PID", Width: pidColWidth},
		{Title: "Name", Width: name},
		{Title: "Status", Width: statusColWidth},
	}
}

// fileColumns builds the open-files table columns for one pane width.
func fileColumns(paneWidth int) []table.Column {
	path := max(minFlexWidth, paneWidth-fdColWidth-sizeColWidth-6)
	return []table.Column{
		{Title: "FD", Width: fdColWidth},
		{Title: "Path", Width: path},
		{Title: "Size", Width: sizeColWidth},
	}
}

// Model represents the TUI state
type Model struct {
	cfg *Config
	sel *SharedSelection

	procWatcher *ProcessWatcher
	fileWatcher *FileWatcher

	procTable table.Model
	fileTable table.Model

	procs   []ProcessRecord // full snapshot, pid-ascending
	visible []ProcessRecord // snapshot after the search filter, backs the table rows
	files   []FileRecord
	fileSel Selection // the selection the current file rows belong to

	searching   bool   // typing into the search bar
	searchQuery string // active filter, empty means unfiltered

	focus     paneID
	geom      geometry // current terminal geometry
	tableGeom geometry // geometry the columns were last built for
	landscape bool

	confirming    bool
	toKill        ProcessRecord
	statusMessage string
	statusTime    time.Time
}

// NewModel wires the model to its collaborators. The watchers are started
// by main; the model only issues manual refreshes against them.
func NewModel(cfg *Config, sel *SharedSelection, pw *ProcessWatcher, fw *FileWatcher) Model {
	// Until the first WindowSizeMsg arrives the terminal size is unknown;
	// fall back to the configured default geometry.
	g := geometry{Columns: cfg.Layout.FallbackColumns, Lines: cfg.Layout.FallbackLines}

	pt := table.New(table.WithFocused(true))
	pt.SetStyles(tableStyles(true))
	pt.KeyMap.LineUp = keys.Up
	pt.KeyMap.LineDown = keys.Down
	ft := table.New()
	ft.SetStyles(tableStyles(false))
	ft.KeyMap.LineUp = keys.Up
	ft.KeyMap.LineDown = keys.Down

	m := Model{
		cfg:         cfg,
		sel:         sel,
		procWatcher: pw,
		fileWatcher: fw,
		procTable:   pt,
		fileTable:   ft,
		fileSel:     UnsetSelection(),
		focus:       procPaneID,
		geom:        g,
		landscape:   landscapeFor(g, cfg.Layout.LandscapeDivisor),
	}
	m.rebuildTables()
	return m
}

// Init requests an immediate first snapshot instead of waiting out the
// first poll tick.
func (m Model) Init() tea.Cmd {
	return m.refreshProcsCmd()
}

// refreshProcsCmd hands a manual refresh to the process watcher. The
// snapshot arrives separately via Program.Send.
func (m Model) refreshProcsCmd() tea.Cmd {
	w := m.procWatcher
	return func() tea.Msg {
		w.Refresh()
		return nil
	}
}

// refreshFilesCmd hands a manual refresh to the file watcher.
func (m Model) refreshFilesCmd() tea.Cmd {
	w := m.fileWatcher
	return func() tea.Msg {
		w.Refresh()
		return nil
	}
}

// terminateCmd sends SIGTERM to pid off the Elm loop.
func (m Model) terminateCmd(pid int) tea.Cmd {
	return func() tea.Msg {
		return killResultMsg{pid: pid, err: TerminateProcess(pid)}
	}
}

// filterProcesses returns the records whose name contains the query
// (case-insensitive) or whose pid contains the query's digits. An empty
// query passes everything through.
func filterProcesses(records []ProcessRecord, query string) []ProcessRecord {
	if query == "" {
		return records
	}
	q := strings.ToLower(query)
	filtered := make([]ProcessRecord, 0, len(records))
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Name), q) ||
			strings.Contains(strconv.Itoa(r.PID), query) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// applyFilter recomputes the visible rows from the full snapshot and the
// current query, keeping the cursor inside the new row set.
func (m *Model) applyFilter() {
	m.visible = filterProcesses(m.procs, m.searchQuery)
	m.procTable.SetRows(procRows(m.visible))
	if m.procTable.Cursor() >= len(m.visible) {
		m.procTable.SetCursor(max(0, len(m.visible)-1))
	}
	m.syncSelection()
}

// highlightedProc returns the record under the process cursor. ok is
// false for an empty table or a cursor that points outside the row set
// (the malformed-row case); callers treat both as "no highlight".
func (m Model) highlightedProc() (ProcessRecord, bool) {
	i := m.procTable.Cursor()
	if i < 0 || i >= len(m.visible) {
		return ProcessRecord{}, false
	}
	return m.visible[i], true
}

// syncSelection publishes the highlighted pid into the shared slot. This
// is the single writer: nothing else in the program calls Set or Clear.
// An empty table publishes an explicit None so the files pane clears too.
func (m Model) syncSelection() {
	if len(m.visible) == 0 {
		if !m.sel.Load().IsNone() {
			m.sel.Clear()
			debugLog.Logf("selection cleared (empty table)")
		}
		return
	}
	rec, ok := m.highlightedProc()
	if !ok {
		return
	}
	if cur := m.sel.Load(); cur == SomeSelection(rec.PID) {
		return
	}
	m.sel.Set(rec.PID)
	debugLog.Logf("selection -> pid %d (%s)", rec.PID, rec.Name)
}

// setStatus shows a transient message in the status line.
func (m *Model) setStatus(format string, args ...any) {
	m.statusMessage = fmt.Sprintf(format, args...)
	m.statusTime = time.Now()
}

// rebuildTables rebuilds both tables' columns and sizes for the current
// geometry and records it as the built-for geometry.
func (m *Model) rebuildTables() {
	w, h := paneSize(m.geom, m.landscape)
	m.procTable.SetColumns(procColumns(w))
	m.procTable.SetWidth(w)
	m.procTable.SetHeight(h)
	m.fileTable.SetColumns(fileColumns(w))
	m.fileTable.SetWidth(w)
	m.fileTable.SetHeight(h)
	m.tableGeom = m.geom
}

// rebuildTablesIfNeeded rebuilds columns only when the cached geometry no
// longer matches, avoiding per-tick work.
func (m *Model) rebuildTablesIfNeeded() {
	if m.tableGeom != m.geom {
		m.rebuildTables()
	}
}

// procRows converts records into table rows.
func procRows(records []ProcessRecord) []table.Row {
	rows := make([]table.Row, len(records))
	for i, r := range records {
		rows[i] = table.Row{strconv.Itoa(r.PID), r.Name, r.Status}
	}
	return rows
}

// fileRows converts records into table rows, formatting the raw fd link
// targets for display.
func fileRows(records []FileRecord) []table.Row {
	rows := make([]table.Row, len(records))
	for i, r := range records {
		rows[i] = table.Row{strconv.Itoa(r.FD), formatPath(r.Path), formatSize(r.Size)}
	}
	return rows
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKey(msg)

	case tea.WindowSizeMsg:
		if msg.Width > 0 && msg.Height > 0 {
			m.geom = geometry{Columns: msg.Width, Lines: msg.Height}
		} else {
			// Geometry unavailable; keep rendering at the fallback size.
			m.geom = geometry{Columns: m.cfg.Layout.FallbackColumns, Lines: m.cfg.Layout.FallbackLines}
		}
		m.landscape = landscapeFor(m.geom, m.cfg.Layout.LandscapeDivisor)
		m.rebuildTablesIfNeeded()
		return m, nil

	case procSnapshotMsg:
		return m.applyProcSnapshot(msg), nil

	case fileSnapshotMsg:
		m.files = msg.records
		m.fileSel = msg.sel
		m.rebuildTablesIfNeeded()
		m.fileTable.SetRows(fileRows(m.files))
		if m.fileTable.Cursor() >= len(m.files) {
			m.fileTable.SetCursor(max(0, len(m.files)-1))
		}
		return m, nil

	case killResultMsg:
		if msg.err != nil {
			m.setStatus("Failed to terminate process %d: %v", msg.pid, msg.err)
		} else {
			m.setStatus("Sent SIGTERM to process %d", msg.pid)
		}
		return m, m.refreshProcsCmd()
	}

	return m, nil
}

// updateKey dispatches keyboard input.
func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Confirmation mode swallows everything except yes/no.
	if m.confirming {
		switch {
		case key.Matches(msg, keys.Confirm):
			m.confirming = false
			return m, m.terminateCmd(m.toKill.PID)
		case key.Matches(msg, keys.Cancel):
			m.confirming = false
			m.setStatus("Cancelled")
		}
		return m, nil
	}

	// Search mode captures keystrokes into the query until enter or esc.
	if m.searching {
		switch msg.Type {
		case tea.KeyEsc:
			m.searching = false
			m.searchQuery = ""
			m.applyFilter()
		case tea.KeyBackspace:
			if m.searchQuery != "" {
				r := []rune(m.searchQuery)
				m.searchQuery = string(r[:len(r)-1])
				m.applyFilter()
			}
		case tea.KeyEnter:
			// Keep the filter, leave the typing mode.
			m.searching = false
		case tea.KeyRunes:
			m.searchQuery += string(msg.Runes)
			m.procTable.SetCursor(0)
			m.applyFilter()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Search):
		m.searching = true
		return m, nil

	case key.Matches(msg, keys.Cancel):
		if m.searchQuery != "" {
			m.searchQuery = ""
			m.procTable.SetCursor(0)
			m.applyFilter()
		}
		return m, nil

	case key.Matches(msg, keys.Toggle):
		if m.focus == procPaneID {
			m.focus = filePaneID
			m.procTable.Blur()
			m.fileTable.Focus()
		} else {
			m.focus = procPaneID
			m.fileTable.Blur()
			m.procTable.Focus()
		}
		m.procTable.SetStyles(tableStyles(m.focus == procPaneID))
		m.fileTable.SetStyles(tableStyles(m.focus == filePaneID))
		return m, nil

	case key.Matches(msg, keys.Refresh):
		m.setStatus("Refreshing...")
		if m.focus == filePaneID {
			return m, m.refreshFilesCmd()
		}
		return m, m.refreshProcsCmd()

	case key.Matches(msg, keys.Kill):
		if m.focus != procPaneID {
			return m, nil
		}
		if rec, ok := m.highlightedProc(); ok {
			m.toKill = rec
			m.confirming = true
		}
		return m, nil
	}

	// Everything else (including up/down) goes to the focused table.
	var cmd tea.Cmd
	if m.focus == procPaneID {
		m.procTable, cmd = m.procTable.Update(msg)
		m.syncSelection()
	} else {
		m.fileTable, cmd = m.fileTable.Update(msg)
	}
	return m, cmd
}

// applyProcSnapshot replaces the process rows and restores the cursor to
// the same or nearest pid.
func (m Model) applyProcSnapshot(msg procSnapshotMsg) Model {
	if msg.err != nil {
		m.setStatus("Error listing processes")
		return m
	}

	// Record the pid under the cursor before the rows are replaced.
	prev, hadPrev := m.highlightedProc()

	m.procs = msg.records
	m.visible = filterProcesses(m.procs, m.searchQuery)
	m.rebuildTablesIfNeeded()
	m.procTable.SetRows(procRows(m.visible))

	// Replacing the rows puts the cursor back at the top; restoration
	// walks from there.
	m.procTable.SetCursor(0)

	if hadPrev && len(m.visible) > 0 {
		pids := make([]int, len(m.visible))
		for i, r := range m.visible {
			pids[i] = r.PID
		}
		m.procTable.SetCursor(closestIndex(pids, prev.PID, 0))
	}

	m.syncSelection()
	return m
}

// View renders the UI
func (m Model) View() string {
	var sb strings.Builder

	title := "procsweep"
	if m.landscape {
		title += " (landscape)"
	} else {
		title += " (portrait)"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteByte('\n')

	procPane := m.renderPane(procPaneID)
	filePane := m.renderPane(filePaneID)
	if m.landscape {
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, procPane, filePane))
	} else {
		sb.WriteString(lipgloss.JoinVertical(lipgloss.Left, procPane, filePane))
	}

	if m.confirming {
		sb.WriteString(confirmStyle.Render(
			fmt.Sprintf("\nTerminate process %d (%s)? (y/n)", m.toKill.PID, m.toKill.Name)))
	}

	if m.statusMessage != "" && time.Since(m.statusTime) < m.cfg.Refresh.StatusDuration() {
		sb.WriteByte('\n')
		sb.WriteString(statusStyle.Render(m.statusMessage))
	}

	sb.WriteByte('\n')
	if m.searching {
		sb.WriteString(searchStyle.Render("/" + m.searchQuery + "▌"))
	} else if m.searchQuery != "" {
		sb.WriteString(searchFilterStyle.Render("filter: " + m.searchQuery))
		sb.WriteByte('\n')
		sb.WriteString(helpStyle.Render(m.helpLine() + " • esc clear"))
	} else {
		sb.WriteString(helpStyle.Render(m.helpLine()))
	}

	return sb.String()
}

func (m Model) helpLine() string {
	return helpLine(keys.Up, keys.Down, keys.Toggle, keys.Refresh, keys.Kill, keys.Search, keys.Quit)
}

// renderPane renders one titled table.
func (m Model) renderPane(id paneID) string {
	var title, body string
	switch id {
	case procPaneID:
		title = fmt.Sprintf("Processes (%d)", len(m.procs))
		if m.searchQuery != "" {
			title = fmt.Sprintf("Processes (%d/%d)", len(m.visible), len(m.procs))
		}
		body = m.procTable.View()
		if m.searchQuery != "" && len(m.visible) == 0 {
			body += "\n" + emptyStyle.Render(fmt.Sprintf("no processes match %q", m.searchQuery))
		}
	case filePaneID:
		title = "Open Files"
		if pid, ok := m.fileSel.PID(); ok {
			title = fmt.Sprintf("Open Files: pid %d (%d)", pid, len(m.files))
		}
		if m.fileSel.IsUnset() {
			body = m.fileTable.View() + "\n" + emptyStyle.Render("no process selected yet")
		} else if len(m.files) == 0 {
			body = m.fileTable.View() + "\n" + emptyStyle.Render("no open files (gone or access denied)")
		} else {
			body = m.fileTable.View() + "\n" + m.fileDetail()
		}
	}

	style := paneTitleStyle
	if m.focus == id {
		style = paneTitleFocusedStyle
	}
	return style.Render(title) + "\n" + body
}

// fileDetail shows the untruncated link target of the highlighted file
// row under the table.
func (m Model) fileDetail() string {
	i := m.fileTable.Cursor()
	if i < 0 || i >= len(m.files) {
		return ""
	}
	maxLen := max(minFlexWidth, m.tableGeom.Columns-4)
	return emptyStyle.Render("> " + truncate(m.files[i].Path, maxLen))
}
