package main

import (
	"os"
	"regexp"
	"strings"
)

// Pre-compiled regular expressions for better performance
var (
	socketRegex    = regexp.MustCompile(`^socket:\[(\d+)\]$`)
	pipeRegex      = regexp.MustCompile(`^pipe:\[(\d+)\]$`)
	anonInodeRegex = regexp.MustCompile(`^\[?([^\]]+?)\]?$`)
	memfdRegex     = regexp.MustCompile(`^/memfd:([^ ]*)`)
)

// PathFormatter is an interface for formatting fd link targets.
// Implement this interface to add custom formatting for specific kinds of
// descriptors.
type PathFormatter interface {
	// Name returns the formatter name (for debugging/logging)
	Name() string

	// CanFormat returns true if this formatter can handle the given target
	CanFormat(target string) bool

	// Format returns the formatted display string
	Format(target string) string
}

// formatPath applies all registered formatters to produce a readable
// display string for an fd link target. It tries each formatter in order
// and returns the first successful format.
func formatPath(target string) string {
	if target == "" {
		return ""
	}

	for _, formatter := range registeredFormatters {
		if formatter.CanFormat(target) {
			result := formatter.Format(target)
			if result != "" {
				return result
			}
		}
	}

	return target
}

// registeredFormatters holds all active formatters in priority order.
// Formatters earlier in the list take precedence.
var registeredFormatters = []PathFormatter{
	&SocketFormatter{},
	&PipeFormatter{},
	&AnonInodeFormatter{},
	&MemfdFormatter{}, // Must come before the deleted formatter
	&DeletedFormatter{},
	&HomeDirFormatter{},
}

// RegisterFormatter adds a custom formatter to the beginning of the list
// (highest priority). This allows extending the formatting behavior at
// runtime.
func RegisterFormatter(f PathFormatter) {
	registeredFormatters = append([]PathFormatter{f}, registeredFormatters...)
}

// =============================================================================
// Built-in Formatters
// =============================================================================

// SocketFormatter handles socket descriptors, which resolve to
// "socket:[<inode>]" rather than a filesystem path.
type SocketFormatter struct{}

func (f *SocketFormatter) Name() string { return "socket" }

func (f *SocketFormatter) CanFormat(target string) bool {
	return strings.HasPrefix(target, "socket:")
}

func (f *SocketFormatter) Format(target string) string {
	matches := socketRegex.FindStringSubmatch(target)
	if len(matches) >= 2 {
		return "socket #" + matches[1]
	}
	return ""
}

// PipeFormatter handles pipe descriptors ("pipe:[<inode>]").
type PipeFormatter struct{}

func (f *PipeFormatter) Name() string { return "pipe" }

func (f *PipeFormatter) CanFormat(target string) bool {
	return strings.HasPrefix(target, "pipe:")
}

func (f *PipeFormatter) Format(target string) string {
	matches := pipeRegex.FindStringSubmatch(target)
	if len(matches) >= 2 {
		return "pipe #" + matches[1]
	}
	return ""
}

// AnonInodeFormatter handles anonymous inodes like "anon_inode:[eventpoll]"
// or "anon_inode:inotify".
type AnonInodeFormatter struct{}

func (f *AnonInodeFormatter) Name() string { return "anon-inode" }

func (f *AnonInodeFormatter) CanFormat(target string) bool {
	return strings.HasPrefix(target, "anon_inode:")
}

func (f *AnonInodeFormatter) Format(target string) string {
	matches := anonInodeRegex.FindStringSubmatch(strings.TrimPrefix(target, "anon_inode:"))
	if len(matches) >= 2 {
		return "anon: " + matches[1]
	}
	return ""
}

// MemfdFormatter handles memfd-backed descriptors, which always carry a
// "(deleted)" suffix because they never existed on disk.
type MemfdFormatter struct{}

func (f *MemfdFormatter) Name() string { return "memfd" }

func (f *MemfdFormatter) CanFormat(target string) bool {
	return strings.HasPrefix(target, "/memfd:")
}

func (f *MemfdFormatter) Format(target string) string {
	matches := memfdRegex.FindStringSubmatch(target)
	if len(matches) >= 2 && matches[1] != "" {
		return "memfd " + matches[1]
	}
	return "memfd"
}

// DeletedFormatter handles paths whose backing file was removed while the
// descriptor stayed open. The kernel appends " (deleted)" to the target.
type DeletedFormatter struct{}

func (f *DeletedFormatter) Name() string { return "deleted" }

func (f *DeletedFormatter) CanFormat(target string) bool {
	return strings.HasSuffix(target, " (deleted)")
}

func (f *DeletedFormatter) Format(target string) string {
	path := strings.TrimSuffix(target, " (deleted)")
	return shortenHome(path) + " [deleted]"
}

// HomeDirFormatter shortens paths under the user's home directory to ~/.
type HomeDirFormatter struct{}

func (f *HomeDirFormatter) Name() string { return "home-dir" }

func (f *HomeDirFormatter) CanFormat(target string) bool {
	home, err := os.UserHomeDir()
	return err == nil && home != "/" && strings.HasPrefix(target, home+"/")
}

func (f *HomeDirFormatter) Format(target string) string {
	return shortenHome(target)
}

// shortenHome replaces a home-directory prefix with ~.
func shortenHome(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" || home == "/" {
		return path
	}
	if strings.HasPrefix(path, home+"/") {
		return "~" + strings.TrimPrefix(path, home)
	}
	return path
}
