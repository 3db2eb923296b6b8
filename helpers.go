package main

import "fmt"

// truncate truncates a string to maxLen runes, padding with spaces if
// shorter. Cutting by runes keeps multi-byte names valid UTF-8.
func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return fmt.Sprintf("%-*s", maxLen, s)
	}
	return string(runes[:maxLen-1]) + "…"
}

// formatSize renders a byte count in human units. Sizes in the files
// table are best-effort; zero renders as a dash rather than "0 B".
func formatSize(bytes int64) string {
	if bytes <= 0 {
		return "-"
	}
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
