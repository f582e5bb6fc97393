package git

import "strings"

// StatusEntry is one parsed line of `git status --porcelain` output.
type StatusEntry struct {
	Code     string // Two-character XY status code
	Path     string // Current path (the new path for renames)
	OrigPath string // Original path for renames/copies, empty otherwise
}

// parseStatus parses porcelain-format status output.
// Each line is "XY path", or "XY orig -> new" for renames and copies.
func parseStatus(out string) []StatusEntry {
	var entries []StatusEntry
	for _, line := range strings.Split(out, "\n") {
		if len(line) < 4 {
			continue
		}
		code := line[:2]
		path := strings.TrimSpace(line[3:])

		var orig string
		if i := strings.Index(path, " -> "); i >= 0 {
			orig = path[:i]
			path = path[i+4:]
		}

		path = unquotePath(path)
		orig = unquotePath(orig)

		entries = append(entries, StatusEntry{Code: code, Path: path, OrigPath: orig})
	}
	return entries
}

// unquotePath strips the quotes git adds around paths with special
// characters. Escape sequences inside are left as-is.
func unquotePath(path string) string {
	if len(path) >= 2 && path[0] == '"' && path[len(path)-1] == '"' {
		return path[1 : len(path)-1]
	}
	return path
}
