// Package groups parses the backend's structured grouping output and
// reconciles it against the ground-truth set of changed paths. After
// reconciliation the emitted groups form a partition: every valid path
// is claimed by exactly one group, and paths the backend missed land in
// a synthetic catch-all group.
package groups

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// CommitGroup is one backend-proposed commit: a title, a summary, and
// the files it covers.
type CommitGroup struct {
	Title   string   `json:"title"`
	Summary string   `json:"summary"`
	Files   []string `json:"files"`
}

// CatchAllTitle names the synthetic group holding valid paths no
// backend group claimed.
const CatchAllTitle = "Remaining files"

// rawPrefixLen bounds how much raw backend text a parse error surfaces.
const rawPrefixLen = 200

// MalformedOutputError reports backend output that could not be parsed
// into a non-empty group list.
type MalformedOutputError struct {
	Raw string // Bounded prefix of the raw backend text
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("malformed backend output: %s", e.Raw)
}

// newMalformedError builds a MalformedOutputError with a bounded raw
// prefix, cut on a rune boundary so the excerpt stays valid UTF-8.
func newMalformedError(raw string) *MalformedOutputError {
	if len(raw) > rawPrefixLen {
		cut := rawPrefixLen
		for cut > 0 && !utf8.RuneStart(raw[cut]) {
			cut--
		}
		raw = raw[:cut]
	}
	return &MalformedOutputError{Raw: raw}
}

// Parse decodes raw backend text into commit groups. Backends sometimes
// wrap the JSON in a fenced code block; one such wrapper is stripped
// before decoding. Unparsable or empty output is a
// *MalformedOutputError.
func Parse(raw string) ([]CommitGroup, error) {
	cleaned := stripFence(raw)

	var parsed []CommitGroup
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, newMalformedError(raw)
	}
	if len(parsed) == 0 {
		return nil, newMalformedError(raw)
	}
	return parsed, nil
}

// stripFence removes a single leading/trailing fenced-code-block
// delimiter line (``` or ```json) if present.
func stripFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 {
		return trimmed
	}
	lines = lines[1:]
	if strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

// Reconcile validates parsed groups against the set of actually changed
// paths. Paths the backend invented are dropped silently; a path
// claimed twice stays with the first group that claimed it; groups left
// without any valid file are discarded with a warning; and valid paths
// no group claimed are collected into an appended catch-all group.
// The input slices are not mutated.
func Reconcile(parsed []CommitGroup, validPaths []string) ([]CommitGroup, []string) {
	valid := make(map[string]bool, len(validPaths))
	for _, p := range validPaths {
		valid[p] = true
	}

	var out []CommitGroup
	var warnings []string
	claimed := make(map[string]bool)

	for _, g := range parsed {
		var files []string
		for _, f := range g.Files {
			if valid[f] && !claimed[f] {
				claimed[f] = true
				files = append(files, f)
			}
		}
		if len(files) == 0 {
			warnings = append(warnings, fmt.Sprintf("discarding group %q: no valid files", g.Title))
			continue
		}
		out = append(out, CommitGroup{Title: g.Title, Summary: g.Summary, Files: files})
	}

	var unclaimed []string
	for _, p := range validPaths {
		if !claimed[p] {
			unclaimed = append(unclaimed, p)
		}
	}
	if len(unclaimed) > 0 {
		out = append(out, CommitGroup{
			Title:   CatchAllTitle,
			Summary: "Changes not assigned to any group by the model.",
			Files:   unclaimed,
		})
	}

	return out, warnings
}
