// Package changes collects the working-tree state of a repository into
// a bounded, serializable ChangeSet: one entry per changed path plus a
// capped line-diff for every path that has a representable diff.
package changes

import (
	"strings"

	"github.com/randalmurphal/commitflow/git"
)

// MaxDiffLines caps the number of added/removed lines retained per file.
// Larger diffs are truncated so the prompt stays within a sane budget.
const MaxDiffLines = 100

// Status classifies a changed file.
type Status string

// File statuses derived from porcelain status codes.
const (
	StatusModified  Status = "modified"
	StatusAdded     Status = "added"
	StatusDeleted   Status = "deleted"
	StatusUntracked Status = "untracked"
	StatusRenamed   Status = "renamed"
	StatusCopied    Status = "copied"
	StatusUnmerged  Status = "unmerged"
)

// ChangedFile is one changed path with its status.
type ChangedFile struct {
	Path   string
	Status Status
}

// FileDiff holds the added/removed content lines for one file, capped
// at MaxDiffLines and stripped of the +++/--- header noise.
type FileDiff struct {
	Path  string
	Lines []string
}

// ChangeSet aggregates all changed files and their diffs for a single
// invocation. Every FileDiff path is present in Files.
type ChangeSet struct {
	Files []ChangedFile
	Diffs []FileDiff
}

// Empty reports whether the working tree had no changes.
func (cs *ChangeSet) Empty() bool {
	return len(cs.Files) == 0
}

// Paths returns all changed paths in collection order.
func (cs *ChangeSet) Paths() []string {
	paths := make([]string, 0, len(cs.Files))
	for _, f := range cs.Files {
		paths = append(paths, f.Path)
	}
	return paths
}

// PathSet returns the changed paths as a lookup set.
func (cs *ChangeSet) PathSet() map[string]bool {
	set := make(map[string]bool, len(cs.Files))
	for _, f := range cs.Files {
		set[f.Path] = true
	}
	return set
}

// Collect builds a ChangeSet from the repository's current status.
// A diff failure for an individual file is not fatal: the file stays in
// the set without a FileDiff.
func Collect(g *git.Context) (*ChangeSet, error) {
	entries, err := g.Status()
	if err != nil {
		return nil, err
	}

	cs := &ChangeSet{}
	for _, entry := range entries {
		status := statusFromCode(entry.Code)
		cs.Files = append(cs.Files, ChangedFile{Path: entry.Path, Status: status})

		if !diffable(status) {
			continue
		}

		var raw string
		if status == StatusUntracked {
			raw, err = g.DiffUntracked(entry.Path)
		} else {
			raw, err = g.DiffFile(entry.Path)
		}
		if err != nil {
			continue
		}

		if lines := changedLines(raw); len(lines) > 0 {
			cs.Diffs = append(cs.Diffs, FileDiff{Path: entry.Path, Lines: lines})
		}
	}

	return cs, nil
}

// statusFromCode maps a two-character porcelain XY code to a Status.
func statusFromCode(code string) Status {
	switch {
	case code == "??":
		return StatusUntracked
	case strings.Contains(code, "U"):
		return StatusUnmerged
	case strings.Contains(code, "R"):
		return StatusRenamed
	case strings.Contains(code, "C"):
		return StatusCopied
	case strings.Contains(code, "A"):
		return StatusAdded
	case strings.Contains(code, "D"):
		return StatusDeleted
	default:
		return StatusModified
	}
}

// diffable reports whether a file with the given status should
// contribute a diff. Pure deletions carry no useful content.
func diffable(status Status) bool {
	switch status {
	case StatusModified, StatusAdded, StatusUntracked, StatusRenamed, StatusCopied:
		return true
	default:
		return false
	}
}

// changedLines extracts added/removed content lines from a unified
// diff and truncates the result to MaxDiffLines. The +++/--- file
// headers only appear before the first @@ hunk marker; past it, a line
// starting with --- is removed content (e.g. a deleted "-- comment")
// and is kept.
func changedLines(diff string) []string {
	var lines []string
	inHunk := false
	for _, line := range strings.Split(diff, "\n") {
		if strings.HasPrefix(line, "@@") {
			inHunk = true
			continue
		}
		if !inHunk && (strings.HasPrefix(line, "+++") || strings.HasPrefix(line, "---")) {
			continue
		}
		if strings.HasPrefix(line, "+") || strings.HasPrefix(line, "-") {
			lines = append(lines, line)
			if len(lines) == MaxDiffLines {
				break
			}
		}
	}
	return lines
}
