// Package jira derives ticket references from git branch names so
// generated commit messages can carry the tracker key and URL.
package jira

import (
	"regexp"
	"strings"
)

// ticketPattern matches a tracker key like SCRUM-123 anywhere in a
// branch name. Keys are uppercase, so "release-2024" does not match.
var ticketPattern = regexp.MustCompile(`([A-Z][A-Z0-9]*)-(\d+)`)

// Ticket is a project-tracker reference parsed from a branch name.
type Ticket struct {
	Prefix string // Project prefix, e.g. "SCRUM"
	Number string // Issue number, e.g. "123"
}

// FromBranch extracts a ticket reference from a branch name such as
// "feature/SCRUM-123-login". Returns nil if the branch carries no
// recognizable reference.
func FromBranch(branch string) *Ticket {
	m := ticketPattern.FindStringSubmatch(branch)
	if m == nil {
		return nil
	}
	return &Ticket{
		Prefix: m[1],
		Number: m[2],
	}
}

// Key returns the canonical "PREFIX-NUMBER" form.
func (t *Ticket) Key() string {
	return t.Prefix + "-" + t.Number
}

// URL returns the fully qualified ticket URL under base, or empty when
// no base is configured.
func (t *Ticket) URL(base string) string {
	if base == "" {
		return ""
	}
	return strings.TrimRight(base, "/") + "/" + t.Key()
}
