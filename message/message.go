// Package message renders commit messages from reconciled groups.
// Everything here is pure and deterministic: no network access, no git
// access, same inputs always produce the same string.
package message

import (
	"fmt"
	"strings"

	"github.com/randalmurphal/commitflow/groups"
	"github.com/randalmurphal/commitflow/jira"
)

// Options carries the configured message decorations.
type Options struct {
	// CommitPrefix overrides the ticket's own prefix when set.
	CommitPrefix string

	// ProjectKey annotates ticketless messages when set.
	ProjectKey string

	// TicketBaseURL, when set, appends the fully qualified ticket URL
	// as a trailing line.
	TicketBaseURL string
}

// Build renders the commit message for one group. With a ticket the
// title is prefixed "<PREFIX>-<NUMBER>: ", the summary follows as a
// blank-line-separated body, and the ticket URL is appended when a base
// URL is configured. Without a ticket the bare title/summary is used,
// annotated with the project key when one is configured.
func Build(g groups.CommitGroup, ticket *jira.Ticket, opts Options) string {
	var parts []string

	if ticket != nil {
		ref := *ticket
		if opts.CommitPrefix != "" {
			ref.Prefix = opts.CommitPrefix
		}
		parts = append(parts, fmt.Sprintf("%s: %s", ref.Key(), g.Title))
		if g.Summary != "" {
			parts = append(parts, g.Summary)
		}
		if url := ref.URL(opts.TicketBaseURL); url != "" {
			parts = append(parts, url)
		}
	} else {
		title := g.Title
		if opts.ProjectKey != "" {
			title = fmt.Sprintf("[%s] %s", opts.ProjectKey, title)
		}
		parts = append(parts, title)
		if g.Summary != "" {
			parts = append(parts, g.Summary)
		}
	}

	return strings.Join(parts, "\n\n")
}

// BuildMerged renders a single message covering several groups: titles
// concatenated with a comma, each summary turned into a bulleted line.
// Used only when all groups are collapsed into one commit.
func BuildMerged(gs []groups.CommitGroup, ticket *jira.Ticket, opts Options) string {
	titles := make([]string, 0, len(gs))
	var bullets []string
	for _, g := range gs {
		titles = append(titles, g.Title)
		if g.Summary != "" {
			bullets = append(bullets, "- "+g.Summary)
		}
	}

	merged := groups.CommitGroup{
		Title:   strings.Join(titles, ", "),
		Summary: strings.Join(bullets, "\n"),
	}
	return Build(merged, ticket, opts)
}
