// Package commit materializes reconciled groups as real commits, or
// renders a dry-run preview. Groups are processed strictly in sequence;
// a failure aborts the remaining groups but never rolls back commits
// already created.
package commit

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/randalmurphal/commitflow/git"
	"github.com/randalmurphal/commitflow/groups"
)

// Status is the terminal state of one group.
type Status string

// Terminal group states.
const (
	StatusCommitted Status = "committed"
	StatusSkipped   Status = "skipped"
	StatusPreviewed Status = "previewed"
)

// SkipNoStagedChanges marks a group whose files produced nothing to
// stage, typically because they were already clean or claimed by a
// previous commit.
const SkipNoStagedChanges = "no-staged-changes"

// Plan pairs a reconciled group with its rendered commit message.
type Plan struct {
	Group   groups.CommitGroup
	Message string
}

// Result records what happened to one group.
type Result struct {
	Title  string
	Files  []string
	Status Status
	Reason string // Set when Status is StatusSkipped
	SHA    string // Set when Status is StatusCommitted and HEAD was readable
}

var warnColor = color.New(color.FgYellow)

// Executor sequences stage/commit operations per group.
type Executor struct {
	git    *git.Context
	out    io.Writer
	dryRun bool
}

// NewExecutor creates an executor. With dryRun set, Apply performs no
// git mutations and only prints previews.
func NewExecutor(g *git.Context, out io.Writer, dryRun bool) *Executor {
	return &Executor{git: g, out: out, dryRun: dryRun}
}

// Apply processes each plan in order. A stage or commit failure stops
// processing and returns the results accumulated so far alongside the
// error; commits already created stay.
func (e *Executor) Apply(plans []Plan) ([]Result, error) {
	var results []Result

	for i, plan := range plans {
		if e.dryRun {
			e.preview(i+1, len(plans), plan)
			results = append(results, Result{
				Title:  plan.Group.Title,
				Files:  plan.Group.Files,
				Status: StatusPreviewed,
			})
			continue
		}

		result, err := e.commitGroup(plan)
		results = append(results, result)
		if err != nil {
			return results, err
		}
	}

	return results, nil
}

// commitGroup runs the stage-then-commit sequence for one group.
func (e *Executor) commitGroup(plan Plan) (Result, error) {
	result := Result{Title: plan.Group.Title, Files: plan.Group.Files}

	if err := e.git.Stage(plan.Group.Files...); err != nil {
		return result, fmt.Errorf("stage group %q: %w", plan.Group.Title, err)
	}

	staged, err := e.git.HasStagedChanges()
	if err != nil {
		return result, fmt.Errorf("check staged changes for group %q: %w", plan.Group.Title, err)
	}
	if !staged {
		warnColor.Fprintf(e.out, "Warning: skipping group %q: nothing staged\n", plan.Group.Title)
		result.Status = StatusSkipped
		result.Reason = SkipNoStagedChanges
		return result, nil
	}

	if err := e.git.Commit(Flatten(plan.Message)); err != nil {
		return result, fmt.Errorf("commit group %q: %w", plan.Group.Title, err)
	}
	result.Status = StatusCommitted

	// The commit exists either way; a failed SHA lookup only degrades
	// the report line.
	sha, err := e.git.HeadCommit()
	if err != nil || sha == "" {
		fmt.Fprintf(e.out, "Committed %q (%d files)\n", plan.Group.Title, len(plan.Group.Files))
		return result, nil
	}
	result.SHA = sha
	fmt.Fprintf(e.out, "Committed %s %q (%d files)\n", shortSHA(sha), plan.Group.Title, len(plan.Group.Files))
	return result, nil
}

// shortSHA abbreviates a commit SHA for display.
func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}

// preview prints the structured dry-run view of one plan.
func (e *Executor) preview(n, total int, plan Plan) {
	fmt.Fprintf(e.out, "--- Commit %d/%d: %s ---\n", n, total, plan.Group.Title)
	fmt.Fprintln(e.out, "Files:")
	for _, f := range plan.Group.Files {
		fmt.Fprintf(e.out, "  %s\n", f)
	}
	fmt.Fprintln(e.out, "Message:")
	for _, line := range strings.Split(plan.Message, "\n") {
		fmt.Fprintf(e.out, "  %s\n", line)
	}
}

// Flatten collapses a message to a single line, since it is handed to
// git as one command-line argument.
func Flatten(message string) string {
	flat := strings.ReplaceAll(message, "\r\n", " ")
	return strings.ReplaceAll(flat, "\n", " ")
}
