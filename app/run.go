// Package app wires the commit pipeline end to end: collect changes,
// ask the configured backend to group them, reconcile the answer, and
// materialize one commit per group.
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/randalmurphal/commitflow/changes"
	"github.com/randalmurphal/commitflow/commit"
	"github.com/randalmurphal/commitflow/config"
	"github.com/randalmurphal/commitflow/git"
	"github.com/randalmurphal/commitflow/groups"
	"github.com/randalmurphal/commitflow/jira"
	"github.com/randalmurphal/commitflow/llm"
	"github.com/randalmurphal/commitflow/message"
	"github.com/randalmurphal/commitflow/prompt"
)

var warnColor = color.New(color.FgYellow)

// Options configures a pipeline run.
type Options struct {
	Dir    string // Repository directory; defaults to "."
	DryRun bool   // Print previews instead of committing
	Single bool   // Collapse all groups into one commit

	Stdout io.Writer // Defaults to os.Stdout

	// Runner and Provider are test injection points; both default to
	// the real implementations.
	Runner   git.CommandRunner
	Provider llm.Provider
}

// Run executes the full pipeline once. Any returned error is fatal for
// the run; commits created before a failure stay.
func Run(ctx context.Context, opts Options) error {
	if opts.Dir == "" {
		opts.Dir = "."
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}

	var gitOpts []git.Option
	if opts.Runner != nil {
		gitOpts = append(gitOpts, git.WithRunner(opts.Runner))
	}
	g, err := git.NewContext(opts.Dir, gitOpts...)
	if err != nil {
		return err
	}

	// Status paths are root-relative; run everything from the root so
	// they resolve even when invoked from a subdirectory.
	g, err = g.AtRoot()
	if err != nil {
		return err
	}
	root := g.RepoPath()

	cfg := config.NewResolver(root).Resolve()

	cs, err := changes.Collect(g)
	if err != nil {
		return err
	}
	if cs.Empty() {
		fmt.Fprintln(opts.Stdout, "Working tree clean, nothing to commit.")
		return nil
	}

	branch, err := g.CurrentBranch()
	if err != nil {
		return err
	}
	ticket := jira.FromBranch(branch)

	provider := opts.Provider
	if provider == nil {
		provider, err = llm.New(llm.Config{
			Provider: cfg.Get(config.KeyProvider),
			Model:    cfg.Get(config.KeyModel),
			APIKey:   cfg.Get(config.KeyAPIKey),
			BaseURL:  cfg.Get(config.KeyBaseURL),
		})
		if err != nil {
			return err
		}
	}

	loader := prompt.NewLoader(root)
	promptText, err := prompt.GroupingPrompt(loader, cs)
	if err != nil {
		return err
	}

	fmt.Fprintf(opts.Stdout, "Asking %s to group %d changed files...\n",
		provider.Name(), len(cs.Files))

	raw, err := provider.Generate(ctx, promptText, llm.GenerateOptions{
		MaxTokens: cfg.GetInt(config.KeyMaxTokens, 4000),
	})
	if err != nil {
		return err
	}

	parsed, err := groups.Parse(raw)
	if err != nil {
		return err
	}

	reconciled, warnings := groups.Reconcile(parsed, cs.Paths())
	for _, w := range warnings {
		warnColor.Fprintf(opts.Stdout, "Warning: %s\n", w)
	}

	msgOpts := message.Options{
		CommitPrefix:  cfg.Get(config.KeyCommitPrefix),
		ProjectKey:    cfg.Get(config.KeyProjectKey),
		TicketBaseURL: cfg.Get(config.KeyTicketBaseURL),
	}

	plans := buildPlans(reconciled, ticket, msgOpts, opts.Single)

	exec := commit.NewExecutor(g, opts.Stdout, opts.DryRun)
	results, err := exec.Apply(plans)
	if err != nil {
		return err
	}

	summarize(opts.Stdout, results)
	return nil
}

// buildPlans renders one plan per group, or a single merged plan when
// collapsing.
func buildPlans(reconciled []groups.CommitGroup, ticket *jira.Ticket, msgOpts message.Options, single bool) []commit.Plan {
	if single && len(reconciled) > 1 {
		var files []string
		var titles []string
		for _, g := range reconciled {
			files = append(files, g.Files...)
			titles = append(titles, g.Title)
		}
		merged := groups.CommitGroup{
			Title: fmt.Sprintf("%d groups merged", len(titles)),
			Files: files,
		}
		return []commit.Plan{{
			Group:   merged,
			Message: message.BuildMerged(reconciled, ticket, msgOpts),
		}}
	}

	plans := make([]commit.Plan, 0, len(reconciled))
	for _, g := range reconciled {
		plans = append(plans, commit.Plan{
			Group:   g,
			Message: message.Build(g, ticket, msgOpts),
		})
	}
	return plans
}

// summarize prints the per-status counts for a finished run.
func summarize(out io.Writer, results []commit.Result) {
	counts := make(map[commit.Status]int)
	for _, r := range results {
		counts[r.Status]++
	}

	switch {
	case counts[commit.StatusPreviewed] > 0:
		fmt.Fprintf(out, "Dry run: %d commit(s) previewed, nothing written.\n",
			counts[commit.StatusPreviewed])
	default:
		fmt.Fprintf(out, "Done: %d commit(s) created, %d group(s) skipped.\n",
			counts[commit.StatusCommitted], counts[commit.StatusSkipped])
	}
}
