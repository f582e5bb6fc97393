package git

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Context manages git operations for a repository.
type Context struct {
	repoPath string        // Path to the repository root
	runner   CommandRunner // Command runner (defaults to ExecRunner)
}

// Option configures Context.
type Option func(*Context)

// WithRunner sets a custom command runner for git operations.
// This is primarily used for testing to inject mock command execution.
func WithRunner(runner CommandRunner) Option {
	return func(g *Context) {
		g.runner = runner
	}
}

// NewContext creates a new git context for the repository.
// It validates that the path is a git repository and applies any options.
func NewContext(repoPath string, opts ...Option) (*Context, error) {
	absPath, err := filepath.Abs(repoPath)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}

	g := &Context{
		repoPath: absPath,
		runner:   NewExecRunner(),
	}

	for _, opt := range opts {
		opt(g)
	}

	if _, err := g.runGit("rev-parse", "--git-dir"); err != nil {
		return nil, ErrNotGitRepo
	}

	return g, nil
}

// RepoPath returns the path to the repository.
func (g *Context) RepoPath() string {
	return g.repoPath
}

// RootDir returns the absolute path of the repository's top-level directory.
func (g *Context) RootDir() (string, error) {
	root, err := g.runGit("rev-parse", "--show-toplevel")
	if err != nil {
		return "", &Error{Op: "resolve repository root", Err: err}
	}
	return root, nil
}

// AtRoot returns a context rooted at the repository's top-level
// directory. Porcelain status reports root-relative paths, so every
// follow-up command must run from the root for those pathspecs to
// resolve.
func (g *Context) AtRoot() (*Context, error) {
	root, err := g.RootDir()
	if err != nil {
		return nil, err
	}
	return &Context{repoPath: root, runner: g.runner}, nil
}

// CurrentBranch returns the current branch name.
func (g *Context) CurrentBranch() (string, error) {
	branch, err := g.runGit("rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", &Error{Op: "get current branch", Err: err}
	}
	return branch, nil
}

// Status returns the working tree status in porcelain format, parsed
// into one entry per changed path.
func (g *Context) Status() ([]StatusEntry, error) {
	out, err := g.runGit("status", "--porcelain")
	if err != nil {
		return nil, &Error{Op: "status", Err: err}
	}
	return parseStatus(out), nil
}

// DiffFile returns the unified diff for a tracked path, including
// staged changes (diffed against HEAD).
func (g *Context) DiffFile(path string) (string, error) {
	diff, err := g.runGit("diff", "HEAD", "--", path)
	if err != nil {
		return "", &Error{Op: "diff", Err: err}
	}
	return diff, nil
}

// DiffUntracked returns a unified diff of an untracked path against an
// empty baseline, so new-file content is representable as added lines.
// git exits non-zero when --no-index finds differences; any output is
// still the diff.
func (g *Context) DiffUntracked(path string) (string, error) {
	diff, err := g.runGit("diff", "--no-index", "--", "/dev/null", path)
	if diff == "" && err != nil {
		return "", &Error{Op: "diff untracked", Err: err}
	}
	return diff, nil
}

// Stage adds files to the staging area.
func (g *Context) Stage(files ...string) error {
	if len(files) == 0 {
		return nil
	}
	args := append([]string{"add", "--"}, files...)
	if _, err := g.runGit(args...); err != nil {
		return &Error{Op: "stage files", Err: err}
	}
	return nil
}

// HasStagedChanges reports whether anything is currently staged.
func (g *Context) HasStagedChanges() (bool, error) {
	out, err := g.runGit("diff", "--cached", "--name-only")
	if err != nil {
		return false, &Error{Op: "check staged changes", Err: err}
	}
	return strings.TrimSpace(out) != "", nil
}

// Commit creates a commit with the given message.
// Returns ErrNothingToCommit if there are no staged changes.
func (g *Context) Commit(message string) error {
	output, err := g.runGit("commit", "-m", message)
	if err != nil {
		if strings.Contains(output, "nothing to commit") ||
			strings.Contains(err.Error(), "nothing to commit") {
			return ErrNothingToCommit
		}
		return &Error{Op: "commit", Output: output, Err: err}
	}
	return nil
}

// HeadCommit returns the current HEAD commit SHA.
func (g *Context) HeadCommit() (string, error) {
	sha, err := g.runGit("rev-parse", "HEAD")
	if err != nil {
		return "", &Error{Op: "get HEAD commit", Err: err}
	}
	return sha, nil
}

// runGit executes a git command and returns stdout.
func (g *Context) runGit(args ...string) (string, error) {
	return g.runner.Run(g.repoPath, "git", args...)
}
