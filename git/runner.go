package git

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// CommandRunner executes external commands for git operations.
// The default implementation shells out via os/exec; tests inject
// a fake to script git's behavior without touching a repository.
type CommandRunner interface {
	// Run executes name with args in dir and returns trimmed stdout.
	// On a non-zero exit, stdout produced so far is still returned
	// alongside the error.
	Run(dir, name string, args ...string) (string, error)
}

// ExecRunner runs commands as real subprocesses.
type ExecRunner struct{}

// NewExecRunner creates the default subprocess runner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run implements CommandRunner.
func (*ExecRunner) Run(dir, name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := strings.TrimRight(stdout.String(), "\n")
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return out, fmt.Errorf("%s %s: %s", name, strings.Join(args, " "), msg)
	}
	return out, nil
}
