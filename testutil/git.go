// Package testutil provides test fixtures: temporary git repositories
// and a scriptable command runner.
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// SetupTestRepo creates a temporary git repository for testing.
// Returns the path to the repository.
// The repository is automatically cleaned up when the test ends.
func SetupTestRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	if err := runGit(t, dir, "init"); err != nil {
		t.Fatalf("git init failed: %v", err)
	}

	if err := runGit(t, dir, "config", "user.email", "test@test.com"); err != nil {
		t.Fatalf("git config email failed: %v", err)
	}
	if err := runGit(t, dir, "config", "user.name", "Test User"); err != nil {
		t.Fatalf("git config name failed: %v", err)
	}

	readme := filepath.Join(dir, "README.md")
	if err := os.WriteFile(readme, []byte("# Test Repository\n"), 0o644); err != nil {
		t.Fatalf("failed to create README: %v", err)
	}

	if err := runGit(t, dir, "add", "."); err != nil {
		t.Fatalf("git add failed: %v", err)
	}

	if err := runGit(t, dir, "commit", "-m", "Initial commit"); err != nil {
		t.Fatalf("git commit failed: %v", err)
	}

	return dir
}

// WriteFile creates or updates a file in the test repo without staging it.
func WriteFile(t *testing.T, repoDir, path, content string) {
	t.Helper()

	fullPath := filepath.Join(repoDir, path)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
}

// CommitFile creates or updates a file and commits it.
func CommitFile(t *testing.T, repoDir, path, content, message string) {
	t.Helper()

	WriteFile(t, repoDir, path, content)

	if err := runGit(t, repoDir, "add", path); err != nil {
		t.Fatalf("git add %s failed: %v", path, err)
	}
	if err := runGit(t, repoDir, "commit", "-m", message); err != nil {
		t.Fatalf("git commit failed: %v", err)
	}
}

// CreateBranch creates and checks out a new branch in the test repo.
func CreateBranch(t *testing.T, repoDir, branch string) {
	t.Helper()

	if err := runGit(t, repoDir, "checkout", "-b", branch); err != nil {
		t.Fatalf("git checkout -b %s failed: %v", branch, err)
	}
}

// runGit runs a git command in the given directory.
func runGit(t *testing.T, dir string, args ...string) error {
	t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Logf("git %v output: %s", args, out)
		return err
	}
	return nil
}
