// Package git wraps the git CLI for the read and write operations the
// commit pipeline needs: status, path-scoped diffs, staging, and
// committing.
//
// Key types:
//   - Context: Git operations bound to a repository root
//   - CommandRunner: Interface for executing git commands (with mock for testing)
//   - StatusEntry: One parsed porcelain status line
//
// All operations shell out to the git binary synchronously. Queries are
// read-only; only Stage and Commit mutate the repository.
package git
