// Package config resolves tool configuration from an ordered list of
// sources: built-in defaults, the project-shared .commitflow.yaml, the
// project-local .commitflow.secret.yaml, and COMMITFLOW_* environment
// variables. Later sources override earlier ones, and every resolved
// value remembers which source it came from.
package config
