package config

// Source indicates where a configuration value came from.
type Source string

// Configuration source constants, in merge order (lowest to highest
// precedence).
const (
	// SourceDefault indicates the value is a built-in default.
	SourceDefault Source = "default"

	// SourceShared indicates the value came from the project-shared
	// config file (.commitflow.yaml in the git root).
	SourceShared Source = "shared"

	// SourceSecret indicates the value came from the project-local
	// secret file (.commitflow.secret.yaml, typically gitignored).
	SourceSecret Source = "secret"

	// SourceEnv indicates the value came from an environment variable.
	SourceEnv Source = "env"
)
