package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Configuration keys.
const (
	KeyProvider      = "provider"
	KeyModel         = "model"
	KeyAPIKey        = "api_key"
	KeyBaseURL       = "base_url"
	KeyMaxTokens     = "max_tokens"
	KeyTicketBaseURL = "ticket_base_url"
	KeyCommitPrefix  = "commit_prefix"
	KeyProjectKey    = "project_key"
)

// EnvPrefix is prepended to upper-cased key names for environment
// variable lookup, e.g. api_key maps to COMMITFLOW_API_KEY.
const EnvPrefix = "COMMITFLOW_"

// Config file names, resolved relative to the git root.
const (
	SharedFileName = ".commitflow.yaml"
	SecretFileName = ".commitflow.secret.yaml"
)

// defaults returns the built-in default values.
func defaults() map[string]string {
	return map[string]string{
		KeyProvider:  "ollama",
		KeyMaxTokens: "4000",
	}
}

// knownKeys lists every recognized configuration key.
func knownKeys() []string {
	return []string{
		KeyProvider,
		KeyModel,
		KeyAPIKey,
		KeyBaseURL,
		KeyMaxTokens,
		KeyTicketBaseURL,
		KeyCommitPrefix,
		KeyProjectKey,
	}
}

// Resolver merges configuration from an ordered list of sources.
type Resolver struct {
	sharedPath string
	secretPath string
	errWriter  io.Writer

	// Warnings collects non-fatal issues during resolution.
	Warnings []string
}

// NewResolver creates a resolver for a repository rooted at gitRoot.
func NewResolver(gitRoot string) *Resolver {
	r := &Resolver{errWriter: os.Stderr}
	if gitRoot != "" {
		r.sharedPath = filepath.Join(gitRoot, SharedFileName)
		r.secretPath = filepath.Join(gitRoot, SecretFileName)
	}
	return r
}

// NewResolverWithPaths creates a resolver with explicit file paths.
// This is useful for testing or when paths are known ahead of time.
func NewResolverWithPaths(sharedPath, secretPath string) *Resolver {
	return &Resolver{
		sharedPath: sharedPath,
		secretPath: secretPath,
		errWriter:  os.Stderr,
	}
}

// layer is one configuration source; later layers override earlier ones.
type layer struct {
	source Source
	load   func() map[string]string
}

// layers returns the ordered source list, lowest precedence first.
func (r *Resolver) layers() []layer {
	return []layer{
		{SourceDefault, defaults},
		{SourceShared, func() map[string]string { return r.loadFile(r.sharedPath) }},
		{SourceSecret, func() map[string]string { return r.loadFile(r.secretPath) }},
		{SourceEnv, r.loadEnv},
	}
}

// Resolve builds the final config by merging all sources left-to-right.
// Priority (highest to lowest): env > secret file > shared file > defaults.
func (r *Resolver) Resolve() *Resolved {
	cfg := &Resolved{
		values:  make(map[string]string),
		sources: make(map[string]Source),
	}

	for _, l := range r.layers() {
		for key, value := range l.load() {
			if value == "" {
				continue
			}
			cfg.values[key] = value
			cfg.sources[key] = l.source
		}
	}

	return cfg
}

// loadFile reads a YAML config file into string values. A missing file
// is not an error; an unparsable one produces a warning and is skipped.
func (r *Resolver) loadFile(path string) map[string]string {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var parsed map[string]interface{}
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		r.warn(fmt.Sprintf("could not parse %s: %v", path, err))
		return nil
	}

	values := make(map[string]string, len(parsed))
	for key, value := range parsed {
		if strVal := toString(value); strVal != "" {
			values[key] = strVal
		}
	}
	return values
}

// loadEnv reads COMMITFLOW_-prefixed environment variables for every
// known key.
func (r *Resolver) loadEnv() map[string]string {
	values := make(map[string]string)
	for _, key := range knownKeys() {
		envKey := EnvPrefix + strings.ToUpper(key)
		if value := os.Getenv(envKey); value != "" {
			values[key] = value
		}
	}
	return values
}

// warn adds a warning and optionally prints it.
func (r *Resolver) warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
	if r.errWriter != nil {
		fmt.Fprintf(r.errWriter, "Warning: %s\n", msg)
	}
}

// Resolved holds the final merged configuration.
type Resolved struct {
	values  map[string]string
	sources map[string]Source
}

// Get returns the value for a key, or empty string if not set.
func (c *Resolved) Get(key string) string {
	return c.values[key]
}

// GetInt returns the value for a key parsed as an integer, or fallback
// if the key is unset or not a number.
func (c *Resolved) GetInt(key string, fallback int) int {
	if n, err := strconv.Atoi(c.values[key]); err == nil {
		return n
	}
	return fallback
}

// Source returns the source of a key's value.
func (c *Resolved) Source(key string) Source {
	return c.sources[key]
}

// GetWithSource returns both the value and its source.
func (c *Resolved) GetWithSource(key string) (string, Source) {
	return c.values[key], c.sources[key]
}

// All returns a copy of all key-value pairs.
func (c *Resolved) All() map[string]string {
	result := make(map[string]string, len(c.values))
	for k, v := range c.values {
		result[k] = v
	}
	return result
}

// toString converts a YAML scalar to its string form.
func toString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case int, int64, float64:
		return fmt.Sprintf("%v", val)
	default:
		return ""
	}
}
