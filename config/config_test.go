package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestResolver_Defaults(t *testing.T) {
	resolver := NewResolverWithPaths("", "")

	cfg := resolver.Resolve()

	if got := cfg.Get(KeyProvider); got != "ollama" {
		t.Errorf("provider = %q, want %q", got, "ollama")
	}
	if got := cfg.Source(KeyProvider); got != SourceDefault {
		t.Errorf("source = %q, want %q", got, SourceDefault)
	}
	if got := cfg.GetInt(KeyMaxTokens, 0); got != 4000 {
		t.Errorf("max_tokens = %d, want 4000", got)
	}
}

func TestResolver_SharedOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	shared := filepath.Join(dir, SharedFileName)
	writeConfig(t, shared, "provider: openai\nmodel: gpt-4o\n")

	cfg := NewResolverWithPaths(shared, "").Resolve()

	if got := cfg.Get(KeyProvider); got != "openai" {
		t.Errorf("provider = %q, want %q", got, "openai")
	}
	if got := cfg.Source(KeyProvider); got != SourceShared {
		t.Errorf("source = %q, want %q", got, SourceShared)
	}
}

func TestResolver_SecretOverridesShared(t *testing.T) {
	dir := t.TempDir()
	shared := filepath.Join(dir, SharedFileName)
	secret := filepath.Join(dir, SecretFileName)
	writeConfig(t, shared, "api_key: shared-key\nmodel: gpt-4o\n")
	writeConfig(t, secret, "api_key: secret-key\n")

	cfg := NewResolverWithPaths(shared, secret).Resolve()

	if got, src := cfg.GetWithSource(KeyAPIKey); got != "secret-key" || src != SourceSecret {
		t.Errorf("api_key = %q from %q, want secret-key from secret", got, src)
	}
	if got := cfg.Get(KeyModel); got != "gpt-4o" {
		t.Errorf("model = %q, want gpt-4o (shared value must survive)", got)
	}
}

func TestResolver_EnvOverridesFiles(t *testing.T) {
	dir := t.TempDir()
	shared := filepath.Join(dir, SharedFileName)
	secret := filepath.Join(dir, SecretFileName)
	writeConfig(t, shared, "provider: openai\n")
	writeConfig(t, secret, "provider: anthropic\n")
	t.Setenv("COMMITFLOW_PROVIDER", "gemini")

	cfg := NewResolverWithPaths(shared, secret).Resolve()

	if got, src := cfg.GetWithSource(KeyProvider); got != "gemini" || src != SourceEnv {
		t.Errorf("provider = %q from %q, want gemini from env", got, src)
	}
}

func TestResolver_MalformedFileWarnsAndSkips(t *testing.T) {
	dir := t.TempDir()
	shared := filepath.Join(dir, SharedFileName)
	writeConfig(t, shared, "provider: [unclosed\n")

	resolver := NewResolverWithPaths(shared, "")
	resolver.errWriter = nil
	cfg := resolver.Resolve()

	if len(resolver.Warnings) == 0 {
		t.Error("expected a warning for malformed config")
	}
	if got := cfg.Get(KeyProvider); got != "ollama" {
		t.Errorf("provider = %q, want default ollama", got)
	}
}

func TestResolver_MissingFilesAreFine(t *testing.T) {
	dir := t.TempDir()
	resolver := NewResolverWithPaths(
		filepath.Join(dir, SharedFileName),
		filepath.Join(dir, SecretFileName),
	)

	cfg := resolver.Resolve()

	if len(resolver.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", resolver.Warnings)
	}
	if got := cfg.Get(KeyProvider); got != "ollama" {
		t.Errorf("provider = %q, want ollama", got)
	}
}

func TestResolved_GetInt_Fallback(t *testing.T) {
	dir := t.TempDir()
	shared := filepath.Join(dir, SharedFileName)
	writeConfig(t, shared, "max_tokens: lots\n")

	cfg := NewResolverWithPaths(shared, "").Resolve()

	if got := cfg.GetInt(KeyMaxTokens, 4000); got != 4000 {
		t.Errorf("max_tokens = %d, want fallback 4000", got)
	}
}
