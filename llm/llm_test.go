package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestNew_ProviderSelection(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		wantName string
		wantErr  error
	}{
		{"openai", Config{Provider: "openai", APIKey: "k"}, ProviderOpenAI, nil},
		{"anthropic", Config{Provider: "anthropic", APIKey: "k"}, ProviderAnthropic, nil},
		{"gemini", Config{Provider: "gemini", APIKey: "k"}, ProviderGemini, nil},
		{"ollama", Config{Provider: "ollama"}, ProviderOllama, nil},
		{"empty falls back to default", Config{}, DefaultProvider, nil},
		{"unknown falls back to default", Config{Provider: "skynet"}, DefaultProvider, nil},
		{"openai without key", Config{Provider: "openai"}, "", ErrMissingAPIKey},
		{"anthropic without key", Config{Provider: "anthropic"}, "", ErrMissingAPIKey},
		{"gemini without key", Config{Provider: "gemini"}, "", ErrMissingAPIKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.cfg)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			if p.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", p.Name(), tt.wantName)
			}
		})
	}
}

func TestOpenAI_Generate(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"choices":[{"message":{"content":"grouped"}}]}`))
	}))
	defer srv.Close()

	p, err := New(Config{Provider: "openai", APIKey: "sk-test", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	got, err := p.Generate(context.Background(), "cluster these", GenerateOptions{MaxTokens: 4000})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got != "grouped" {
		t.Errorf("output = %q, want %q", got, "grouped")
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
	if gotBody["max_tokens"] != float64(4000) {
		t.Errorf("max_tokens = %v, want 4000", gotBody["max_tokens"])
	}
}

func TestAnthropic_Generate(t *testing.T) {
	var gotKey, gotVersion string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("path = %q", r.URL.Path)
		}
		gotKey = r.Header.Get("x-api-key")
		gotVersion = r.Header.Get("anthropic-version")
		w.Write([]byte(`{"content":[{"type":"text","text":"grouped"}]}`))
	}))
	defer srv.Close()

	p, err := New(Config{Provider: "anthropic", APIKey: "ak-test", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	got, err := p.Generate(context.Background(), "cluster these", GenerateOptions{MaxTokens: 100})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got != "grouped" {
		t.Errorf("output = %q, want %q", got, "grouped")
	}
	if gotKey != "ak-test" {
		t.Errorf("x-api-key = %q, want credential header", gotKey)
	}
	if gotVersion == "" {
		t.Error("anthropic-version header not set")
	}
}

func TestGemini_Generate_KeyInQuery(t *testing.T) {
	var gotQueryKey, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQueryKey = r.URL.Query().Get("key")
		if auth := r.Header.Get("Authorization"); auth != "" {
			t.Errorf("unexpected Authorization header %q", auth)
		}
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"grouped"}]}}]}`))
	}))
	defer srv.Close()

	p, err := New(Config{Provider: "gemini", APIKey: "g-test", Model: "gemini-1.5-flash", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	got, err := p.Generate(context.Background(), "cluster these", GenerateOptions{MaxTokens: 100})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got != "grouped" {
		t.Errorf("output = %q, want %q", got, "grouped")
	}
	if gotQueryKey != "g-test" {
		t.Errorf("query key = %q, want credential in URL", gotQueryKey)
	}
	if gotPath != "/v1beta/models/gemini-1.5-flash:generateContent" {
		t.Errorf("path = %q", gotPath)
	}
}

func TestOllama_Generate(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("path = %q", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"response":"grouped"}`))
	}))
	defer srv.Close()

	p, err := New(Config{Provider: "ollama", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	got, err := p.Generate(context.Background(), "cluster these", GenerateOptions{MaxTokens: 100})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got != "grouped" {
		t.Errorf("output = %q, want %q", got, "grouped")
	}
	if gotBody["stream"] != false {
		t.Errorf("stream = %v, want false", gotBody["stream"])
	}
}

func TestGenerate_ErrorStatusSurfacesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer srv.Close()

	p, err := New(Config{Provider: "openai", APIKey: "k", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	_, err = p.Generate(context.Background(), "prompt", GenerateOptions{MaxTokens: 10})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", apiErr.StatusCode)
	}
	if !strings.Contains(apiErr.Body, "rate limited") {
		t.Errorf("body = %q, want excerpt of backend response", apiErr.Body)
	}
}

func TestGenerate_ErrorBodyIsBounded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(strings.Repeat("x", 5000)))
	}))
	defer srv.Close()

	p, err := New(Config{Provider: "ollama", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	_, err = p.Generate(context.Background(), "prompt", GenerateOptions{MaxTokens: 10})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if len(apiErr.Body) > bodySnippetLen {
		t.Errorf("body excerpt is %d chars, want <= %d", len(apiErr.Body), bodySnippetLen)
	}
}

func TestGenerate_ErrorBodyCutOnRuneBoundary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		// A multi-byte rune straddles the excerpt bound.
		w.Write([]byte(strings.Repeat("x", bodySnippetLen-1) + "世界"))
	}))
	defer srv.Close()

	p, err := New(Config{Provider: "ollama", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	_, err = p.Generate(context.Background(), "prompt", GenerateOptions{MaxTokens: 10})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if !utf8.ValidString(apiErr.Body) {
		t.Errorf("body excerpt %q is not valid UTF-8", apiErr.Body)
	}
	if len(apiErr.Body) > bodySnippetLen {
		t.Errorf("body excerpt is %d bytes, want <= %d", len(apiErr.Body), bodySnippetLen)
	}
}

func TestGenerate_UnexpectedShapeYieldsEmptyOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"totally":"different"}`))
	}))
	defer srv.Close()

	p, err := New(Config{Provider: "openai", APIKey: "k", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	got, err := p.Generate(context.Background(), "prompt", GenerateOptions{MaxTokens: 10})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got != "" {
		t.Errorf("output = %q, want empty for unexpected shape", got)
	}
}
