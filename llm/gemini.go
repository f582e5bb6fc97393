package llm

import (
	"context"
	"fmt"
	"net/url"
)

const (
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"
	defaultGeminiModel   = "gemini-1.5-flash"
)

// gemini talks to the Google Generative Language API. Authentication is
// an API key passed as a URL query parameter.
type gemini struct {
	client  *client
	model   string
	apiKey  string
	baseURL string
}

func newGemini(cfg Config) *gemini {
	p := &gemini{
		client:  newHTTPClient(ProviderGemini),
		model:   cfg.Model,
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
	}
	if p.model == "" {
		p.model = defaultGeminiModel
	}
	if p.baseURL == "" {
		p.baseURL = defaultGeminiBaseURL
	}
	return p
}

func (p *gemini) Name() string {
	return ProviderGemini
}

func (p *gemini) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		p.baseURL, p.model, url.QueryEscape(p.apiKey))

	body := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]string{{"text": prompt}}},
		},
		"generationConfig": map[string]any{
			"maxOutputTokens": opts.MaxTokens,
		},
	}

	var parsed struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := p.client.postJSON(ctx, endpoint, nil, body, &parsed); err != nil {
		return "", err
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
