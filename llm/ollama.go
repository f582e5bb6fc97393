package llm

import "context"

const (
	defaultOllamaBaseURL = "http://localhost:11434"
	defaultOllamaModel   = "llama3"
)

// ollama talks to a local Ollama daemon. No authentication.
type ollama struct {
	client  *client
	model   string
	baseURL string
}

func newOllama(cfg Config) *ollama {
	p := &ollama{
		client:  newHTTPClient(ProviderOllama),
		model:   cfg.Model,
		baseURL: cfg.BaseURL,
	}
	if p.model == "" {
		p.model = defaultOllamaModel
	}
	if p.baseURL == "" {
		p.baseURL = defaultOllamaBaseURL
	}
	return p
}

func (p *ollama) Name() string {
	return ProviderOllama
}

func (p *ollama) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	body := map[string]any{
		"model":  p.model,
		"prompt": prompt,
		"stream": false,
		"options": map[string]any{
			"num_predict": opts.MaxTokens,
		},
	}

	var parsed struct {
		Response string `json:"response"`
	}

	if err := p.client.postJSON(ctx, p.baseURL+"/api/generate", nil, body, &parsed); err != nil {
		return "", err
	}
	return parsed.Response, nil
}
