package llm

import "context"

const (
	defaultAnthropicBaseURL = "https://api.anthropic.com"
	defaultAnthropicModel   = "claude-3-5-haiku-latest"
	anthropicVersion        = "2023-06-01"
)

// anthropic talks to the Anthropic messages API. Authentication is an
// x-api-key header plus a pinned API version header.
type anthropic struct {
	client  *client
	model   string
	apiKey  string
	baseURL string
}

func newAnthropic(cfg Config) *anthropic {
	p := &anthropic{
		client:  newHTTPClient(ProviderAnthropic),
		model:   cfg.Model,
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
	}
	if p.model == "" {
		p.model = defaultAnthropicModel
	}
	if p.baseURL == "" {
		p.baseURL = defaultAnthropicBaseURL
	}
	return p
}

func (p *anthropic) Name() string {
	return ProviderAnthropic
}

func (p *anthropic) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	body := map[string]any{
		"model":      p.model,
		"max_tokens": opts.MaxTokens,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}

	var parsed struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}

	headers := map[string]string{
		"x-api-key":         p.apiKey,
		"anthropic-version": anthropicVersion,
	}
	if err := p.client.postJSON(ctx, p.baseURL+"/v1/messages", headers, body, &parsed); err != nil {
		return "", err
	}

	for _, block := range parsed.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", nil
}
