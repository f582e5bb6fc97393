package llm

import "context"

const (
	defaultOpenAIBaseURL = "https://api.openai.com"
	defaultOpenAIModel   = "gpt-4o-mini"
)

// openAI talks to the OpenAI chat completions API. Authentication is a
// bearer token in the Authorization header.
type openAI struct {
	client  *client
	model   string
	apiKey  string
	baseURL string
}

func newOpenAI(cfg Config) *openAI {
	p := &openAI{
		client:  newHTTPClient(ProviderOpenAI),
		model:   cfg.Model,
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
	}
	if p.model == "" {
		p.model = defaultOpenAIModel
	}
	if p.baseURL == "" {
		p.baseURL = defaultOpenAIBaseURL
	}
	return p
}

func (p *openAI) Name() string {
	return ProviderOpenAI
}

func (p *openAI) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	body := map[string]any{
		"model": p.model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"max_tokens": opts.MaxTokens,
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	headers := map[string]string{"Authorization": "Bearer " + p.apiKey}
	if err := p.client.postJSON(ctx, p.baseURL+"/v1/chat/completions", headers, body, &parsed); err != nil {
		return "", err
	}

	if len(parsed.Choices) == 0 {
		return "", nil
	}
	return parsed.Choices[0].Message.Content, nil
}
