package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// client is the shared HTTP plumbing for all providers: marshal the
// request, send it once (no retries; the commit path makes exactly one
// network call), check the status, and decode the response.
type client struct {
	provider string
	http     *http.Client
}

// newHTTPClient creates the provider transport. No timeout is set; a
// hung backend blocks the run.
func newHTTPClient(provider string) *client {
	return &client{
		provider: provider,
		http:     &http.Client{},
	}
}

// postJSON sends body as JSON to url and decodes the response into out.
// A non-2xx status becomes an *APIError carrying a bounded body
// excerpt. A response that is not the expected shape leaves out zeroed,
// so the caller sees empty output rather than an error.
func (c *client) postJSON(ctx context.Context, url string, headers map[string]string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", c.provider, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create %s request: %w", c.provider, err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", c.provider, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", c.provider, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			Provider:   c.provider,
			StatusCode: resp.StatusCode,
			Body:       snippet(raw),
		}
	}

	// Unexpected shapes are not an error here: the zeroed result reads
	// as empty output and is rejected downstream as malformed.
	_ = json.Unmarshal(raw, out)
	return nil
}
