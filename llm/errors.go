package llm

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrMissingAPIKey indicates a hosted provider was selected without a
// credential configured.
var ErrMissingAPIKey = errors.New("missing API key")

// bodySnippetLen bounds how much of an error response body is surfaced.
const bodySnippetLen = 200

// APIError reports a non-success response from a generation backend.
type APIError struct {
	Provider   string // Provider identifier
	StatusCode int    // HTTP status code
	Body       string // Bounded response body excerpt
}

func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s returned status %d: %s", e.Provider, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s returned status %d", e.Provider, e.StatusCode)
}

// snippet trims a response body to a bounded excerpt, cut on a rune
// boundary so the surfaced text stays valid UTF-8.
func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > bodySnippetLen {
		cut := bodySnippetLen
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut]
	}
	return s
}
