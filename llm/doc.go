// Package llm adapts interchangeable text-generation backends behind a
// single Generate capability. Each provider owns its request/response
// envelope and where its credential goes: OpenAI uses a bearer header,
// Anthropic an x-api-key header, Gemini a URL query parameter, and the
// local Ollama daemon no credential at all.
//
// The pipeline makes exactly one generation call per run; there are no
// retries and no default timeout.
package llm
