// Package prompt provides prompt template loading and the serialization
// of a ChangeSet into the text block sent to the generation backend.
//
// Core types:
//   - Loader: Loads prompt templates from files or embedded resources
//   - Builder: Constructs prompts programmatically
//
// The grouping prompt lives in prompts/group_changes.txt and can be
// overridden per project via .commitflow/prompts/group_changes.txt.
package prompt
