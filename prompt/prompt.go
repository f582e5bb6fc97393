package prompt

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// embeddedPrompts holds the default prompts shipped in the binary.
//
//go:embed prompts/*.txt
var embeddedPrompts embed.FS

// Loader loads and renders prompt templates.
// Projects can override a template by dropping a same-named .txt file
// into .commitflow/prompts/ at the repository root.
type Loader struct {
	dirs    []string                      // Directories to search
	cache   map[string]*template.Template // Cached templates
	funcMap template.FuncMap              // Template functions
}

// NewLoader creates a prompt loader for the given project directory.
// It searches .commitflow/prompts/ in the project first, then falls
// back to the embedded prompts.
func NewLoader(projectDir string) *Loader {
	return &Loader{
		dirs: []string{
			filepath.Join(projectDir, ".commitflow", "prompts"),
		},
		cache:   make(map[string]*template.Template),
		funcMap: defaultPromptFuncMap(),
	}
}

// AddSearchDir adds a directory to search for prompts, ahead of the
// existing search path.
func (l *Loader) AddSearchDir(dir string) {
	l.dirs = append([]string{dir}, l.dirs...)
}

// Load loads a prompt by name without variable substitution.
func (l *Loader) Load(name string) (string, error) {
	return l.LoadWithVars(name, nil)
}

// LoadWithVars loads and renders a prompt with variable substitution.
func (l *Loader) LoadWithVars(name string, vars map[string]any) (string, error) {
	tmpl, err := l.getTemplate(name)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, vars); err != nil {
		return "", fmt.Errorf("render prompt %s: %w", name, err)
	}

	return buf.String(), nil
}

// getTemplate loads and caches a template.
func (l *Loader) getTemplate(name string) (*template.Template, error) {
	if tmpl, ok := l.cache[name]; ok {
		return tmpl, nil
	}

	content, err := l.loadRaw(name)
	if err != nil {
		return nil, err
	}

	tmpl, err := template.New(name).Funcs(l.funcMap).Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parse prompt template %s: %w", name, err)
	}

	l.cache[name] = tmpl
	return tmpl, nil
}

// loadRaw loads raw prompt content without parsing.
func (l *Loader) loadRaw(name string) (string, error) {
	filename := name + ".txt"

	for _, dir := range l.dirs {
		path := filepath.Join(dir, filename)
		data, err := os.ReadFile(path)
		if err == nil {
			return string(data), nil
		}
	}

	data, err := embeddedPrompts.ReadFile("prompts/" + filename)
	if err != nil {
		return "", fmt.Errorf("prompt not found: %s", name)
	}

	return string(data), nil
}

// defaultPromptFuncMap returns default template functions.
func defaultPromptFuncMap() template.FuncMap {
	return template.FuncMap{
		"join":     strings.Join,
		"split":    strings.Split,
		"trim":     strings.TrimSpace,
		"upper":    strings.ToUpper,
		"lower":    strings.ToLower,
		"title":    cases.Title(language.English).String,
		"contains": strings.Contains,
		"replace":  strings.ReplaceAll,
		"quote":    quoteString,
	}
}

// quoteString quotes a string for safe inclusion.
func quoteString(s string) string {
	return fmt.Sprintf("%q", s)
}

// Builder helps construct prompts programmatically.
type Builder struct {
	parts []string
}

// NewBuilder creates a new prompt builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add adds text to the prompt.
func (b *Builder) Add(text string) *Builder {
	b.parts = append(b.parts, text)
	return b
}

// AddSection adds a titled section.
func (b *Builder) AddSection(header, content string) *Builder {
	b.parts = append(b.parts, fmt.Sprintf("%s:\n%s", header, content))
	return b
}

// AddFile adds file content with XML-style tags.
func (b *Builder) AddFile(path, content string) *Builder {
	b.parts = append(b.parts, fmt.Sprintf("<file path=%q>\n%s\n</file>", path, content))
	return b
}

// Build returns the constructed prompt.
func (b *Builder) Build() string {
	return strings.Join(b.parts, "\n\n")
}
