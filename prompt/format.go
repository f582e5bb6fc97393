package prompt

import (
	"strings"

	"github.com/randalmurphal/commitflow/changes"
)

// GroupingPromptName is the template used to ask the backend to cluster
// changed files into commit groups.
const GroupingPromptName = "group_changes"

// Format serializes a ChangeSet into the textual block handed to the
// generation backend: the full path list, then one labeled diff block
// per file. The output is byte-for-byte reproducible for identical
// input.
func Format(cs *changes.ChangeSet) string {
	b := NewBuilder()
	b.AddSection("Changed files", strings.Join(cs.Paths(), "\n"))

	for _, d := range cs.Diffs {
		b.AddFile(d.Path, strings.Join(d.Lines, "\n"))
	}

	return b.Build()
}

// GroupingPrompt renders the full grouping prompt for a ChangeSet.
func GroupingPrompt(l *Loader, cs *changes.ChangeSet) (string, error) {
	return l.LoadWithVars(GroupingPromptName, map[string]any{
		"Changes": Format(cs),
	})
}
