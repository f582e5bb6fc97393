package testutil

import "strings"

// FakeRunner is a scriptable git.CommandRunner. Responses and errors are
// keyed by the space-joined argument list; every invocation is recorded
// in Calls.
type FakeRunner struct {
	Responses map[string]string
	Errors    map[string]error
	Calls     []string
}

// NewFakeRunner creates an empty FakeRunner.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		Responses: map[string]string{},
		Errors:    map[string]error{},
	}
}

// Run implements git.CommandRunner.
func (f *FakeRunner) Run(dir, name string, args ...string) (string, error) {
	key := strings.Join(args, " ")
	f.Calls = append(f.Calls, key)
	return f.Responses[key], f.Errors[key]
}

// CalledWith reports whether any recorded call starts with prefix.
func (f *FakeRunner) CalledWith(prefix string) bool {
	for _, call := range f.Calls {
		if strings.HasPrefix(call, prefix) {
			return true
		}
	}
	return false
}
