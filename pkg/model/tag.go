package model

import (
	"fmt"
	"strings"
)

// TagDescriptor is a human-readable dataset version label bound to a
// point in the code-versioning history.
type TagDescriptor struct {
	Name    string `json:"name" yaml:"name"`
	Commit  string `json:"commit,omitempty" yaml:"commit,omitempty"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
	_       struct{}
}

// DefaultTagMessage is the message template used when the operator
// supplies none.
func DefaultTagMessage(name string) string {
	return fmt.Sprintf("Data version %s", name)
}

// DefaultCommitMessage interpolates the tracked file's base name into the
// fixed commit message template.
func DefaultCommitMessage(base string) string {
	return fmt.Sprintf("Add %s to DVC tracking", base)
}

// ValidateTagName rejects names the code-versioning tool would refuse.
// This is a subset of git check-ref-format: enough to fail early with a
// descriptive message instead of surfacing the tool's own error.
func ValidateTagName(name string) error {
	if name == "" {
		return fmt.Errorf("tag name is empty")
	}
	if strings.HasPrefix(name, "-") || strings.HasPrefix(name, ".") {
		return fmt.Errorf("tag name %q must not start with %q", name, name[:1])
	}
	if strings.HasSuffix(name, ".lock") || strings.HasSuffix(name, ".") {
		return fmt.Errorf("tag name %q has a forbidden suffix", name)
	}
	if strings.Contains(name, "..") {
		return fmt.Errorf("tag name %q must not contain %q", name, "..")
	}
	for _, r := range name {
		switch {
		case r <= ' ', r == 0x7f:
			return fmt.Errorf("tag name %q contains whitespace or a control character", name)
		case strings.ContainsRune("~^:?*[\\", r):
			return fmt.Errorf("tag name %q contains forbidden character %q", name, string(r))
		}
	}
	return nil
}
