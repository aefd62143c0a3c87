package validation

import "strings"

// Error describes a single validation failure. It is returned as data and is
// meant to be displayed as-is by a presentation layer.
type Error struct {
	Description string `json:"description" yaml:"description"`
	Reason      string `json:"reason,omitempty" yaml:"reason,omitempty"`
	Suggestion  string `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
}

// NewError builds an Error carrying only a description.
func NewError(description string) Error {
	return Error{Description: description}
}

// Error implements the error interface so validation failures can flow
// through code that expects one.
func (e Error) Error() string {
	return e.Description
}

// Message returns the human-readable description.
func (e Error) Message() string {
	return e.Description
}

// Messages renders errors into the display strings used by form aggregates.
// Blank descriptions are kept as empty strings so the count of entries always
// matches the count of failures.
func Messages(errs []Error) []string {
	if len(errs) == 0 {
		return nil
	}
	out := make([]string, 0, len(errs))
	for _, err := range errs {
		out = append(out, strings.TrimSpace(err.Description))
	}
	return out
}
