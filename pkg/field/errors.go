package field

import (
	"errors"
	"strings"
)

var (
	// ErrReadOnly is returned when writing to a calculated field.
	ErrReadOnly = errors.New("field: field is read-only")
	// ErrValueType is returned when an untyped write carries a value of the
	// wrong type.
	ErrValueType = errors.New("field: value has the wrong type")
	// ErrDuplicateID is returned when linking two distinct fields that share
	// an id.
	ErrDuplicateID = errors.New("field: duplicate field id")
)

// UsageError reports programmer misuse of the field, section or form API. It
// wraps one of the package sentinels so callers can match it with errors.Is.
type UsageError struct {
	Op         string
	ID         string
	Err        error
	Detail     string
	Suggestion string
}

func (e *UsageError) Error() string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	if e.Err != nil {
		b.WriteString(e.Err.Error())
	} else {
		b.WriteString("usage error")
	}
	if e.Op != "" || e.ID != "" {
		b.WriteString(" (")
		b.WriteString(strings.TrimSpace(e.Op + " " + quote(e.ID)))
		b.WriteString(")")
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Suggestion != "" {
		b.WriteString("; did you mean ")
		b.WriteString(quote(e.Suggestion))
		b.WriteString("?")
	}
	return b.String()
}

func (e *UsageError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func quote(id string) string {
	if id == "" {
		return ""
	}
	return `"` + id + `"`
}
