package form

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-formstate/pkg/field"
)

var (
	ErrUnknownSection = errors.New("form: unknown section")
	ErrUnknownField   = errors.New("form: unknown field")
	ErrSectionIndex   = errors.New("form: section index out of range")
	ErrFieldIndex     = errors.New("form: field index out of range")
	ErrNotCollapsible = errors.New("form: section is not collapsible")
	ErrSectionVisible = errors.New("form: section is already visible")
	ErrSectionHidden  = errors.New("form: section is already hidden")
	ErrNilForm        = errors.New("form: form is nil")
)

func usage(op, id string, err error, detail string) error {
	return &field.UsageError{Op: op, ID: id, Err: err, Detail: detail}
}

func indexDetail(index, max int) string {
	return fmt.Sprintf("index %d not in [0, %d]", index, max)
}
