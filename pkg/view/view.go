// Package view defines the contract between a form and the presentation layer
// that displays it. A Provider turns section and field snapshots into handles
// carrying the same ids as the form state; layout and hierarchy are entirely
// the provider's business.
package view

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-formstate/pkg/form"
)

// ErrHandleID is returned by Walk when a provider hands back a handle whose id
// differs from the section or field it was built for.
var ErrHandleID = errors.New("view: handle id does not match")

// Handle is a renderable element built by a Provider.
type Handle interface {
	ID() string
}

// Provider builds handles for sections and fields.
type Provider interface {
	Name() string
	SectionView(section form.SectionSnapshot) (Handle, error)
	FieldView(section form.SectionSnapshot, field form.FieldSnapshot) (Handle, error)
}

// SectionView pairs a section handle with the handles of its fields in order.
type SectionView struct {
	Section Handle
	Fields  []Handle
}

// Walk snapshots f and asks p for a handle per section and field, in form
// order. Fields of collapsed sections are still built; providers decide how a
// collapsed section looks.
func Walk(f *form.Form, p Provider) ([]SectionView, error) {
	if p == nil {
		return nil, errors.New("view: provider is required")
	}
	snap := f.Snapshot()
	out := make([]SectionView, 0, len(snap.Sections))
	for _, section := range snap.Sections {
		handle, err := p.SectionView(section)
		if err != nil {
			return nil, fmt.Errorf("view: section %q: %w", section.ID, err)
		}
		if err := checkID(handle, section.ID); err != nil {
			return nil, err
		}
		sv := SectionView{Section: handle, Fields: make([]Handle, 0, len(section.Fields))}
		for _, fd := range section.Fields {
			fh, err := p.FieldView(section, fd)
			if err != nil {
				return nil, fmt.Errorf("view: field %q: %w", fd.ID, err)
			}
			if err := checkID(fh, fd.ID); err != nil {
				return nil, err
			}
			sv.Fields = append(sv.Fields, fh)
		}
		out = append(out, sv)
	}
	return out, nil
}

func checkID(h Handle, want string) error {
	if h == nil {
		return fmt.Errorf("%w: nil handle for %q", ErrHandleID, want)
	}
	if got := h.ID(); got != want {
		return fmt.Errorf("%w: got %q, want %q", ErrHandleID, got, want)
	}
	return nil
}
