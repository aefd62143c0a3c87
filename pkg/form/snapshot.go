package form

import (
	"github.com/goliatone/go-formstate/pkg/field"
	"github.com/goliatone/go-formstate/pkg/validation"
)

// Snapshot is a read-only copy of the form state handed to presentation code.
type Snapshot struct {
	Sections []SectionSnapshot `json:"sections"`
}

// SectionSnapshot captures one section.
type SectionSnapshot struct {
	ID          string          `json:"id"`
	Title       string          `json:"title,omitempty"`
	Collapsible bool            `json:"collapsible"`
	Collapsed   bool            `json:"collapsed"`
	Fields      []FieldSnapshot `json:"fields"`
}

// FieldSnapshot captures one field. Errors holds the cached validation
// messages; taking a snapshot never validates.
type FieldSnapshot struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Value         any          `json:"value"`
	State         field.State  `json:"state"`
	ValidatesWhen field.Timing `json:"validatesWhen"`
	ReadOnly      bool         `json:"readOnly,omitempty"`
	Errors        []string     `json:"errors,omitempty"`
}

// Snapshot captures the current form state.
func (f *Form) Snapshot() Snapshot {
	var snap Snapshot
	if f == nil {
		return snap
	}
	for _, s := range f.sections {
		snap.Sections = append(snap.Sections, s.Snapshot())
	}
	return snap
}

// Snapshot captures the current section state.
func (s *Section) Snapshot() SectionSnapshot {
	out := SectionSnapshot{
		ID:          s.id,
		Title:       s.title,
		Collapsible: s.collapsible,
		Collapsed:   s.collapsed,
		Fields:      make([]FieldSnapshot, 0, len(s.entries)),
	}
	for _, e := range s.entries {
		out.Fields = append(out.Fields, snapshotField(e.field))
	}
	return out
}

func snapshotField(f field.Untyped) FieldSnapshot {
	return FieldSnapshot{
		ID:            f.ID(),
		Name:          f.Name(),
		Value:         f.AnyValue(),
		State:         f.State(),
		ValidatesWhen: f.ValidatesWhen(),
		ReadOnly:      f.ReadOnly(),
		Errors:        validation.Messages(f.LastValidationErrors()),
	}
}
