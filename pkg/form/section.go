package form

import (
	"errors"
	"slices"

	"github.com/goliatone/go-formstate/pkg/field"
	"github.com/goliatone/go-formstate/pkg/validation"
)

// Section is an ordered group of fields with a collapse state. Collapsing is a
// presentation hint only; it never affects values or validation.
type Section struct {
	id          string
	title       string
	entries     []entry
	collapsible bool
	collapsed   bool
	onCollapse  func(*Section)
	onValue     func(s *Section, fieldID string, value any)
}

type entry struct {
	field  field.Untyped
	cancel func()
}

// SectionOption configures a Section.
type SectionOption func(*Section)

// WithTitle sets the section title.
func WithTitle(title string) SectionOption {
	return func(s *Section) {
		s.title = title
	}
}

// WithFields appends fields to the section in order.
func WithFields(fields ...field.Untyped) SectionOption {
	return func(s *Section) {
		for _, f := range fields {
			if f != nil {
				s.entries = append(s.entries, s.watch(f))
			}
		}
	}
}

// WithCollapsible controls whether the section can be collapsed. Sections are
// collapsible by default.
func WithCollapsible(collapsible bool) SectionOption {
	return func(s *Section) {
		s.collapsible = collapsible
	}
}

// WithCollapsed sets the initial collapse state of a collapsible section.
func WithCollapsed(collapsed bool) SectionOption {
	return func(s *Section) {
		s.collapsed = collapsed
	}
}

// NewSection creates a section identified by id.
func NewSection(id string, opts ...SectionOption) *Section {
	s := &Section{id: id, collapsible: true}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if !s.collapsible {
		s.collapsed = false
	}
	return s
}

func (s *Section) ID() string { return s.id }

func (s *Section) Title() string { return s.title }

func (s *Section) SetTitle(title string) { s.title = title }

func (s *Section) Collapsible() bool { return s.collapsible }

func (s *Section) Collapsed() bool { return s.collapsed }

// OnCollapseChanged sets the callback fired after every collapse toggle.
func (s *Section) OnCollapseChanged(fn func(*Section)) {
	s.onCollapse = fn
}

// ToggleCollapsed flips the collapse state and notifies the collapse
// callback.
func (s *Section) ToggleCollapsed() {
	s.collapsed = !s.collapsed
	if s.onCollapse != nil {
		s.onCollapse(s)
	}
}

// Len reports the number of fields.
func (s *Section) Len() int { return len(s.entries) }

// Fields returns the fields in order.
func (s *Section) Fields() []field.Untyped {
	out := make([]field.Untyped, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.field
	}
	return out
}

// Field looks up a field by id.
func (s *Section) Field(id string) (field.Untyped, bool) {
	for _, e := range s.entries {
		if e.field.ID() == id {
			return e.field, true
		}
	}
	return nil, false
}

// Insert places f at index, shifting later fields. index may equal Len.
func (s *Section) Insert(f field.Untyped, index int) error {
	if f == nil {
		return usage("insert field", s.id, ErrUnknownField, "nil field")
	}
	if index < 0 || index > len(s.entries) {
		return usage("insert field", f.ID(), ErrFieldIndex, indexDetail(index, len(s.entries)))
	}
	s.entries = slices.Insert(s.entries, index, s.watch(f))
	return nil
}

// Remove drops the field at index and detaches the section from it.
func (s *Section) Remove(index int) (field.Untyped, error) {
	if index < 0 || index >= len(s.entries) {
		return nil, usage("remove field", s.id, ErrFieldIndex, indexDetail(index, len(s.entries)-1))
	}
	e := s.entries[index]
	e.cancel()
	s.entries = slices.Delete(s.entries, index, index+1)
	return e.field, nil
}

func (s *Section) watch(f field.Untyped) entry {
	id := f.ID()
	cancel := f.ObserveAny(func(value any) {
		if s.onValue != nil {
			s.onValue(s, id, value)
		}
	})
	return entry{field: f, cancel: cancel}
}

// Update writes every value whose key matches a field id. A nil value clears
// the field. Read-only fields accept a value equal to their current one and
// reject anything else. Errors are joined; the remaining fields are still
// updated.
func (s *Section) Update(values map[string]any) error {
	var errs []error
	for _, e := range s.entries {
		value, ok := values[e.field.ID()]
		if !ok {
			continue
		}
		if e.field.ReadOnly() && e.field.Equal(value) {
			continue
		}
		if err := e.field.SetAny(value); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Values returns the current value of every field keyed by id. Empty fields
// map to nil.
func (s *Section) Values() map[string]any {
	out := make(map[string]any, len(s.entries))
	s.collectValues(out)
	return out
}

func (s *Section) collectValues(out map[string]any) {
	for _, e := range s.entries {
		out[e.field.ID()] = e.field.AnyValue()
	}
}

// Validate validates every field and returns the messages of the fields with
// at least one error.
func (s *Section) Validate() map[string][]string {
	out := make(map[string][]string)
	s.collectErrors(out, field.Untyped.Validate)
	return out
}

// Errors reports the cached validation errors without validating.
func (s *Section) Errors() map[string][]string {
	out := make(map[string][]string)
	s.collectErrors(out, field.Untyped.LastValidationErrors)
	return out
}

func (s *Section) collectErrors(out map[string][]string, read func(field.Untyped) []validation.Error) {
	for _, e := range s.entries {
		if msgs := validation.Messages(read(e.field)); len(msgs) > 0 {
			out[e.field.ID()] = msgs
		}
	}
}
