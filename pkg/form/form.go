package form

import (
	"errors"
	"slices"

	"go.uber.org/zap"

	"github.com/goliatone/go-formstate/pkg/field"
)

// Form is an ordered list of sections. It is owned by a single goroutine;
// callers serialize access from elsewhere.
type Form struct {
	sections []*Section
	onValue  func(sectionID, fieldID string, value any)
	logger   *zap.SugaredLogger
}

// Option configures a Form.
type Option func(*Form)

// WithLogger sets the logger used by the form and handed to every field it
// holds.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithValueObserver sets the form-wide value observer. See OnValueChanged.
func WithValueObserver(fn func(sectionID, fieldID string, value any)) Option {
	return func(f *Form) {
		f.onValue = fn
	}
}

// New builds a form over sections. Nil sections are skipped.
func New(sections []*Section, opts ...Option) *Form {
	f := &Form{logger: zap.NewNop().Sugar()}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	for _, s := range sections {
		if s == nil {
			continue
		}
		f.attach(s)
		f.sections = append(f.sections, s)
	}
	return f
}

func (f *Form) attach(s *Section) {
	s.onValue = f.forward
	for _, e := range s.entries {
		e.field.SetLogger(f.logger)
	}
}

func (f *Form) forward(s *Section, fieldID string, value any) {
	if f.onValue != nil {
		f.onValue(s.id, fieldID, value)
	}
}

// OnValueChanged sets a callback invoked whenever any field in the form
// changes value, including calculated fields recomputed by a source write.
func (f *Form) OnValueChanged(fn func(sectionID, fieldID string, value any)) {
	if f == nil {
		return
	}
	f.onValue = fn
}

// Sections returns the sections in order.
func (f *Form) Sections() []*Section {
	if f == nil {
		return nil
	}
	return slices.Clone(f.sections)
}

// Section looks up a section by id.
func (f *Form) Section(id string) (*Section, error) {
	sections := f.Sections()
	for _, s := range sections {
		if s.id == id {
			return s, nil
		}
	}
	ids := make([]string, len(sections))
	for i, s := range sections {
		ids[i] = s.id
	}
	return nil, &field.UsageError{Op: "lookup section", ID: id, Err: ErrUnknownSection, Suggestion: Suggest(id, ids)}
}

// Fields flattens the fields of every section in order.
func (f *Form) Fields() []field.Untyped {
	if f == nil {
		return nil
	}
	var out []field.Untyped
	for _, s := range f.sections {
		out = append(out, s.Fields()...)
	}
	return out
}

// Field looks up a field by id across all sections. The error suggests the
// closest known id when the lookup looks like a typo.
func (f *Form) Field(id string) (field.Untyped, error) {
	fields := f.Fields()
	for _, fd := range fields {
		if fd.ID() == id {
			return fd, nil
		}
	}
	ids := make([]string, len(fields))
	for i, fd := range fields {
		ids[i] = fd.ID()
	}
	return nil, &field.UsageError{Op: "lookup field", ID: id, Err: ErrUnknownField, Suggestion: Suggest(id, ids)}
}

// Values flattens the values of every field keyed by id.
func (f *Form) Values() map[string]any {
	out := make(map[string]any)
	if f == nil {
		return out
	}
	for _, s := range f.sections {
		s.collectValues(out)
	}
	return out
}

// Validate validates every field and returns the messages of the fields with
// at least one error. A valid form yields an empty map.
func (f *Form) Validate() map[string][]string {
	out := make(map[string][]string)
	if f == nil {
		return out
	}
	for _, s := range f.sections {
		for id, msgs := range s.Validate() {
			out[id] = msgs
		}
	}
	return out
}

// Errors reports the cached validation errors without validating.
func (f *Form) Errors() map[string][]string {
	out := make(map[string][]string)
	if f == nil {
		return out
	}
	for _, s := range f.sections {
		for id, msgs := range s.Errors() {
			out[id] = msgs
		}
	}
	return out
}

// Update applies values to every section. See Section.Update.
func (f *Form) Update(values map[string]any) error {
	var errs []error
	for _, s := range f.Sections() {
		if err := s.Update(values); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// AddSection inserts s at index. index may equal the number of sections.
func (f *Form) AddSection(s *Section, index int) error {
	if f == nil {
		return usage("add section", "", ErrNilForm, "")
	}
	if s == nil {
		return usage("add section", "", ErrUnknownSection, "nil section")
	}
	if index < 0 || index > len(f.sections) {
		return usage("add section", s.id, ErrSectionIndex, indexDetail(index, len(f.sections)))
	}
	f.attach(s)
	f.sections = slices.Insert(f.sections, index, s)
	f.logger.Debugw("form: section added", "section", s.id, "index", index)
	return nil
}

// RemoveSection removes and returns the section at index. Its fields keep
// their dependency edges; a field dropped for good is released by the caller.
func (f *Form) RemoveSection(index int) (*Section, error) {
	if f == nil {
		return nil, usage("remove section", "", ErrNilForm, "")
	}
	if index < 0 || index >= len(f.sections) {
		return nil, usage("remove section", "", ErrSectionIndex, indexDetail(index, len(f.sections)-1))
	}
	s := f.sections[index]
	s.onValue = nil
	f.sections = slices.Delete(f.sections, index, index+1)
	f.logger.Debugw("form: section removed", "section", s.id, "index", index)
	return s, nil
}

// AddField inserts fd at index in the section identified by sectionID.
func (f *Form) AddField(fd field.Untyped, sectionID string, index int) error {
	s, err := f.Section(sectionID)
	if err != nil {
		return err
	}
	if err := s.Insert(fd, index); err != nil {
		return err
	}
	fd.SetLogger(f.logger)
	f.logger.Debugw("form: field added", "section", sectionID, "field", fd.ID(), "index", index)
	return nil
}

// RemoveField removes and returns the field at index in the section
// identified by sectionID. The field stays linked to its graph, so sources
// still revalidate and recompute it and it can be added back intact.
func (f *Form) RemoveField(sectionID string, index int) (field.Untyped, error) {
	s, err := f.Section(sectionID)
	if err != nil {
		return nil, err
	}
	fd, err := s.Remove(index)
	if err != nil {
		return nil, err
	}
	f.logger.Debugw("form: field removed", "section", sectionID, "field", fd.ID(), "index", index)
	return fd, nil
}

// ToggleSection flips the collapse state of a collapsible section.
func (f *Form) ToggleSection(id string) error {
	s, err := f.collapsibleSection("toggle section", id)
	if err != nil {
		return err
	}
	s.ToggleCollapsed()
	f.logger.Debugw("form: section toggled", "section", id, "collapsed", s.collapsed)
	return nil
}

// ShowSection expands a collapsed section.
func (f *Form) ShowSection(id string) error {
	s, err := f.collapsibleSection("show section", id)
	if err != nil {
		return err
	}
	if !s.collapsed {
		return usage("show section", id, ErrSectionVisible, "")
	}
	return f.ToggleSection(id)
}

// HideSection collapses an expanded section.
func (f *Form) HideSection(id string) error {
	s, err := f.collapsibleSection("hide section", id)
	if err != nil {
		return err
	}
	if s.collapsed {
		return usage("hide section", id, ErrSectionHidden, "")
	}
	return f.ToggleSection(id)
}

func (f *Form) collapsibleSection(op, id string) (*Section, error) {
	s, err := f.Section(id)
	if err != nil {
		return nil, err
	}
	if !s.collapsible {
		return nil, usage(op, id, ErrNotCollapsible, "")
	}
	return s, nil
}
