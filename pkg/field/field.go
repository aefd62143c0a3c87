package field

import (
	"fmt"
	"slices"

	"github.com/goliatone/go-formstate/pkg/validation"
)

// core carries the value-type-specific behaviour shared by Field and
// Calculated. read returns a copy of the current value or nil.
type core[V comparable] struct {
	meta
	validators []validation.Validator[V]
	onChange   func(*V)
	read       func() *V
}

// Value returns the current value and whether the field is set.
func (c *core[V]) Value() (V, bool) {
	if p := c.read(); p != nil {
		return *p, true
	}
	var zero V
	return zero, false
}

// Ptr returns a copy of the current value, or nil when the field is empty.
func (c *core[V]) Ptr() *V {
	return c.read()
}

func (c *core[V]) AnyValue() any {
	if p := c.read(); p != nil {
		return *p
	}
	return nil
}

func (c *core[V]) Zero() any {
	var zero V
	return zero
}

func (c *core[V]) Equal(value any) bool {
	current := c.read()
	switch typed := value.(type) {
	case nil:
		return current == nil
	case V:
		return current != nil && *current == typed
	case *V:
		if typed == nil || current == nil {
			return typed == nil && current == nil
		}
		return *current == *typed
	default:
		return false
	}
}

// OnValueChanged sets the typed value observer. It receives a copy of the new
// value (nil when cleared).
func (c *core[V]) OnValueChanged(fn func(value *V)) {
	c.onChange = fn
}

// Validators returns the registered validators in registration order.
func (c *core[V]) Validators() []validation.Validator[V] {
	return slices.Clone(c.validators)
}

func (c *core[V]) addValidator(v validation.Validator[V]) {
	if v != nil {
		c.validators = append(c.validators, v)
	}
}

// HandleEvent applies the validation policy for event, then the lifecycle
// transition.
func (c *core[V]) HandleEvent(event Event) {
	switch {
	case event == EventChange && c.timing == ValidateOnChange,
		event == EventBlur && c.timing == ValidateOnBlur:
		c.Validate()
	}
	c.machine.Fire(event)
}

// Validate runs every validator against the current value, caches the result
// in LastValidationErrors, notifies the validation observer and returns the
// errors.
func (c *core[V]) Validate() []validation.Error {
	errs := validation.All(c.validators...).Validate(c.read())
	c.lastErrors = errs
	if c.onValidate != nil {
		c.onValidate(slices.Clone(errs))
	}
	return slices.Clone(errs)
}

// Field is a stored, writable field.
type Field[V comparable] struct {
	core[V]
	value *V
}

var _ Typed[string] = (*Field[string])(nil)

// New creates a stored field. A nil initial value leaves the field empty.
func New[V comparable](id, name string, initial *V) *Field[V] {
	f := &Field[V]{}
	if initial != nil {
		v := *initial
		f.value = &v
	}
	f.read = f.stored
	f.setup(f, id, name)
	return f
}

// Of creates a stored field holding value.
func Of[V comparable](id, name string, value V) *Field[V] {
	return New(id, name, &value)
}

func (f *Field[V]) stored() *V {
	if f.value == nil {
		return nil
	}
	v := *f.value
	return &v
}

// ReadOnly is always false for stored fields.
func (f *Field[V]) ReadOnly() bool { return false }

// AddValidator appends v to the validator list and returns f for chaining.
func (f *Field[V]) AddValidator(v validation.Validator[V]) *Field[V] {
	f.addValidator(v)
	return f
}

// Set stores value and runs the change procedure.
func (f *Field[V]) Set(value V) {
	f.value = &value
	f.changed()
}

// SetPtr stores a copy of *value, or clears the field when value is nil.
func (f *Field[V]) SetPtr(value *V) {
	if value == nil {
		f.Clear()
		return
	}
	f.Set(*value)
}

// Clear empties the field and runs the change procedure.
func (f *Field[V]) Clear() {
	f.value = nil
	f.changed()
}

func (f *Field[V]) SetAny(value any) error {
	switch typed := value.(type) {
	case nil:
		f.Clear()
	case V:
		f.Set(typed)
	case *V:
		f.SetPtr(typed)
	default:
		var want V
		return &UsageError{
			Op:     "set",
			ID:     f.id,
			Err:    ErrValueType,
			Detail: fmt.Sprintf("got %T, want %T", value, want),
		}
	}
	return nil
}

// changed is the single procedure run by every write: notify observers,
// dispatch a change event, then force validation of dependents. Calculated
// dependents recompute lazily on read; they are only notified.
func (f *Field[V]) changed() {
	g := f.graph
	if !g.enter(f.id) {
		return
	}
	defer g.leave()

	if f.onChange != nil {
		f.onChange(f.Ptr())
	}
	f.notifyAny(f.AnyValue())
	f.HandleEvent(EventChange)
	f.graph.propagate(f.id)
}
