package field

import (
	"github.com/goliatone/go-formstate/pkg/validation"
)

// Calculated is a read-only field whose value is derived from one or two
// source fields. The value is recomputed on every read; writes to a source
// only notify the calculated field's observers.
type Calculated[V comparable] struct {
	core[V]
	derive func() *V
}

var _ Typed[string] = (*Calculated[string])(nil)

func newCalculated[V comparable](id, name string, derive func() *V) *Calculated[V] {
	c := &Calculated[V]{derive: derive}
	c.read = c.compute
	c.setup(c, id, name)
	return c
}

// NewCalculated derives a field from src. derive receives a copy of the
// source value (nil when empty).
func NewCalculated[V, A comparable](id, name string, src Typed[A], derive func(src *A) *V) (*Calculated[V], error) {
	c := newCalculated(id, name, func() *V {
		return derive(src.Ptr())
	})
	if err := link(src, c); err != nil {
		return nil, err
	}
	c.graph.addValueEdge(src.ID(), id)
	return c, nil
}

// NewCalculated2 derives a field from two sources.
func NewCalculated2[V, A, B comparable](id, name string, a Typed[A], b Typed[B], derive func(a *A, b *B) *V) (*Calculated[V], error) {
	c := newCalculated(id, name, func() *V {
		return derive(a.Ptr(), b.Ptr())
	})
	if err := checkLink(a, b, c); err != nil {
		return nil, err
	}
	if err := link(a, c); err != nil {
		return nil, err
	}
	if err := link(b, c); err != nil {
		return nil, err
	}
	c.graph.addValueEdge(a.ID(), id)
	c.graph.addValueEdge(b.ID(), id)
	return c, nil
}

func (c *Calculated[V]) compute() *V {
	p := c.derive()
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// ReadOnly is always true for calculated fields.
func (c *Calculated[V]) ReadOnly() bool { return true }

// AddValidator appends v to the validator list and returns c for chaining.
func (c *Calculated[V]) AddValidator(v validation.Validator[V]) *Calculated[V] {
	c.addValidator(v)
	return c
}

// SetAny always fails: calculated fields have no writable storage. The
// lifecycle state is left unchanged.
func (c *Calculated[V]) SetAny(any) error {
	return &UsageError{Op: "set", ID: c.id, Err: ErrReadOnly, Detail: "calculated fields cannot be written"}
}

func (c *Calculated[V]) notifyDerived() {
	if c.onChange != nil {
		c.onChange(c.Ptr())
	}
	c.notifyAny(c.AnyValue())
}
