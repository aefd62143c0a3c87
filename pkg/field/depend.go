package field

import (
	"github.com/goliatone/go-formstate/pkg/validation"
)

// AddValidator registers v on f, stored or calculated.
func AddValidator[V comparable](f Typed[V], v validation.Validator[V]) {
	f.addValidator(v)
}

// ValidateWith registers a validator on target that also reads dep. Whenever
// dep changes, target is validated regardless of its own timing policy.
func ValidateWith[V, A comparable](target Typed[V], dep Typed[A], fn func(value *V, dep *A) []validation.Error) error {
	if fn == nil {
		return nil
	}
	if err := link(dep, target); err != nil {
		return err
	}
	target.base().graph.addValidationEdge(dep.ID(), target.ID())
	target.addValidator(func(value *V) []validation.Error {
		return fn(value, dep.Ptr())
	})
	return nil
}

// ValidateWith2 registers a validator on target that reads two dependencies.
func ValidateWith2[V, A, B comparable](target Typed[V], a Typed[A], b Typed[B], fn func(value *V, a *A, b *B) []validation.Error) error {
	if fn == nil {
		return nil
	}
	if err := checkLink(a, b, target); err != nil {
		return err
	}
	if err := link(a, target); err != nil {
		return err
	}
	if err := link(b, target); err != nil {
		return err
	}
	g := target.base().graph
	g.addValidationEdge(a.ID(), target.ID())
	g.addValidationEdge(b.ID(), target.ID())
	target.addValidator(func(value *V) []validation.Error {
		return fn(value, a.Ptr(), b.Ptr())
	})
	return nil
}
