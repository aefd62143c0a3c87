package validation

// Validator maps an optional value to the failures it finds. A nil pointer
// represents an empty value. A nil Validator accepts everything.
type Validator[V any] func(value *V) []Error

// Validate runs the validator. It is safe to call on a nil Validator.
func (v Validator[V]) Validate(value *V) []Error {
	if v == nil {
		return nil
	}
	return v(value)
}

// Always returns the validator that accepts every value. It is the identity
// element for And.
func Always[V any]() Validator[V] {
	return func(*V) []Error { return nil }
}

// And runs both validators and concatenates their errors. The result is empty
// only when both are empty.
func And[V any](a, b Validator[V]) Validator[V] {
	return func(value *V) []Error {
		first := a.Validate(value)
		second := b.Validate(value)
		if len(first) == 0 && len(second) == 0 {
			return nil
		}
		out := make([]Error, 0, len(first)+len(second))
		out = append(out, first...)
		return append(out, second...)
	}
}

// Or succeeds when either validator succeeds. When both fail the errors of
// both are concatenated.
func Or[V any](a, b Validator[V]) Validator[V] {
	return func(value *V) []Error {
		first := a.Validate(value)
		second := b.Validate(value)
		if len(first) == 0 || len(second) == 0 {
			return nil
		}
		out := make([]Error, 0, len(first)+len(second))
		out = append(out, first...)
		return append(out, second...)
	}
}

// All folds validators left to right under And, starting from Always.
func All[V any](validators ...Validator[V]) Validator[V] {
	combined := Always[V]()
	for _, v := range validators {
		if v == nil {
			continue
		}
		combined = And(combined, v)
	}
	return combined
}

// Any folds validators left to right under Or. Or has no meaningful identity
// (an always-failing validator would carry no useful error), so at least one
// validator is required.
func Any[V any](first Validator[V], rest ...Validator[V]) Validator[V] {
	combined := first
	for _, v := range rest {
		combined = Or(combined, v)
	}
	return combined
}

// Func adapts a single-error check into a Validator. The check returns false
// when value is invalid.
func Func[V any](err Error, check func(value *V) bool) Validator[V] {
	return func(value *V) []Error {
		if check(value) {
			return nil
		}
		return []Error{err}
	}
}
