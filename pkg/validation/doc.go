// Package validation defines the validation error value and the composable
// Validator function type used by form fields. Validators are pure: they map
// an optional value (a nil pointer means "empty") to an ordered list of
// errors and never mutate state. They compose associatively with And and Or;
// Always is the identity for And, so a field's validator list folds into a
// single validator with All.
package validation
