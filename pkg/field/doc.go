// Package field implements typed, observable form fields, their
// focus/change/blur lifecycle, and the dependency graph that links them.
//
// A Field holds a stored optional value. A Calculated field derives its value
// from one or two source fields on every read and cannot be written. Both
// satisfy Untyped, the narrow handle sections and forms use to address fields
// of different value types by id.
//
// Lifecycle transitions (unlisted pairs leave the state unchanged):
//
//	state      focus     change    blur
//	untouched  focused   blurred   untouched
//	focused    focused   changed   untouched
//	changed    changed   changed   blurred
//	blurred    changed   blurred   blurred
//
// Writing a stored value runs one explicit procedure: store, notify value
// observers, dispatch a change event, then force validation of every field
// whose validator declared a dependency on the written field. Dependency
// edges live in a Graph keyed by field id; linking two fields merges their
// graphs.
package field
