// Package form groups fields into ordered, collapsible sections and sections
// into a form. Sections and forms hold fields through field.Untyped handles, so
// one section can mix value types. Aggregates (Values, Validate, Errors) are
// keyed by field id.
//
// The mutation helpers on Form (AddSection, AddField, ToggleSection and
// friends) report misuse as *field.UsageError values wrapping the sentinels
// declared here, so a presentation layer can react instead of silently
// drifting from the form state.
package form
