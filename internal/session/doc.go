// Package session provides the per-learner state store.
//
// A Session is a slot map of cty.Value keyed by slot name. Lesson pages read
// slots through typed accessors that lazily initialise a missing slot with the
// supplied default, so the first pass of a page sees the default and later
// passes see whatever the page wrote back. Accessors never coerce: reading a
// slot with a different type than it was written with returns a
// *TypeMismatchError.
//
// The Manager keys sessions by UUID and expires sessions that have been idle
// longer than its TTL. Sessions share no state with each other.
package session
