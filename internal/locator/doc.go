// internal/locator/doc.go

/*
Package locator provides a structured, immutable representation of topic
locators: the identifiers that name a lesson page handler.

The canonical format is a dot-separated sequence of segments,
e.g., `aplab.topics.t01_basics.t01_variables`. Each segment starts with a
letter or underscore and continues with letters, digits or underscores.

This package centralizes all formatting and parsing logic so the catalog,
the registry and the lesson modules agree on a single spelling.
*/
package locator
