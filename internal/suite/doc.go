// Package suite loads declarative check suites and compiles them into goal
// values the engine can seek.
//
// A suite is a CUE file declaring a named, ordered list of checks. Each check
// names a built-in kind (file, command, http) with its settings, an optional
// CUE predicate replacing the kind's default test, and optional nested
// before/after checks. A combine strategy picks how the top-level check
// outcomes merge: all (default, exhaustive AND), and, or, any.
//
// Loading unifies every file with the embedded schema before decoding, so a
// malformed suite fails with a position-carrying error instead of producing
// a half-built goal. Structural rules the schema cannot express (the settings
// block must match the kind, check names must be unique) are enforced by
// Validate.
//
// Suites are identified in the journal by a content hash over a canonical
// serialization: keys sorted, strings NFC-normalized, no HTML escaping. Two
// byte-different files declaring the same suite hash identically.
package suite
