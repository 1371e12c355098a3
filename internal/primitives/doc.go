// Package primitives provides the foundational, dependency-free data types
// shared by every tier of the ironloop interpreter: fragments, statements,
// block identity, time spans, and bus events.
//
// This package depends only on the Go standard library so that
// internal/core, internal/extensibility, internal/jit, and
// internal/production can all import it without risk of a cycle back to
// the root package, which assembles them into a Session.
package primitives
