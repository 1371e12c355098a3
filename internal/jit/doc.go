// Package jit compiles a parsed primitives.Statement into a live
// core.Block wired to the right extensibility.Behavior — the block
// factory spec.md §4.8 describes, named jit (just-in-time) because
// compilation happens lazily, one statement at a time, as the stack
// descends into it rather than up front for the whole script.
//
// Grounded in the teacher's MachineBuilder (builder.go, since removed),
// which similarly turned a static config tree into live runtime nodes —
// rewritten from a whole-machine builder pass into a per-statement
// factory since blocks compile children lazily rather than all at once.
package jit
