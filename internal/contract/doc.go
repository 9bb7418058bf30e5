// Package contract implements the counter contract's single-shot dispatcher.
//
// One invocation reads one request line, resolves the state (caller-supplied
// state replaces the default), dispatches on the method name, emits at most
// one event and produces exactly one response.
//
// Methods:
//   - initialize   → counter = 0, event Initialized
//   - increment    → counter + 1 (saturating), event CounterIncremented
//   - list_methods → the state-mutating methods, no event
//
// Error handling:
//   - No input line      → Error "No input received", default state
//   - Undecodable line   → Error "Invalid JSON input", default state
//   - Unrecognised method → Error "Unknown method", resolved state unchanged
//
// All three failures produce a null result and exit status 1. A failure to
// write an event is fatal and surfaces as an error from Run/Handle.
package contract
