// Package core provides the shared domain types of the Sentinel voice engine:
//
//   - Role (the closed set of capability categories the supervisor routes to)
//   - Turn / History (the per-session record of utterance/response cycles)
//   - Reply (the routed outcome of a single turn)
//
// The package holds no behavior beyond small helpers on these types. Session
// orchestration, routing, tool execution and scheduling live in their own
// packages; everything above imports core, nothing in core imports upward.
package core
