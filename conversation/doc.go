// Package conversation drives the bounded multi-turn dialogue loop: wait for
// the wake word, capture a command, route it, speak the reply, and keep
// listening while replies ask for more and the turn budget lasts.
//
// The Machine owns the control flow only. Understanding belongs to the
// Responder (the intent router), audio belongs to the voice interfaces, and
// per-session facts live in Session. One Machine serves any number of
// consecutive sessions; nothing survives a session except logs, metrics and
// whatever listeners recorded.
package conversation
