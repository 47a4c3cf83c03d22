// Package scheduler manages background countdown timers and wall-clock alarms
// for the voice assistant.
//
// Every scheduled entry runs its own independent wait-then-fire unit, so one
// firing alarm never delays another countdown and nothing blocks the dialogue
// loop. Entries live in a shared registry guarded by a mutex that supports
// concurrent add/cancel/list from the session thread and from each entry's own
// fire callback. On fire the scheduler marks the entry FIRED, removes it from
// the active set and invokes the external Notifier outside the lock; notifier
// failures are logged, never propagated.
//
// Ids are monotonically increasing and process-unique across both kinds, so a
// cancelled or fired id can never be resurrected.
package scheduler
