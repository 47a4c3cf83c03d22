// Package testutil contains scripted voice doubles used across tests to
// reduce boilerplate when driving dialogue sessions without audio hardware.
// The doubles replay fixed capture scripts and record everything they are
// asked to do. They are intentionally minimal and not intended for
// production usage.
package testutil
