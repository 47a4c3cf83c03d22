package sentinel

import "github.com/AsimAftab/Sentinel-AI-Desktop/conversation"

// Lifecycle events are defined next to the state machine that emits them;
// these aliases let hosts consume the stream without importing the
// conversation package.

// Event is one lifecycle notification emitted during a dialogue session.
type Event = conversation.Event

// EventKind names a point in the dialogue lifecycle.
type EventKind = conversation.EventKind

// Listener receives lifecycle events.
type Listener = conversation.Listener

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc = conversation.ListenerFunc

// Lifecycle event kinds.
const (
	EventWakeDetected        = conversation.EventWakeDetected
	EventListeningForCommand = conversation.EventListeningForCommand
	EventCommandReceived     = conversation.EventCommandReceived
	EventProcessing          = conversation.EventProcessing
	EventSpeaking            = conversation.EventSpeaking
	EventFollowUpDetected    = conversation.EventFollowUpDetected
	EventConversationEnded   = conversation.EventConversationEnded
)
