package conversation

import "time"

// EventKind names a point in the dialogue lifecycle.
type EventKind string

const (
	// EventWakeDetected fires when the wake word ends idle listening.
	EventWakeDetected EventKind = "WAKE_DETECTED"
	// EventListeningForCommand fires when the engine starts capturing speech.
	EventListeningForCommand EventKind = "LISTENING_FOR_COMMAND"
	// EventCommandReceived fires once a phrase has been transcribed. Text
	// carries the transcript.
	EventCommandReceived EventKind = "COMMAND_RECEIVED"
	// EventProcessing fires when a turn enters routing and execution.
	EventProcessing EventKind = "PROCESSING"
	// EventSpeaking fires before a reply is voiced. Text carries the cleaned
	// speech text.
	EventSpeaking EventKind = "SPEAKING"
	// EventFollowUpDetected fires when a reply asks the user for more input
	// and the turn budget still allows another round.
	EventFollowUpDetected EventKind = "FOLLOW_UP_DETECTED"
	// EventConversationEnded fires when a session reaches DONE. Turn carries
	// the number of completed turns.
	EventConversationEnded EventKind = "CONVERSATION_ENDED"
)

// Event is one lifecycle notification. Events exist for observers (UIs,
// metrics, logs); the dialogue flow never depends on them being consumed.
type Event struct {
	Kind      EventKind `json:"kind"`
	SessionID string    `json:"session_id"`
	Turn      int       `json:"turn,omitempty"`
	Text      string    `json:"text,omitempty"`
	At        time.Time `json:"at"`
}

// Listener receives lifecycle events. Calls happen inline on the session
// goroutine; a listener that panics is contained and the session continues.
type Listener interface {
	OnEvent(e Event)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(e Event)

// OnEvent implements Listener.
func (f ListenerFunc) OnEvent(e Event) { f(e) }
