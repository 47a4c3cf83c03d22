package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/AsimAftab/Sentinel-AI-Desktop/conversation"
	"github.com/AsimAftab/Sentinel-AI-Desktop/voice"
)

// Interface compliance checks.
var (
	_ voice.Recognizer      = (*ScriptedRecognizer)(nil)
	_ voice.Speaker         = (*RecordingSpeaker)(nil)
	_ voice.WakeListener    = (*ScriptedWake)(nil)
	_ conversation.Listener = (*EventRecorder)(nil)
)

// ListenCall records the bounds one Listen call was given.
type ListenCall struct {
	Timeout     time.Duration
	PhraseLimit time.Duration
}

type captureStep struct {
	text string
	err  error
}

// ScriptedRecognizer replays a fixed capture script with fluent chaining.
// Example:
//
//	rec := NewScriptedRecognizer().Phrase("set a timer").Miss()
//
// Once the script is exhausted every further Listen reports a capture
// timeout, so a session always winds down.
type ScriptedRecognizer struct {
	mu    sync.Mutex
	steps []captureStep
	calls []ListenCall
}

// NewScriptedRecognizer creates an empty recognizer script.
func NewScriptedRecognizer() *ScriptedRecognizer {
	return &ScriptedRecognizer{}
}

// Phrase queues a successful capture returning text (chainable).
func (r *ScriptedRecognizer) Phrase(text string) *ScriptedRecognizer {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.steps = append(r.steps, captureStep{text: text})
	return r
}

// Miss queues a capture timeout (chainable).
func (r *ScriptedRecognizer) Miss() *ScriptedRecognizer {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.steps = append(r.steps, captureStep{err: voice.ErrCaptureTimeout})
	return r
}

// Listen implements voice.Recognizer.
func (r *ScriptedRecognizer) Listen(ctx context.Context, timeout, phraseLimit time.Duration) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, ListenCall{Timeout: timeout, PhraseLimit: phraseLimit})

	if len(r.steps) == 0 {
		return "", voice.ErrCaptureTimeout
	}

	step := r.steps[0]
	r.steps = r.steps[1:]
	return step.text, step.err
}

// Calls returns a copy of the recorded capture bounds.
func (r *ScriptedRecognizer) Calls() []ListenCall {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]ListenCall, len(r.calls))
	copy(out, r.calls)
	return out
}

// RecordingSpeaker collects everything it is asked to say.
type RecordingSpeaker struct {
	mu    sync.Mutex
	lines []string
}

// Speak implements voice.Speaker.
func (s *RecordingSpeaker) Speak(_ context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = append(s.lines, text)
	return nil
}

// Lines returns a copy of the spoken lines in order.
func (s *RecordingSpeaker) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.lines))
	copy(out, s.lines)
	return out
}

// ScriptedWake reports the wake word immediately for a fixed number of
// activations, then blocks until the context ends.
type ScriptedWake struct {
	mu    sync.Mutex
	wakes int
	waits int
}

// NewScriptedWake creates a wake listener that fires wakes times.
func NewScriptedWake(wakes int) *ScriptedWake {
	return &ScriptedWake{wakes: wakes}
}

// WaitForWake implements voice.WakeListener.
func (w *ScriptedWake) WaitForWake(ctx context.Context) error {
	w.mu.Lock()
	w.waits++
	fire := w.wakes > 0
	if fire {
		w.wakes--
	}
	w.mu.Unlock()

	if fire {
		return nil
	}

	<-ctx.Done()
	return ctx.Err()
}

// Waits reports how often the wake listener was consulted.
func (w *ScriptedWake) Waits() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.waits
}

// EventRecorder collects lifecycle events for assertions.
type EventRecorder struct {
	mu     sync.Mutex
	events []conversation.Event
}

// OnEvent implements conversation.Listener.
func (r *EventRecorder) OnEvent(e conversation.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, e)
}

// Events returns a copy of the recorded events in order.
func (r *EventRecorder) Events() []conversation.Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]conversation.Event, len(r.events))
	copy(out, r.events)
	return out
}

// Kinds returns just the event kinds in order.
func (r *EventRecorder) Kinds() []conversation.EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]conversation.EventKind, len(r.events))
	for i, e := range r.events {
		out[i] = e.Kind
	}
	return out
}
