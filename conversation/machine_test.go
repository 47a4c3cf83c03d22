package conversation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AsimAftab/Sentinel-AI-Desktop/core"
	"github.com/AsimAftab/Sentinel-AI-Desktop/voice"
)

// ---
// Scripted voice endpoints.

type listenCall struct {
	timeout     time.Duration
	phraseLimit time.Duration
}

type scriptedRecognizer struct {
	mu      sync.Mutex
	phrases []string
	errs    []error
	calls   []listenCall
}

// phrase queues a successful capture; miss queues a capture error.
func (r *scriptedRecognizer) phrase(text string) *scriptedRecognizer {
	r.phrases = append(r.phrases, text)
	r.errs = append(r.errs, nil)
	return r
}

func (r *scriptedRecognizer) miss(err error) *scriptedRecognizer {
	r.phrases = append(r.phrases, "")
	r.errs = append(r.errs, err)
	return r
}

func (r *scriptedRecognizer) Listen(ctx context.Context, timeout, phraseLimit time.Duration) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}

	r.calls = append(r.calls, listenCall{timeout: timeout, phraseLimit: phraseLimit})
	if len(r.phrases) == 0 {
		return "", voice.ErrCaptureTimeout
	}

	text, err := r.phrases[0], r.errs[0]
	r.phrases, r.errs = r.phrases[1:], r.errs[1:]
	return text, err
}

type recordingSpeaker struct {
	mu     sync.Mutex
	spoken []string
}

func (s *recordingSpeaker) Speak(_ context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spoken = append(s.spoken, text)
	return nil
}

func (s *recordingSpeaker) lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.spoken))
	copy(out, s.spoken)
	return out
}

type eventRecorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *eventRecorder) OnEvent(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *eventRecorder) kinds() []EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]EventKind, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Kind)
	}
	return out
}

// respondCall captures what the machine handed to the responder.
type respondCall struct {
	sessionID string
	utterance string
	history   core.History
}

type scriptedResponder struct {
	mu      sync.Mutex
	replies []core.Reply
	calls   []respondCall
}

func (r *scriptedResponder) reply(role core.Role, text string) *scriptedResponder {
	r.replies = append(r.replies, core.Reply{Role: role, Text: text})
	return r
}

func (r *scriptedResponder) Respond(_ context.Context, sessionID, utterance string, history core.History) core.Reply {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, respondCall{sessionID: sessionID, utterance: utterance, history: history})
	if len(r.replies) == 0 {
		return core.Reply{Role: core.RoleFinish, Text: "Done."}
	}

	reply := r.replies[0]
	r.replies = r.replies[1:]
	return reply
}

// ---
// Single-turn flow.

func TestRunSessionSingleTurn(t *testing.T) {
	rec := (&scriptedRecognizer{}).phrase("set a timer for 5 minutes")
	spk := &recordingSpeaker{}
	events := &eventRecorder{}
	responder := (&scriptedResponder{}).reply(core.RoleProductivity, "**Timer set** for 5 minutes.")

	m := NewMachine(responder, rec, spk, func(o *Options) {
		o.Listener = events
	})

	session, err := m.RunSession(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StateDone, session.State())
	assert.Equal(t, 1, session.Turns())

	history := session.History()
	require.Len(t, history, 1)
	assert.Equal(t, "set a timer for 5 minutes", history[0].Utterance)
	assert.Equal(t, "**Timer set** for 5 minutes.", history[0].Response)
	assert.Equal(t, core.RoleProductivity, history[0].Role)

	// ---
	// The reply is cleaned before it reaches the speaker.

	assert.Equal(t, []string{"Timer set for 5 minutes."}, spk.lines())

	assert.Equal(t, []EventKind{
		EventListeningForCommand,
		EventCommandReceived,
		EventProcessing,
		EventSpeaking,
		EventConversationEnded,
	}, events.kinds())

	// Initial capture uses the initial listening bounds.
	require.Len(t, rec.calls, 1)
	assert.Equal(t, 5*time.Second, rec.calls[0].timeout)
	assert.Equal(t, 10*time.Second, rec.calls[0].phraseLimit)
}

func TestRunSessionFollowUpLoop(t *testing.T) {
	rec := (&scriptedRecognizer{}).
		phrase("play some music").
		phrase("hotel california")
	spk := &recordingSpeaker{}
	events := &eventRecorder{}
	responder := (&scriptedResponder{}).
		reply(core.RoleMusic, "Which song would you like?").
		reply(core.RoleMusic, "Playing Hotel California.")

	m := NewMachine(responder, rec, spk, func(o *Options) {
		o.Listener = events
	})

	session, err := m.RunSession(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, session.Turns())
	require.Len(t, responder.calls, 2)

	// The continuation is routed on the joined utterances with the first
	// turn already in history.
	assert.Equal(t, "play some music", responder.calls[0].utterance)
	assert.Empty(t, responder.calls[0].history)
	assert.Equal(t, "play some music hotel california", responder.calls[1].utterance)
	require.Len(t, responder.calls[1].history, 1)
	assert.Equal(t, core.RoleMusic, responder.calls[1].history[0].Role)

	// Both turns belong to the same session.
	assert.Equal(t, responder.calls[0].sessionID, responder.calls[1].sessionID)

	// Follow-up capture uses the longer bounds.
	require.Len(t, rec.calls, 2)
	assert.Equal(t, 10*time.Second, rec.calls[1].timeout)
	assert.Equal(t, 15*time.Second, rec.calls[1].phraseLimit)

	assert.Contains(t, events.kinds(), EventFollowUpDetected)
}

func TestRunSessionTurnCap(t *testing.T) {
	rec := (&scriptedRecognizer{}).
		phrase("plan my day").
		phrase("more").
		phrase("even more").
		phrase("unused")
	spk := &recordingSpeaker{}
	events := &eventRecorder{}

	// Every reply asks for more; the cap must cut the loop.
	responder := (&scriptedResponder{}).
		reply(core.RoleProductivity, "Could you give me more detail?").
		reply(core.RoleProductivity, "Could you give me more detail?").
		reply(core.RoleProductivity, "Could you give me more detail?")

	m := NewMachine(responder, rec, spk, func(o *Options) {
		o.Config.MaxTurns = 3
		o.Listener = events
	})

	session, err := m.RunSession(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, session.Turns())
	assert.Len(t, responder.calls, 3)

	// Initial capture plus exactly two follow-up captures; the third reply
	// hits the cap before any further listening.
	assert.Len(t, rec.calls, 3)

	followUps := 0
	for _, kind := range events.kinds() {
		if kind == EventFollowUpDetected {
			followUps++
		}
	}
	assert.Equal(t, 2, followUps)
}

func TestRunSessionExitPhrase(t *testing.T) {
	rec := (&scriptedRecognizer{}).
		phrase("play some music").
		phrase("nevermind")
	spk := &recordingSpeaker{}
	responder := (&scriptedResponder{}).reply(core.RoleMusic, "Which song would you like?")

	m := NewMachine(responder, rec, spk)

	session, err := m.RunSession(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, session.Turns())
	assert.Len(t, responder.calls, 1)

	lines := spk.lines()
	require.Len(t, lines, 2)
	assert.Equal(t, exitAckText, lines[1])
}

func TestRunSessionFollowUpTimeout(t *testing.T) {
	rec := (&scriptedRecognizer{}).
		phrase("play some music").
		miss(voice.ErrCaptureTimeout)
	spk := &recordingSpeaker{}
	responder := (&scriptedResponder{}).reply(core.RoleMusic, "Which song would you like?")

	m := NewMachine(responder, rec, spk)

	session, err := m.RunSession(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, session.Turns())
	assert.Equal(t, StateDone, session.State())

	lines := spk.lines()
	require.Len(t, lines, 2)
	assert.Equal(t, timeoutNoticeText, lines[1])
}

func TestRunSessionNoCommand(t *testing.T) {
	rec := (&scriptedRecognizer{}).miss(voice.ErrCaptureTimeout)
	spk := &recordingSpeaker{}
	events := &eventRecorder{}
	responder := &scriptedResponder{}

	m := NewMachine(responder, rec, spk, func(o *Options) {
		o.Listener = events
	})

	session, err := m.RunSession(context.Background())
	require.NoError(t, err)

	// Nothing was said: back to idle, nobody was bothered.
	assert.Equal(t, StateWaitingWakeWord, session.State())
	assert.Zero(t, session.Turns())
	assert.Empty(t, responder.calls)
	assert.Empty(t, spk.lines())
	assert.NotContains(t, events.kinds(), EventConversationEnded)
}

func TestRunSessionBlankTranscript(t *testing.T) {
	rec := (&scriptedRecognizer{}).phrase("   ")
	responder := &scriptedResponder{}

	m := NewMachine(responder, rec, &recordingSpeaker{})

	session, err := m.RunSession(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StateWaitingWakeWord, session.State())
	assert.Empty(t, responder.calls)
}

func TestRunSessionContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := (&scriptedRecognizer{}).phrase("unused")
	m := NewMachine(&scriptedResponder{}, rec, &recordingSpeaker{})

	session, err := m.RunSession(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StateDone, session.State())
	assert.Zero(t, session.Turns())
}

// ---
// Wake loop.

func TestRunNeedsWakeListener(t *testing.T) {
	m := NewMachine(&scriptedResponder{}, &scriptedRecognizer{}, &recordingSpeaker{})

	err := m.Run(context.Background())

	assert.ErrorIs(t, err, ErrNoWakeListener)
}

func TestRunWakeThenSessionThenCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	rec := (&scriptedRecognizer{}).phrase("set a timer for 5 minutes")
	spk := &recordingSpeaker{}
	events := &eventRecorder{}
	responder := (&scriptedResponder{}).reply(core.RoleProductivity, "Timer set for 5 minutes.")

	wakes := 0
	wake := voice.WakeListenerFunc(func(ctx context.Context) error {
		wakes++
		if wakes == 1 {
			return nil
		}
		cancel()
		return ctx.Err()
	})

	m := NewMachine(responder, rec, spk, func(o *Options) {
		o.Wake = wake
		o.Listener = events
	})

	err := m.Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 2, wakes)
	assert.Len(t, responder.calls, 1)

	kinds := events.kinds()
	assert.Equal(t, EventWakeDetected, kinds[0])
	assert.Contains(t, kinds, EventConversationEnded)
}

func TestListenerPanicContained(t *testing.T) {
	rec := (&scriptedRecognizer{}).phrase("set a timer for 5 minutes")
	responder := (&scriptedResponder{}).reply(core.RoleProductivity, "Timer set for 5 minutes.")

	m := NewMachine(responder, rec, &recordingSpeaker{}, func(o *Options) {
		o.Listener = ListenerFunc(func(Event) { panic("observer bug") })
	})

	session, err := m.RunSession(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, session.Turns())
	assert.Equal(t, StateDone, session.State())
}

func TestConfigDefaults(t *testing.T) {
	m := NewMachine(&scriptedResponder{}, &scriptedRecognizer{}, &recordingSpeaker{}, func(o *Options) {
		o.Config = Config{}
	})

	cfg := m.Config()
	assert.Equal(t, DefaultMaxTurns, cfg.MaxTurns)
	assert.Equal(t, 5*time.Second, cfg.InitialListenTimeout)
	assert.Equal(t, 10*time.Second, cfg.InitialPhraseLimit)
	assert.Equal(t, 10*time.Second, cfg.FollowUpListenTimeout)
	assert.Equal(t, 15*time.Second, cfg.FollowUpPhraseLimit)
}
