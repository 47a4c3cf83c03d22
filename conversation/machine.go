package conversation

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/AsimAftab/Sentinel-AI-Desktop/core"
	"github.com/AsimAftab/Sentinel-AI-Desktop/logging"
	"github.com/AsimAftab/Sentinel-AI-Desktop/metrics"
	"github.com/AsimAftab/Sentinel-AI-Desktop/voice"
)

// DefaultMaxTurns bounds the turns of a single session.
const DefaultMaxTurns = 5

// timeoutNoticeText is spoken when a follow-up listen captures nothing.
const timeoutNoticeText = "I didn't catch a response, so I'll leave it here. Say the wake word when you need me."

// exitAckText is spoken when the user ends the dialogue with an exit phrase.
const exitAckText = "Okay, ending the conversation."

// ErrNoWakeListener is returned by Run when the machine was built without a
// wake listener. RunSession does not need one.
var ErrNoWakeListener = errors.New("conversation: no wake listener configured")

// Responder resolves one utterance into a speakable reply. The intent router
// implements this; tests swap in scripted responders. Implementations must be
// total and never panic the session.
type Responder interface {
	Respond(ctx context.Context, sessionID, utterance string, history core.History) core.Reply
}

// ResponderFunc adapts a function to the Responder interface.
type ResponderFunc func(ctx context.Context, sessionID, utterance string, history core.History) core.Reply

// Respond implements Responder.
func (f ResponderFunc) Respond(ctx context.Context, sessionID, utterance string, history core.History) core.Reply {
	return f(ctx, sessionID, utterance, history)
}

// Config bounds a session's turns and listening windows.
type Config struct {
	// MaxTurns caps routing entries per session.
	MaxTurns int
	// InitialListenTimeout bounds the wait for speech to start after wake.
	InitialListenTimeout time.Duration
	// InitialPhraseLimit bounds the length of the first command phrase.
	InitialPhraseLimit time.Duration
	// FollowUpListenTimeout bounds the wait for a follow-up response.
	FollowUpListenTimeout time.Duration
	// FollowUpPhraseLimit bounds the length of a follow-up phrase.
	FollowUpPhraseLimit time.Duration
}

// DefaultConfig returns the stock dialogue bounds.
func DefaultConfig() Config {
	return Config{
		MaxTurns:              DefaultMaxTurns,
		InitialListenTimeout:  5 * time.Second,
		InitialPhraseLimit:    10 * time.Second,
		FollowUpListenTimeout: 10 * time.Second,
		FollowUpPhraseLimit:   15 * time.Second,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MaxTurns < 1 {
		c.MaxTurns = d.MaxTurns
	}
	if c.InitialListenTimeout <= 0 {
		c.InitialListenTimeout = d.InitialListenTimeout
	}
	if c.InitialPhraseLimit <= 0 {
		c.InitialPhraseLimit = d.InitialPhraseLimit
	}
	if c.FollowUpListenTimeout <= 0 {
		c.FollowUpListenTimeout = d.FollowUpListenTimeout
	}
	if c.FollowUpPhraseLimit <= 0 {
		c.FollowUpPhraseLimit = d.FollowUpPhraseLimit
	}
	return c
}

// Options configures a Machine.
type Options struct {
	Config Config
	// Wake is required for Run; RunSession works without it.
	Wake     voice.WakeListener
	Listener Listener
	Logger   logging.Logger
	Metrics  *metrics.Collector
}

// Machine executes the dialogue state flow over a Responder and the voice
// interfaces. It is single-threaded per session; create one Machine and call
// Run once, or RunSession per push-to-talk activation.
type Machine struct {
	responder  Responder
	recognizer voice.Recognizer
	speaker    voice.Speaker
	wake       voice.WakeListener
	cfg        Config
	listener   Listener
	logger     logging.Logger
	metrics    *metrics.Collector
}

// NewMachine creates a Machine over the given responder and voice endpoints.
func NewMachine(responder Responder, recognizer voice.Recognizer, speaker voice.Speaker, optFns ...func(o *Options)) *Machine {
	opts := Options{
		Config: DefaultConfig(),
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Machine{
		responder:  responder,
		recognizer: recognizer,
		speaker:    speaker,
		wake:       opts.Wake,
		cfg:        opts.Config.withDefaults(),
		listener:   opts.Listener,
		logger:     logging.OrNoOp(opts.Logger),
		metrics:    opts.Metrics,
	}
}

// Config returns the effective dialogue bounds.
func (m *Machine) Config() Config { return m.cfg }

// Run loops forever: wait for the wake word, run one session, go back to
// idle. It returns when the context ends or the wake listener fails.
func (m *Machine) Run(ctx context.Context) error {
	if m.wake == nil {
		return ErrNoWakeListener
	}

	for {
		m.logger.Info("conversation.idle")

		if err := m.wake.WaitForWake(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}

		m.emit(Event{Kind: EventWakeDetected})

		if _, err := m.RunSession(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			m.logger.Error("conversation.session.error", "error", err.Error())
		}
	}
}

// RunSession drives a single wake-to-done dialogue and returns the finished
// session. The only returned error is context cancellation; every capture or
// speech problem is folded into the flow.
func (m *Machine) RunSession(ctx context.Context) (*Session, error) {
	session := NewSession()
	m.logger.Info("conversation.session.start", "session_id", session.ID())

	session.setState(StateCapturingInitial)
	m.emit(Event{Kind: EventListeningForCommand, SessionID: session.ID()})

	utterance, err := m.listen(ctx, m.cfg.InitialListenTimeout, m.cfg.InitialPhraseLimit)
	if err != nil {
		if ctx.Err() != nil {
			session.setState(StateDone)
			return session, ctx.Err()
		}
		// Nothing was said. Return to idle without disturbing anyone.
		m.logger.Info("conversation.capture.none", "session_id", session.ID())
		session.setState(StateWaitingWakeWord)
		return session, nil
	}

	for {
		if err := m.runTurn(ctx, session, utterance); err != nil {
			session.setState(StateDone)
			return session, err
		}

		next, more, err := m.nextUtterance(ctx, session)
		if err != nil {
			session.setState(StateDone)
			return session, err
		}
		if !more {
			break
		}
		utterance = next
	}

	session.setState(StateDone)
	m.metrics.SessionCompleted(session.Turns())
	m.emit(Event{Kind: EventConversationEnded, SessionID: session.ID(), Turn: session.Turns()})
	m.logger.Info("conversation.session.done", "session_id", session.ID(), "turns", session.Turns())

	return session, nil
}

// runTurn routes one utterance and voices the reply.
func (m *Machine) runTurn(ctx context.Context, session *Session, utterance string) error {
	m.emit(Event{Kind: EventCommandReceived, SessionID: session.ID(), Text: utterance})

	// History and joined input are snapshotted before the turn is recorded,
	// so the responder sees prior turns plus the fresh utterance.
	history := session.History()
	input := session.routeInput(utterance)

	turnNo := session.beginTurn()
	m.emit(Event{Kind: EventProcessing, SessionID: session.ID(), Turn: turnNo, Text: input})
	m.logger.Info("conversation.turn.start", "session_id", session.ID(), "turn", turnNo)

	turn := core.NewTurn(utterance)
	start := time.Now()

	reply := m.responder.Respond(ctx, session.ID(), input, history)

	m.metrics.TurnCompleted(reply.Role.String(), time.Since(start), reply.Degraded)
	session.append(turn.Completed(reply))
	m.logger.Info("conversation.turn.done",
		"session_id", session.ID(),
		"turn", turnNo,
		"role", reply.Role.String(),
		"degraded", reply.Degraded,
	)

	m.speak(ctx, session, reply.Text)
	return ctx.Err()
}

// nextUtterance decides whether the dialogue continues and captures the
// follow-up phrase when it does.
func (m *Machine) nextUtterance(ctx context.Context, session *Session) (string, bool, error) {
	session.setState(StateFollowUpCheck)

	history := session.History()
	lastReply := history[len(history)-1].Response

	if !IsFollowUp(lastReply) {
		return "", false, nil
	}
	if session.Turns() >= m.cfg.MaxTurns {
		m.logger.Info("conversation.turns.exhausted", "session_id", session.ID(), "turns", session.Turns())
		return "", false, nil
	}

	m.metrics.FollowUpDetected()
	m.emit(Event{Kind: EventFollowUpDetected, SessionID: session.ID(), Turn: session.Turns()})

	session.setState(StateCapturingFollowUp)
	text, err := m.listen(ctx, m.cfg.FollowUpListenTimeout, m.cfg.FollowUpPhraseLimit)
	if err != nil {
		if ctx.Err() != nil {
			return "", false, ctx.Err()
		}
		m.logger.Info("conversation.followup.timeout", "session_id", session.ID())
		m.speak(ctx, session, timeoutNoticeText)
		return "", false, nil
	}

	if IsExitPhrase(text) {
		m.logger.Info("conversation.exit_phrase", "session_id", session.ID())
		m.speak(ctx, session, exitAckText)
		return "", false, nil
	}

	return text, true, nil
}

// listen captures one trimmed phrase. An empty transcript counts as a miss.
func (m *Machine) listen(ctx context.Context, timeout, phraseLimit time.Duration) (string, error) {
	text, err := m.recognizer.Listen(ctx, timeout, phraseLimit)
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", voice.ErrCaptureEmpty
	}
	return text, nil
}

// speak voices text after cleanup. Speech failures are logged, never fatal.
func (m *Machine) speak(ctx context.Context, session *Session, text string) {
	clean := voice.CleanForSpeech(text)
	if clean == "" {
		return
	}

	m.emit(Event{Kind: EventSpeaking, SessionID: session.ID(), Text: clean})

	if err := m.speaker.Speak(ctx, clean); err != nil {
		m.logger.Warn("conversation.speak.error", "session_id", session.ID(), "error", err.Error())
	}
}

// emit delivers an event to the listener, stamping the time. A panicking
// listener is contained here.
func (m *Machine) emit(e Event) {
	if m.listener == nil {
		return
	}

	e.At = time.Now()

	defer func() {
		if r := recover(); r != nil {
			m.logger.Warn("conversation.listener.panic", "kind", string(e.Kind), "panic", r)
		}
	}()

	m.listener.OnEvent(e)
}
