package conversation

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AsimAftab/Sentinel-AI-Desktop/core"
)

// State names a phase of the dialogue loop.
type State string

const (
	// StateWaitingWakeWord is the idle phase before and between sessions.
	StateWaitingWakeWord State = "WAITING_WAKE_WORD"
	// StateCapturingInitial is the bounded listen for the first command.
	StateCapturingInitial State = "CAPTURING_INITIAL"
	// StateRoutingAndExecuting covers classification and agent execution.
	StateRoutingAndExecuting State = "ROUTING_AND_EXECUTING"
	// StateFollowUpCheck inspects the reply for a question back to the user.
	StateFollowUpCheck State = "FOLLOW_UP_CHECK"
	// StateCapturingFollowUp is the bounded listen for a continuation.
	StateCapturingFollowUp State = "CAPTURING_FOLLOW_UP"
	// StateDone ends the session; history dies with it.
	StateDone State = "DONE"
)

// Session tracks one wake-to-done dialogue: its phase, completed turns and
// accumulated history. It is safe for concurrent reads while the machine
// drives it, so observers can poll state from other goroutines.
//
// Contract:
//   - the turn counter grows by exactly one per routing entry and never
//     exceeds the machine's turn budget
//   - History returns a defensive copy
//   - mutations update the Updated timestamp.
type Session struct {
	mu      sync.RWMutex
	id      string
	state   State
	turns   int
	history core.History
	created time.Time
	updated time.Time
}

// NewSession creates an idle session with a fresh id.
func NewSession() *Session {
	now := time.Now()
	return &Session{
		id:      uuid.NewString(),
		state:   StateWaitingWakeWord,
		created: now,
		updated: now,
	}
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// State returns the current phase.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Turns returns the number of routing entries so far.
func (s *Session) Turns() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.turns
}

// History returns a copy of the completed turns, oldest first.
func (s *Session) History() core.History {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.Clone()
}

// Created returns the session creation time.
func (s *Session) Created() time.Time { return s.created }

// Updated returns the time of the last mutation.
func (s *Session) Updated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updated
}

func (s *Session) setState(next State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = next
	s.updated = time.Now()
}

// beginTurn enters routing, bumps the turn counter and returns its new value.
func (s *Session) beginTurn() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateRoutingAndExecuting
	s.turns++
	s.updated = time.Now()
	return s.turns
}

// append records a completed turn.
func (s *Session) append(t core.Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, t)
	s.updated = time.Now()
}

// routeInput joins every prior utterance with the current one so that
// continuations are classified against the whole request, not the last
// fragment alone.
func (s *Session) routeInput(utterance string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	joined := s.history.JoinedUtterances()
	if joined == "" {
		return utterance
	}
	return strings.TrimSpace(joined + " " + utterance)
}
