package core

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Turn records one full capture -> route -> execute -> respond cycle within a
// dialogue session. A Turn is immutable once appended to a History.
type Turn struct {
	ID        string    `json:"id"`
	Utterance string    `json:"utterance"`
	Response  string    `json:"response"`
	Role      Role      `json:"role"`
	Degraded  bool      `json:"degraded,omitempty"`
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`
}

// NewTurn starts a turn record for the given utterance with a fresh id.
func NewTurn(utterance string) Turn {
	return Turn{
		ID:        uuid.NewString(),
		Utterance: utterance,
		StartedAt: time.Now(),
	}
}

// Completed returns a copy of the turn filled with the routed reply.
func (t Turn) Completed(reply Reply) Turn {
	t.Response = reply.Text
	t.Role = reply.Role
	t.Degraded = reply.Degraded
	t.EndedAt = time.Now()
	return t
}

// History is the ordered sequence of completed turns for one session, oldest
// first. It is never persisted beyond the session that produced it.
type History []Turn

// JoinedUtterances concatenates every user utterance oldest-first, separated
// by a single space. Continuation turns are routed on this joined form rather
// than on the latest fragment alone, so the classifier sees the whole request.
func (h History) JoinedUtterances() string {
	parts := make([]string, 0, len(h))
	for _, t := range h {
		if s := strings.TrimSpace(t.Utterance); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// LastActiveRole returns the dispatchable role that handled the most recent
// turn. It walks backwards past FINISH turns; RoleFinish is returned when no
// turn has been dispatched yet, meaning there is nothing to be sticky about.
func (h History) LastActiveRole() Role {
	for i := len(h) - 1; i >= 0; i-- {
		if h[i].Role.Dispatchable() {
			return h[i].Role
		}
	}
	return RoleFinish
}

// Clone returns a defensive copy of the history.
func (h History) Clone() History {
	if h == nil {
		return nil
	}
	out := make(History, len(h))
	copy(out, h)
	return out
}

// Reply is the routed outcome of a single turn: which role handled it, the
// text to speak, and whether the executor had to degrade the answer.
type Reply struct {
	Role     Role   `json:"role"`
	Text     string `json:"text"`
	Degraded bool   `json:"degraded,omitempty"`
}
