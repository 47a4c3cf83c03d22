package tool

import (
	"context"

	"github.com/google/uuid"

	"github.com/AsimAftab/Sentinel-AI-Desktop/logging"
)

// Context carries the per-invocation surface handed to tool implementations:
// the cancellation context of the turn, correlation identifiers and a scoped
// logger. It is created once per tool call and discarded afterwards.
type Context struct {
	ctx       context.Context
	sessionID string
	callID    string
	logger    logging.Logger
}

// NewContext constructs an invocation context bound to a dialogue session and
// a function call identifier. An empty callID is replaced with a fresh UUID so
// every invocation stays correlatable in logs.
func NewContext(ctx context.Context, sessionID, callID string, logger logging.Logger) *Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if callID == "" {
		callID = uuid.NewString()
	}
	return &Context{
		ctx:       ctx,
		sessionID: sessionID,
		callID:    callID,
		logger:    logging.OrNoOp(logger),
	}
}

// Context returns the cancellation context associated with the invocation.
func (tc *Context) Context() context.Context { return tc.ctx }

// SessionID returns the dialogue session ID associated with the invocation.
func (tc *Context) SessionID() string { return tc.sessionID }

// CallID returns the function call ID associated with the invocation.
func (tc *Context) CallID() string { return tc.callID }

// Logger returns the logger associated with the invocation.
func (tc *Context) Logger() logging.Logger { return tc.logger }
