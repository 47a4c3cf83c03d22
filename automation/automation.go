// Package automation owns the single long-lived browser-automation session
// shared by media playback tools.
//
// The handle is created lazily on first use and reused across tool calls, so
// a "next track" command does not pay a browser launch. All use goes through
// one mutex: a second tool call arriving while another is navigating queues
// instead of opening a second browser. Close tears the handle down but is not
// terminal; the next acquire starts a fresh session.
package automation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/AsimAftab/Sentinel-AI-Desktop/logging"
)

// Status describes the manager's lifecycle state.
type Status string

// Session states. CLOSED is re-openable: a later Acquire transitions back to
// OPEN with a fresh handle.
const (
	StatusUninitialized Status = "UNINITIALIZED"
	StatusOpen          Status = "OPEN"
	StatusClosed        Status = "CLOSED"
)

// SessionUnavailableError reports that the underlying automation runtime
// could not produce a handle. The manager's state is left unchanged so a
// later call may retry.
type SessionUnavailableError struct {
	Cause error
}

func (e *SessionUnavailableError) Error() string {
	return fmt.Sprintf("automation session unavailable: %v", e.Cause)
}

func (e *SessionUnavailableError) Unwrap() error { return e.Cause }

// Handle is one live automation session (browser context plus active page).
type Handle interface {
	Close(ctx context.Context) error
}

// Runtime starts automation sessions. Implementations wrap whatever drives
// the real browser; tests substitute fakes.
type Runtime interface {
	Start(ctx context.Context) (Handle, error)
}

// RuntimeFunc adapts a plain function to the Runtime interface.
type RuntimeFunc func(ctx context.Context) (Handle, error)

// Start implements Runtime.
func (f RuntimeFunc) Start(ctx context.Context) (Handle, error) { return f(ctx) }

// Manager guards the process-wide automation session. At most one OPEN handle
// exists at any time and every use of it is serialized.
type Manager struct {
	mu       sync.Mutex
	runtime  Runtime
	handle   Handle
	status   Status
	lastUsed time.Time
	logger   logging.Logger
}

// Options configures optional Manager collaborators.
type Options struct {
	Logger logging.Logger
}

// NewManager creates a Manager in the UNINITIALIZED state.
func NewManager(runtime Runtime, optFns ...func(o *Options)) *Manager {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Manager{
		runtime: runtime,
		status:  StatusUninitialized,
		logger:  logging.OrNoOp(opts.Logger),
	}
}

// Acquire returns the shared handle, creating it if the manager is
// UNINITIALIZED or CLOSED. Creation failure yields *SessionUnavailableError
// and leaves the state untouched.
//
// Acquire alone does not serialize use of the handle; tool calls go through
// Do, which holds the session for the whole operation.
func (m *Manager) Acquire(ctx context.Context) (Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.acquireLocked(ctx)
}

func (m *Manager) acquireLocked(ctx context.Context) (Handle, error) {
	if m.status == StatusOpen {
		m.lastUsed = time.Now()
		return m.handle, nil
	}

	h, err := m.runtime.Start(ctx)
	if err != nil {
		m.logger.Error("automation.start.error", "error", err.Error())
		return nil, &SessionUnavailableError{Cause: err}
	}

	m.handle = h
	m.status = StatusOpen
	m.lastUsed = time.Now()
	m.logger.Info("automation.session.open")

	return h, nil
}

// Do runs fn with the shared handle while holding the session lock, so
// concurrent automation tool calls queue rather than interleave. The handle
// is created first if needed.
func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context, h Handle) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	h, err := m.acquireLocked(ctx)
	if err != nil {
		return err
	}

	if err := fn(ctx, h); err != nil {
		return err
	}

	m.lastUsed = time.Now()
	return nil
}

// Close tears down the current handle and marks the manager CLOSED. The state
// changes even when the underlying close fails; the error is returned for
// reporting. Closing an already closed or never-opened manager is a no-op.
func (m *Manager) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.status != StatusOpen {
		return nil
	}

	err := m.handle.Close(ctx)
	m.handle = nil
	m.status = StatusClosed

	if err != nil {
		m.logger.Error("automation.session.close_error", "error", err.Error())
		return err
	}

	m.logger.Info("automation.session.closed")
	return nil
}

// Status reports the current lifecycle state.
func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.status
}

// LastUsed reports when the handle was last acquired or used.
func (m *Manager) LastUsed() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.lastUsed
}
