package scheduler

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/AsimAftab/Sentinel-AI-Desktop/logging"
	"github.com/AsimAftab/Sentinel-AI-Desktop/metrics"
)

// Timer duration bounds in minutes (480 minutes = 8 hours).
const (
	MinTimerMinutes = 1
	MaxTimerMinutes = 480
)

// Kind distinguishes relative countdowns from wall-clock alarms.
type Kind string

// Entry kinds.
const (
	KindTimer Kind = "TIMER"
	KindAlarm Kind = "ALARM"
)

// Status describes an entry's lifecycle state.
type Status string

// Entry statuses. Only ACTIVE entries appear in List; FIRED and CANCELLED
// entries leave the registry the moment the transition is observed.
const (
	StatusActive    Status = "ACTIVE"
	StatusFired     Status = "FIRED"
	StatusCancelled Status = "CANCELLED"
)

// InvalidDurationError reports a timer duration outside [1, 480] minutes.
type InvalidDurationError struct {
	Minutes int
}

func (e *InvalidDurationError) Error() string {
	return fmt.Sprintf("timer duration must be between %d and %d minutes, got %d",
		MinTimerMinutes, MaxTimerMinutes, e.Minutes)
}

// UnparseableTimeError reports an alarm time spec no accepted layout matched.
type UnparseableTimeError struct {
	Spec string
}

func (e *UnparseableTimeError) Error() string {
	return fmt.Sprintf("could not parse time %q: use formats like \"3:30 PM\", \"15:30\" or \"3pm\"", e.Spec)
}

// NotFoundError reports a cancel against an id that is unknown, already fired
// or already cancelled.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no active timer or alarm with id %d", e.ID)
}

// Notifier receives fire events. Implementations are expected to produce a
// visible and audible signal; errors are logged by the scheduler and never
// propagated to the dialogue loop.
type Notifier interface {
	Notify(ctx context.Context, kind Kind, name, details string) error
}

// NotifierFunc adapts a plain function to the Notifier interface.
type NotifierFunc func(ctx context.Context, kind Kind, name, details string) error

// Notify implements Notifier.
func (f NotifierFunc) Notify(ctx context.Context, kind Kind, name, details string) error {
	return f(ctx, kind, name, details)
}

// Entry is a snapshot of one scheduled timer or alarm.
type Entry struct {
	ID        int64         `json:"id"`
	Kind      Kind          `json:"kind"`
	Name      string        `json:"name"`
	FireAt    time.Time     `json:"fire_at"`
	Remaining time.Duration `json:"remaining"`
	Status    Status        `json:"status"`
}

// timerHandle abstracts *time.Timer so tests can fire entries deterministically.
type timerHandle interface {
	Stop() bool
}

// entry is the scheduler's internal mutable record behind each Entry snapshot.
type entry struct {
	id       int64
	kind     Kind
	name     string
	fireAt   time.Time
	duration time.Duration // requested countdown, timers only
	status   Status
	handle   timerHandle
}

func (e *entry) snapshot(now time.Time) Entry {
	remaining := e.fireAt.Sub(now)
	if remaining < 0 {
		remaining = 0
	}
	return Entry{
		ID:        e.id,
		Kind:      e.kind,
		Name:      e.name,
		FireAt:    e.fireAt,
		Remaining: remaining,
		Status:    e.status,
	}
}

// Options configures optional Scheduler collaborators.
type Options struct {
	Logger  logging.Logger
	Metrics *metrics.Collector
}

// Scheduler owns the registry of active timers and alarms. All methods are
// safe for concurrent use.
type Scheduler struct {
	mu      sync.Mutex
	entries map[int64]*entry
	nextID  int64

	notifier Notifier
	logger   logging.Logger
	metrics  *metrics.Collector

	// Swapped in tests for deterministic scheduling.
	nowFn    func() time.Time
	newTimer func(d time.Duration, fn func()) timerHandle
}

// New creates a Scheduler that reports fires to notifier. A nil notifier is
// allowed; fires are then only logged.
func New(notifier Notifier, optFns ...func(o *Options)) *Scheduler {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Scheduler{
		entries:  make(map[int64]*entry),
		notifier: notifier,
		logger:   logging.OrNoOp(opts.Logger),
		metrics:  opts.Metrics,
		nowFn:    time.Now,
		newTimer: func(d time.Duration, fn func()) timerHandle {
			return time.AfterFunc(d, fn)
		},
	}
}

// SetTimer schedules a countdown of the given whole minutes. It returns the
// created entry snapshot or *InvalidDurationError when the duration falls
// outside [1, 480] minutes.
func (s *Scheduler) SetTimer(minutes int, name string) (Entry, error) {
	if minutes < MinTimerMinutes || minutes > MaxTimerMinutes {
		return Entry{}, &InvalidDurationError{Minutes: minutes}
	}
	if name == "" {
		name = "Timer"
	}

	duration := time.Duration(minutes) * time.Minute
	now := s.nowFn()

	snap := s.schedule(KindTimer, name, now, now.Add(duration), duration)

	s.logger.Info("scheduler.timer.set",
		"id", snap.ID, "name", name, "minutes", minutes, "fire_at", snap.FireAt)

	return snap, nil
}

// SetAlarm schedules a fire at the next occurrence of the given wall-clock
// time ("3:30 PM", "15:30", "3pm", ...). A time-of-day that already passed
// today rolls to tomorrow. Returns *UnparseableTimeError when no layout
// matches.
func (s *Scheduler) SetAlarm(timeSpec, name string) (Entry, error) {
	if name == "" {
		name = "Alarm"
	}

	now := s.nowFn()
	fireAt, err := parseWallClock(timeSpec, now)
	if err != nil {
		return Entry{}, err
	}

	snap := s.schedule(KindAlarm, name, now, fireAt, fireAt.Sub(now))

	s.logger.Info("scheduler.alarm.set",
		"id", snap.ID, "name", name, "spec", timeSpec, "fire_at", snap.FireAt)

	return snap, nil
}

func (s *Scheduler) schedule(kind Kind, name string, now, fireAt time.Time, duration time.Duration) Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	e := &entry{
		id:       s.nextID,
		kind:     kind,
		name:     name,
		fireAt:   fireAt,
		duration: duration,
		status:   StatusActive,
	}

	id := e.id
	e.handle = s.newTimer(fireAt.Sub(now), func() { s.fire(id) })
	s.entries[id] = e

	s.metrics.EntryScheduled(string(kind))

	return e.snapshot(now)
}

// fire runs on the entry's own timer goroutine. A cancel that won the lock
// first already removed the entry, making this a no-op.
func (s *Scheduler) fire(id int64) {
	s.mu.Lock()
	e, ok := s.entries[id]
	if !ok {
		s.mu.Unlock()
		return
	}
	e.status = StatusFired
	delete(s.entries, id)

	kind, name := e.kind, e.name
	details := FormatClock(e.fireAt)
	if kind == KindTimer {
		details = FormatMinutes(int(e.duration / time.Minute))
	}
	s.mu.Unlock()

	s.metrics.EntryFired(string(kind))
	s.logger.Info("scheduler.fire", "id", id, "kind", string(kind), "name", name)

	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(context.Background(), kind, name, details); err != nil {
		s.logger.Error("scheduler.notify.error", "id", id, "kind", string(kind), "error", err.Error())
	}
}

// List returns the ACTIVE entries ordered by fire time ascending. It never
// mutates scheduler state.
func (s *Scheduler) List() []Entry {
	now := s.nowFn()

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.snapshot(now))
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].FireAt.Equal(out[j].FireAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].FireAt.Before(out[j].FireAt)
	})

	return out
}

// Cancel stops the entry with the given id before it fires. It returns the
// cancelled snapshot, or *NotFoundError for ids that are unknown, already
// fired or already cancelled.
func (s *Scheduler) Cancel(id int64) (Entry, error) {
	now := s.nowFn()

	s.mu.Lock()
	e, ok := s.entries[id]
	if !ok {
		s.mu.Unlock()
		return Entry{}, &NotFoundError{ID: id}
	}

	e.handle.Stop()
	e.status = StatusCancelled
	delete(s.entries, id)
	snap := e.snapshot(now)
	s.mu.Unlock()

	s.metrics.EntryCancelled(string(snap.Kind))
	s.logger.Info("scheduler.cancel", "id", id, "kind", string(snap.Kind), "name", snap.Name)

	return snap, nil
}

// CancelAll cancels every ACTIVE entry and reports how many were cancelled.
func (s *Scheduler) CancelAll() int {
	now := s.nowFn()

	s.mu.Lock()
	cancelled := make([]Entry, 0, len(s.entries))
	for id, e := range s.entries {
		e.handle.Stop()
		e.status = StatusCancelled
		cancelled = append(cancelled, e.snapshot(now))
		delete(s.entries, id)
	}
	s.mu.Unlock()

	for _, snap := range cancelled {
		s.metrics.EntryCancelled(string(snap.Kind))
	}
	if len(cancelled) > 0 {
		s.logger.Info("scheduler.cancel_all", "count", len(cancelled))
	}

	return len(cancelled)
}
