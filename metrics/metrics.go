// Package metrics exposes Prometheus instrumentation for the assistant: turn
// and session counters for the dialogue loop, tool call outcomes for the agent
// executor and entry lifecycle counts for the timer scheduler.
//
// A nil *Collector is valid and turns every record method into a no-op, so
// components accept one without guarding call sites.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns a private Prometheus registry so embedding applications can
// mount Handler() without colliding with their own metrics.
type Collector struct {
	registry *prometheus.Registry

	sessionsTotal   prometheus.Counter
	turnsPerSession prometheus.Histogram
	turnsTotal      *prometheus.CounterVec
	turnDuration    *prometheus.HistogramVec
	followUpsTotal  prometheus.Counter

	toolCallsTotal  *prometheus.CounterVec
	modelTokens     *prometheus.CounterVec
	iterationCapHit prometheus.Counter

	schedulerEntries *prometheus.CounterVec
	schedulerActive  *prometheus.GaugeVec
}

// NewCollector builds a Collector with all series registered on a fresh registry.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	sessionsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "sentinel",
		Subsystem: "session",
		Name:      "completed_total",
		Help:      "Total dialogue sessions driven to completion.",
	})
	turnsPerSession := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "sentinel",
		Subsystem: "session",
		Name:      "turns_per_session",
		Help:      "Turns consumed per completed session.",
		Buckets:   []float64{1, 2, 3, 4, 5},
	})
	turnsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sentinel",
			Subsystem: "session",
			Name:      "turns_total",
			Help:      "Total dialogue turns by routed role and outcome.",
		},
		[]string{"role", "status"},
	)
	turnDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sentinel",
			Subsystem: "session",
			Name:      "turn_duration_seconds",
			Help:      "Route-and-execute duration per turn in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"role"},
	)
	followUpsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "sentinel",
		Subsystem: "session",
		Name:      "follow_ups_total",
		Help:      "Responses that triggered a follow-up capture.",
	})

	toolCallsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sentinel",
			Subsystem: "agent",
			Name:      "tool_calls_total",
			Help:      "Tool invocations by tool name and status.",
		},
		[]string{"tool", "status"},
	)
	modelTokens := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sentinel",
			Subsystem: "agent",
			Name:      "model_tokens_total",
			Help:      "Model token usage by provider and token kind.",
		},
		[]string{"provider", "kind"},
	)
	iterationCapHit := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "sentinel",
		Subsystem: "agent",
		Name:      "iteration_cap_hits_total",
		Help:      "Turns that exhausted the planning iteration budget.",
	})

	schedulerEntries := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sentinel",
			Subsystem: "scheduler",
			Name:      "entries_total",
			Help:      "Timer/alarm lifecycle transitions by kind and outcome.",
		},
		[]string{"kind", "outcome"},
	)
	schedulerActive := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "sentinel",
			Subsystem: "scheduler",
			Name:      "active_entries",
			Help:      "Currently active timers and alarms by kind.",
		},
		[]string{"kind"},
	)

	registry.MustRegister(
		sessionsTotal, turnsPerSession, turnsTotal, turnDuration, followUpsTotal,
		toolCallsTotal, modelTokens, iterationCapHit,
		schedulerEntries, schedulerActive,
	)

	return &Collector{
		registry:         registry,
		sessionsTotal:    sessionsTotal,
		turnsPerSession:  turnsPerSession,
		turnsTotal:       turnsTotal,
		turnDuration:     turnDuration,
		followUpsTotal:   followUpsTotal,
		toolCallsTotal:   toolCallsTotal,
		modelTokens:      modelTokens,
		iterationCapHit:  iterationCapHit,
		schedulerEntries: schedulerEntries,
		schedulerActive:  schedulerActive,
	}
}

// Handler serves the collector's registry in Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// SessionCompleted records one finished dialogue session and its turn count.
func (c *Collector) SessionCompleted(turns int) {
	if c == nil {
		return
	}
	c.sessionsTotal.Inc()
	c.turnsPerSession.Observe(float64(turns))
}

// TurnCompleted records a routed turn with its duration and outcome.
func (c *Collector) TurnCompleted(role string, duration time.Duration, degraded bool) {
	if c == nil {
		return
	}
	status := "success"
	if degraded {
		status = "degraded"
	}
	c.turnsTotal.WithLabelValues(role, status).Inc()
	c.turnDuration.WithLabelValues(role).Observe(duration.Seconds())
}

// FollowUpDetected records a response that led to a follow-up capture.
func (c *Collector) FollowUpDetected() {
	if c == nil {
		return
	}
	c.followUpsTotal.Inc()
}

// ToolCall records one tool invocation outcome.
func (c *Collector) ToolCall(tool string, err error) {
	if c == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	c.toolCallsTotal.WithLabelValues(tool, status).Inc()
}

// ModelTokens records prompt/completion token usage for a provider.
func (c *Collector) ModelTokens(provider string, prompt, completion int) {
	if c == nil {
		return
	}
	if prompt > 0 {
		c.modelTokens.WithLabelValues(provider, "prompt").Add(float64(prompt))
	}
	if completion > 0 {
		c.modelTokens.WithLabelValues(provider, "completion").Add(float64(completion))
	}
}

// IterationCapHit records a turn that ran out of planning iterations.
func (c *Collector) IterationCapHit() {
	if c == nil {
		return
	}
	c.iterationCapHit.Inc()
}

// EntryScheduled records a newly scheduled timer or alarm.
func (c *Collector) EntryScheduled(kind string) {
	if c == nil {
		return
	}
	c.schedulerEntries.WithLabelValues(kind, "scheduled").Inc()
	c.schedulerActive.WithLabelValues(kind).Inc()
}

// EntryFired records a timer or alarm that reached its fire time.
func (c *Collector) EntryFired(kind string) {
	if c == nil {
		return
	}
	c.schedulerEntries.WithLabelValues(kind, "fired").Inc()
	c.schedulerActive.WithLabelValues(kind).Dec()
}

// EntryCancelled records a cancelled timer or alarm.
func (c *Collector) EntryCancelled(kind string) {
	if c == nil {
		return
	}
	c.schedulerEntries.WithLabelValues(kind, "cancelled").Inc()
	c.schedulerActive.WithLabelValues(kind).Dec()
}
