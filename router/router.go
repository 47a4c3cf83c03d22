// Package router selects exactly one agent per turn. A Classifier maps the
// utterance to a role, the Router dispatches to that role's executor, and
// FINISH short-circuits with a direct reply. Routing is total: whatever the
// classifier or executor does, the caller always gets a speakable Reply.
package router

import (
	"context"

	"github.com/AsimAftab/Sentinel-AI-Desktop/agent"
	"github.com/AsimAftab/Sentinel-AI-Desktop/core"
	"github.com/AsimAftab/Sentinel-AI-Desktop/logging"
	"github.com/AsimAftab/Sentinel-AI-Desktop/metrics"
)

// clarificationText is spoken when no agent owns the request. It is phrased
// as a question so the dialogue loop offers the user another attempt.
const clarificationText = "I'm not sure which assistant should handle that. Could you rephrase your request?"

// executorDownText is spoken when the selected executor fails outright. The
// failure ends the turn, never the session.
const executorDownText = "Sorry, I ran into a problem while working on that. Could you try again?"

// Options configures a Router.
type Options struct {
	// Classifier picks the role per turn. Defaults to the rule-based
	// classifier; production wiring installs a ModelClassifier.
	Classifier Classifier
	Logger     logging.Logger
	Metrics    *metrics.Collector
}

// Router owns one executor per dispatchable role and forwards each turn to
// the executor its classifier selects.
type Router struct {
	executors  map[core.Role]*agent.Executor
	classifier Classifier
	logger     logging.Logger
	metrics    *metrics.Collector
}

// New creates a Router over the given executors. Executors are keyed by their
// role; registering two executors for the same role keeps the last one.
func New(executors []*agent.Executor, optFns ...func(o *Options)) *Router {
	opts := Options{
		Classifier: NewRuleClassifier(),
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	byRole := make(map[core.Role]*agent.Executor, len(executors))
	for _, e := range executors {
		byRole[e.Role()] = e
	}

	return &Router{
		executors:  byRole,
		classifier: opts.Classifier,
		logger:     logging.OrNoOp(opts.Logger),
		metrics:    opts.Metrics,
	}
}

// Executor returns the executor registered for the role, if any.
func (r *Router) Executor(role core.Role) (*agent.Executor, bool) {
	e, ok := r.executors[role]
	return e, ok
}

// Respond routes one utterance and returns the reply to speak. FINISH and
// unroutable requests yield a clarification; an executor failure is contained
// into a degraded apology so the session can continue.
func (r *Router) Respond(ctx context.Context, sessionID, utterance string, history core.History) core.Reply {
	role := r.classifier.Classify(ctx, utterance, history)

	if !role.Dispatchable() {
		r.logger.Info("router.finish", "session_id", sessionID)
		return core.Reply{Role: core.RoleFinish, Text: clarificationText}
	}

	executor, ok := r.executors[role]
	if !ok {
		r.logger.Warn("router.no_executor", "session_id", sessionID, "role", role.String())
		return core.Reply{Role: core.RoleFinish, Text: clarificationText}
	}

	r.logger.Info("router.dispatch", "session_id", sessionID, "role", role.String())

	result, err := executor.Execute(ctx, sessionID, utterance)
	if err != nil {
		r.logger.Error("router.execute.error", "session_id", sessionID, "role", role.String(), "error", err.Error())
		return core.Reply{Role: role, Text: executorDownText, Degraded: true}
	}

	return core.Reply{Role: role, Text: result.Text, Degraded: result.Degraded}
}
