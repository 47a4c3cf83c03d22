package router

import (
	"context"
	"strings"

	"github.com/AsimAftab/Sentinel-AI-Desktop/core"
	"github.com/AsimAftab/Sentinel-AI-Desktop/logging"
	"github.com/AsimAftab/Sentinel-AI-Desktop/model"
)

// Classifier maps an utterance plus conversation history to exactly one agent
// role. Implementations must be total: for any well-formed input they return
// a role or RoleFinish, never an error. Same input, same output.
type Classifier interface {
	Classify(ctx context.Context, utterance string, history core.History) core.Role
}

// ClassifierFunc adapts a plain function to the Classifier interface.
type ClassifierFunc func(ctx context.Context, utterance string, history core.History) core.Role

// Classify implements Classifier.
func (f ClassifierFunc) Classify(ctx context.Context, utterance string, history core.History) core.Role {
	return f(ctx, utterance, history)
}

// defaultVocabulary holds the trigger terms per role for rule-based routing.
// Matching is lowercase substring, same as the follow-up detector; no
// stemming.
var defaultVocabulary = map[core.Role][]string{
	core.RoleProductivity: {
		"timer", "alarm", "countdown", "remind", "stopwatch", "wake me",
	},
	core.RoleMusic: {
		"music", "song", "play", "spotify", "youtube", "playlist",
		"pause", "resume", "skip", "next track", "previous track", "lyrics", "radio",
	},
	core.RoleMeeting: {
		"meeting", "calendar", "schedule", "appointment", "invite", "zoom", "standup",
	},
	core.RoleSystem: {
		"volume", "mute", "unmute", "screenshot", "open", "close", "launch",
		"application", "running apps", "brightness",
	},
	core.RoleBrowser: {
		"search", "weather", "news", "translate", "currency", "define",
		"definition", "google", "website", "wikipedia", "look up", "download",
	},
}

// RuleClassifier is the deterministic classifier used for tests and as the
// degradation target when no model is reachable. Ties between matching roles
// prefer the session's most recently active role, then the fixed dispatch
// priority.
type RuleClassifier struct {
	vocabulary map[core.Role][]string
}

// NewRuleClassifier creates a RuleClassifier with the default trigger terms.
func NewRuleClassifier() *RuleClassifier {
	return &RuleClassifier{vocabulary: defaultVocabulary}
}

// Classify implements Classifier.
func (c *RuleClassifier) Classify(_ context.Context, utterance string, history core.History) core.Role {
	lowered := strings.ToLower(utterance)

	matched := make(map[core.Role]bool)
	for role, terms := range c.vocabulary {
		for _, term := range terms {
			if strings.Contains(lowered, term) {
				matched[role] = true
				break
			}
		}
	}

	if len(matched) == 0 {
		return core.RoleFinish
	}

	// Sticky routing: a continuation stays with the role that answered last.
	if last := history.LastActiveRole(); last.Dispatchable() && matched[last] {
		return last
	}

	for _, role := range core.DispatchOrder {
		if matched[role] {
			return role
		}
	}

	return core.RoleFinish
}

// supervisorInstruction is the system prompt for model-backed routing. The
// protocol is deliberately narrow: one word in, one role out.
const supervisorInstruction = `You are a supervisor in a multi-agent voice assistant. Your role is to oversee a team of specialized agents and route user requests.
Based on the last user message, you must select the next agent to act from the available list or decide if the task is complete.

Available agents:
- ` + "`PRODUCTIVITY`" + `: For timers, alarms, countdowns and reminders.
- ` + "`MUSIC`" + `: For playing songs, controlling playback, radio stations and anything on Spotify or YouTube Music.
- ` + "`MEETING`" + `: For calendar events: creating, scheduling, listing, joining or cancelling meetings.
- ` + "`SYSTEM`" + `: For volume control, screenshots, and opening or closing applications.
- ` + "`BROWSER`" + `: For web search, weather, news, translation and other internet lookups.
- ` + "`FINISH`" + `: If the request has been fully answered or fits no agent.

Analyze the conversation and output *only* the name of the next agent to act.
Your response MUST BE exactly one word: PRODUCTIVITY, MUSIC, MEETING, SYSTEM, BROWSER, or FINISH.`

// ModelClassifierOptions configures a ModelClassifier.
type ModelClassifierOptions struct {
	Fallback Classifier
	Logger   logging.Logger
}

// ModelClassifier asks a planning model to pick the role. Any transport
// failure or unusable answer degrades to the fallback classifier so routing
// stays total.
type ModelClassifier struct {
	llm      model.Model
	fallback Classifier
	logger   logging.Logger
}

// NewModelClassifier creates a ModelClassifier. The fallback defaults to the
// rule-based classifier.
func NewModelClassifier(llm model.Model, optFns ...func(o *ModelClassifierOptions)) *ModelClassifier {
	opts := ModelClassifierOptions{
		Fallback: NewRuleClassifier(),
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &ModelClassifier{
		llm:      llm,
		fallback: opts.Fallback,
		logger:   logging.OrNoOp(opts.Logger),
	}
}

// Classify implements Classifier.
func (c *ModelClassifier) Classify(ctx context.Context, utterance string, history core.History) core.Role {
	messages := make([]model.Message, 0, len(history)*2+1)
	for _, turn := range history {
		messages = append(messages, model.NewUserMessage(turn.Utterance))
		if turn.Response != "" {
			messages = append(messages, model.NewAssistantMessage(turn.Response))
		}
	}
	messages = append(messages, model.NewUserMessage(utterance))

	decision, err := c.llm.Decide(ctx, model.Request{
		Instructions: supervisorInstruction,
		Messages:     messages,
	})
	if err != nil {
		c.logger.Warn("router.supervisor.error", "error", err.Error())
		return c.fallback.Classify(ctx, utterance, history)
	}

	return c.parse(ctx, decision.Text, utterance, history)
}

// parse turns the supervisor's answer into a role: exact word first, then a
// substring scan in dispatch priority, then the fallback classifier.
func (c *ModelClassifier) parse(ctx context.Context, answer, utterance string, history core.History) core.Role {
	trimmed := strings.TrimSpace(strings.Trim(strings.TrimSpace(answer), "`'\"."))

	if role := core.ParseRole(trimmed); role.Dispatchable() {
		return role
	}
	if strings.EqualFold(trimmed, string(core.RoleFinish)) {
		return core.RoleFinish
	}

	upper := strings.ToUpper(answer)
	for _, role := range core.DispatchOrder {
		if strings.Contains(upper, string(role)) {
			return role
		}
	}
	if strings.Contains(upper, string(core.RoleFinish)) {
		return core.RoleFinish
	}

	c.logger.Warn("router.supervisor.unusable", "answer", answer)
	return c.fallback.Classify(ctx, utterance, history)
}
