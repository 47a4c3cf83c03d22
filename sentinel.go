// Package sentinel provides a high-level façade over the voice-session
// orchestration engine: the wake-word gated conversation state machine, the
// supervisor router, one bounded tool-calling executor per agent role and the
// built-in tool catalogs. Most applications interact with this package by:
//  1. Creating an Assistant via New() with their voice endpoints and tool backends
//  2. Calling Run() to serve wake-gated sessions until the context ends,
//     or RunSession() once per push-to-talk activation
//  3. Observing progress through the lifecycle Listener and the metrics collector
//
// The façade delegates dialogue control to conversation.Machine while keeping
// setup ergonomics concise. Every collaborator beyond the recognizer and the
// speaker is optional: roles without a backend answer with a clarification,
// and timers, alarms and routing work out of the box.
package sentinel

import (
	"context"
	"fmt"
	"strings"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"

	"github.com/AsimAftab/Sentinel-AI-Desktop/agent"
	"github.com/AsimAftab/Sentinel-AI-Desktop/automation"
	"github.com/AsimAftab/Sentinel-AI-Desktop/config"
	"github.com/AsimAftab/Sentinel-AI-Desktop/conversation"
	"github.com/AsimAftab/Sentinel-AI-Desktop/core"
	"github.com/AsimAftab/Sentinel-AI-Desktop/logging"
	"github.com/AsimAftab/Sentinel-AI-Desktop/metrics"
	"github.com/AsimAftab/Sentinel-AI-Desktop/model"
	anthropicmodel "github.com/AsimAftab/Sentinel-AI-Desktop/model/anthropic"
	openaimodel "github.com/AsimAftab/Sentinel-AI-Desktop/model/openai"
	"github.com/AsimAftab/Sentinel-AI-Desktop/router"
	"github.com/AsimAftab/Sentinel-AI-Desktop/scheduler"
	"github.com/AsimAftab/Sentinel-AI-Desktop/tool"
	"github.com/AsimAftab/Sentinel-AI-Desktop/voice"
)

// Options configures the Assistant instance.
type Options struct {
	// Config carries the dialogue bounds, executor budget, model selection
	// and metrics switch. Nil means config.Default().
	Config *config.Config

	// Model plans agent turns and backs the supervisor classifier. Nil builds
	// a provider from Config.Model (anthropic, openai or mock).
	Model model.Model

	// Classifier overrides intent routing. Nil uses a ModelClassifier over
	// Model with the rule-based classifier as fallback.
	Classifier router.Classifier

	// Wake blocks until the wake word is heard. Required for Run; RunSession
	// works without it.
	Wake voice.WakeListener

	// Tool backends. A nil backend leaves its role unregistered; requests
	// routed there receive a clarification reply instead of failing.
	Player   tool.Player
	System   tool.SystemController
	Calendar tool.Calendar
	Web      tool.Web

	// AutomationRuntime starts the shared browser session behind the music
	// tools. Without it, music tools report the session as unavailable.
	AutomationRuntime automation.Runtime

	// Notifier announces timer and alarm fires. Nil announces them through
	// the Speaker; implementations must tolerate calls from timer goroutines
	// while a session is speaking.
	Notifier scheduler.Notifier

	// Listener receives lifecycle events (wake, capture, processing,
	// speaking, follow-up, end).
	Listener Listener

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger

	// Metrics defaults to a fresh collector when Config.Metrics.Enabled,
	// otherwise stays nil. All components accept a nil collector.
	Metrics *metrics.Collector
}

// Assistant is the high-level façade aggregating the dialogue machine, the
// router and the shared background services.
type Assistant struct {
	cfg     *config.Config
	machine *conversation.Machine
	router  *router.Router
	sched   *scheduler.Scheduler
	auto    *automation.Manager
	metrics *metrics.Collector
	logger  logging.Logger
}

// New creates an Assistant over the given voice endpoints with optional
// overrides. Unset collaborators get safe defaults; PRODUCTIVITY is always
// available, the other roles follow their configured backends.
func New(recognizer voice.Recognizer, speaker voice.Speaker, optFns ...func(o *Options)) *Assistant {
	opts := Options{
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	logger := logging.OrNoOp(opts.Logger)

	collector := opts.Metrics
	if collector == nil && cfg.Metrics.Enabled {
		collector = metrics.NewCollector()
	}

	llm := opts.Model
	if llm == nil {
		llm = newModelFromConfig(cfg.Model)
	}

	notifier := opts.Notifier
	if notifier == nil {
		notifier = announceFires(speaker)
	}

	sched := scheduler.New(notifier, func(o *scheduler.Options) {
		o.Logger = logger
		o.Metrics = collector
	})

	runtime := opts.AutomationRuntime
	if runtime == nil {
		runtime = automation.RuntimeFunc(func(context.Context) (automation.Handle, error) {
			return nil, fmt.Errorf("no automation runtime configured")
		})
	}
	auto := automation.NewManager(runtime, func(o *automation.Options) {
		o.Logger = logger
	})

	executors := buildExecutors(cfg, llm, logger, collector, catalogs{
		scheduler: sched,
		auto:      auto,
		player:    opts.Player,
		system:    opts.System,
		calendar:  opts.Calendar,
		web:       opts.Web,
	})

	classifier := opts.Classifier
	if classifier == nil {
		classifier = router.NewModelClassifier(llm, func(o *router.ModelClassifierOptions) {
			o.Logger = logger
		})
	}

	rtr := router.New(executors, func(o *router.Options) {
		o.Classifier = classifier
		o.Logger = logger
		o.Metrics = collector
	})

	machine := conversation.NewMachine(rtr, recognizer, speaker, func(o *conversation.Options) {
		o.Config = conversation.Config{
			MaxTurns:              cfg.Conversation.MaxTurns,
			InitialListenTimeout:  cfg.Conversation.InitialListenTimeout,
			InitialPhraseLimit:    cfg.Conversation.InitialPhraseLimit,
			FollowUpListenTimeout: cfg.Conversation.FollowUpListenTimeout,
			FollowUpPhraseLimit:   cfg.Conversation.FollowUpPhraseLimit,
		}
		o.Wake = opts.Wake
		o.Listener = opts.Listener
		o.Logger = logger
		o.Metrics = collector
	})

	return &Assistant{
		cfg:     cfg,
		machine: machine,
		router:  rtr,
		sched:   sched,
		auto:    auto,
		metrics: collector,
		logger:  logger,
	}
}

// Run serves wake-gated dialogue sessions until ctx ends. It returns
// conversation.ErrNoWakeListener when no wake listener was configured.
func (a *Assistant) Run(ctx context.Context) error {
	return a.machine.Run(ctx)
}

// RunSession drives a single dialogue session, as if the wake word had just
// been detected, and returns the finished session.
func (a *Assistant) RunSession(ctx context.Context) (*conversation.Session, error) {
	return a.machine.RunSession(ctx)
}

// Router exposes the intent router, mainly for wiring inspection.
func (a *Assistant) Router() *router.Router { return a.router }

// Scheduler exposes the shared timer/alarm scheduler. Timers outlive the
// sessions that created them, so hosts may want to list or cancel them
// outside a dialogue.
func (a *Assistant) Scheduler() *scheduler.Scheduler { return a.sched }

// Automation exposes the shared browser-automation manager, e.g. for showing
// session status or closing it on shutdown.
func (a *Assistant) Automation() *automation.Manager { return a.auto }

// Metrics returns the collector wired through all components, or nil when
// metrics are disabled. Its Handler() serves the Prometheus endpoint.
func (a *Assistant) Metrics() *metrics.Collector { return a.metrics }

// catalogs bundles the backends the built-in tool sets are built over.
type catalogs struct {
	scheduler *scheduler.Scheduler
	auto      *automation.Manager
	player    tool.Player
	system    tool.SystemController
	calendar  tool.Calendar
	web       tool.Web
}

// buildExecutors creates one executor per role that has a backend. The
// productivity role is always present since the scheduler is built in.
func buildExecutors(
	cfg *config.Config,
	llm model.Model,
	logger logging.Logger,
	collector *metrics.Collector,
	c catalogs,
) []*agent.Executor {
	newExecutor := func(role core.Role, tools []tool.Tool) *agent.Executor {
		return agent.New(strings.ToLower(role.String()), role, llm, tool.MustRegistry(tools...),
			func(o *agent.Options) {
				o.MaxIterations = cfg.Agent.MaxIterations
				o.Instruction = roleInstruction(role, cfg.Assistant.Name)
				o.Logger = logger
				o.Metrics = collector
			})
	}

	executors := []*agent.Executor{
		newExecutor(core.RoleProductivity, tool.NewProductivityTools(c.scheduler)),
	}
	if c.player != nil {
		executors = append(executors, newExecutor(core.RoleMusic, tool.NewMusicTools(c.auto, c.player)))
	}
	if c.system != nil {
		executors = append(executors, newExecutor(core.RoleSystem, tool.NewSystemTools(c.system)))
	}
	if c.calendar != nil {
		executors = append(executors, newExecutor(core.RoleMeeting, tool.NewMeetingTools(c.calendar)))
	}
	if c.web != nil {
		executors = append(executors, newExecutor(core.RoleBrowser, tool.NewBrowserTools(c.web)))
	}

	return executors
}

// roleGuidance holds the per-role half of the executor instructions.
var roleGuidance = map[core.Role]string{
	core.RoleProductivity: "You manage timers and alarms. Confirm every timer or alarm you set, including its id and when it fires.",
	core.RoleMusic:        "You control music playback in the shared browser session. Confirm what is playing after each action.",
	core.RoleMeeting:      "You manage the user's calendar. Read dates and times back in a natural spoken form.",
	core.RoleSystem:       "You control this machine: volume, applications and screenshots. Confirm each action briefly.",
	core.RoleBrowser:      "You answer questions using web search, weather, news and translation tools. Summarize findings in one or two sentences.",
}

// roleInstruction builds the spoken-assistant system prompt for one role.
func roleInstruction(role core.Role, assistantName string) agent.Instruction {
	if assistantName == "" {
		assistantName = "Sentinel"
	}

	return agent.NewInstructionFromText(fmt.Sprintf(
		"You are the %s agent of %s, a voice assistant. Use the available tools to help the user. %s Your answers are spoken aloud: keep them short and use plain text without markdown or emoji.",
		role, assistantName, roleGuidance[role]))
}

// announceFires adapts a Speaker into the scheduler's fire notifier, matching
// the spoken notifications of the desktop assistant ("TIMER Tea: Time's up!").
func announceFires(speaker voice.Speaker) scheduler.NotifierFunc {
	return func(ctx context.Context, kind scheduler.Kind, name, details string) error {
		text := fmt.Sprintf("%s %s: Time's up!", kind, name)
		if kind == scheduler.KindAlarm {
			text = fmt.Sprintf("%s %s: It's %s!", kind, name, details)
		}
		return speaker.Speak(ctx, voice.CleanForSpeech(text))
	}
}

// newModelFromConfig builds the configured planner provider. Unknown provider
// names fall back to anthropic; "mock" yields a scripted in-memory model for
// development and tests.
func newModelFromConfig(cfg config.ModelConfig) model.Model {
	switch strings.ToLower(cfg.Provider) {
	case "mock":
		return model.NewMockModel("mock-planner", "mock")

	case "openai":
		return openaimodel.NewModel(func(o *openaimodel.Options) {
			if cfg.Name != "" {
				o.Model = cfg.Name
			}
			if cfg.Temperature > 0 {
				o.Temperature = cfg.Temperature
			}
			if cfg.MaxTokens > 0 {
				o.MaxCompletionTokens = cfg.MaxTokens
			}
		})

	default:
		return anthropicmodel.NewModel(func(o *anthropicmodel.Options) {
			if cfg.Name != "" {
				o.Model = anthropicsdk.Model(cfg.Name)
			}
			if cfg.Temperature > 0 {
				o.Temperature = cfg.Temperature
			}
			if cfg.MaxTokens > 0 {
				o.MaxTokens = cfg.MaxTokens
			}
			o.APIKey = cfg.APIKey
		})
	}
}
