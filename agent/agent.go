// Package agent implements the bounded think/act/observe executor that turns
// a routed utterance into tool invocations and a final spoken answer.
//
// Each Execute call runs at most MaxIterations planning steps. A step either
// produces final text (ending the turn) or exactly one tool call whose result
// is fed back as an observation. Validation failures loop back so the planner
// can correct its arguments; execution failures end the turn with a
// user-visible message; exhausting the budget degrades to a best-effort
// answer. None of these conditions is fatal to the session.
package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/AsimAftab/Sentinel-AI-Desktop/core"
	"github.com/AsimAftab/Sentinel-AI-Desktop/logging"
	"github.com/AsimAftab/Sentinel-AI-Desktop/metrics"
	"github.com/AsimAftab/Sentinel-AI-Desktop/model"
	"github.com/AsimAftab/Sentinel-AI-Desktop/tool"
)

// DefaultMaxIterations bounds the think/act cycles of one turn.
const DefaultMaxIterations = 6

// Invocation records one executed tool call for observability and tests.
type Invocation struct {
	Tool          string
	Args          map[string]any
	Result        any
	Err           error
	SideEffecting bool
}

// Result is the outcome of one executed turn.
type Result struct {
	Text        string
	Role        core.Role
	Degraded    bool
	Iterations  int
	Invocations []Invocation
}

// Options configures an Executor.
type Options struct {
	MaxIterations int
	Instruction   Instruction
	Logger        logging.Logger
	Metrics       *metrics.Collector
}

// Executor binds one agent role to a model, an instruction and a tool subset.
type Executor struct {
	name          string
	role          core.Role
	llm           model.Model
	instruction   Instruction
	registry      *tool.Registry
	maxIterations int
	logger        logging.Logger
	metrics       *metrics.Collector
}

// New creates an Executor for the given role over the given tool registry.
func New(name string, role core.Role, llm model.Model, registry *tool.Registry, optFns ...func(o *Options)) *Executor {
	opts := Options{
		MaxIterations: DefaultMaxIterations,
		Instruction:   NewInstructionFromText(fmt.Sprintf("You are %s, a helpful voice assistant agent.", name)),
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.MaxIterations < 1 {
		opts.MaxIterations = DefaultMaxIterations
	}

	return &Executor{
		name:          name,
		role:          role,
		llm:           llm,
		instruction:   opts.Instruction,
		registry:      registry,
		maxIterations: opts.MaxIterations,
		logger:        logging.OrNoOp(opts.Logger),
		metrics:       opts.Metrics,
	}
}

// Name returns the executor's human-readable name.
func (e *Executor) Name() string { return e.name }

// Role returns the agent role this executor serves.
func (e *Executor) Role() core.Role { return e.role }

// Tools exposes the underlying registry, mainly for wiring inspection.
func (e *Executor) Tools() *tool.Registry { return e.registry }

// Execute resolves utterance into a final answer for this executor's role.
// The returned error covers planner transport failures only; every tool-level
// condition is folded into the Result.
func (e *Executor) Execute(ctx context.Context, sessionID, utterance string) (*Result, error) {
	instruction, err := e.instruction.Resolve(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve instruction for %s: %w", e.name, err)
	}

	messages := []model.Message{model.NewUserMessage(utterance)}
	definitions := e.definitions()
	result := &Result{Role: e.role}

	// Side-effecting tools run at most once per turn, tracked by name.
	sideEffectsDone := make(map[string]bool)

	start := time.Now()
	e.logger.Debug("agent.execute.start", "agent", e.name, "session_id", sessionID)

	for iteration := 1; iteration <= e.maxIterations; iteration++ {
		result.Iterations = iteration

		decision, err := e.llm.Decide(ctx, model.Request{
			Instructions: instruction,
			Messages:     messages,
			Tools:        definitions,
		})
		if err != nil {
			return nil, fmt.Errorf("planning step %d for %s: %w", iteration, e.name, err)
		}

		if decision.Usage != nil {
			e.metrics.ModelTokens(e.llm.Info().Provider, decision.Usage.PromptTokens, decision.Usage.CompletionTokens)
		}

		if !decision.IsToolCall() {
			result.Text = decision.Text
			if result.Text == "" {
				result.Text = "Done."
			}
			e.logger.Info("agent.execute.final",
				"agent", e.name, "iterations", iteration, "duration_ms", time.Since(start).Milliseconds())
			return result, nil
		}

		call := *decision.Call
		messages = append(messages, model.NewAssistantCall(call))
		messages = append(messages, e.step(ctx, sessionID, call, sideEffectsDone, result))

		if result.Text != "" {
			// A tool execution failure became the turn's final message.
			return result, nil
		}
	}

	e.metrics.IterationCapHit()
	e.logger.Warn("agent.iteration_cap",
		"agent", e.name, "session_id", sessionID, "max_iterations", e.maxIterations)

	result.Degraded = true
	result.Text = e.degradedAnswer(messages)
	return result, nil
}

// step performs one tool call and returns the observation message appended to
// the transcript. When the call fails in a way that is fatal to the turn, the
// final user-visible text is written into result.Text instead.
func (e *Executor) step(
	ctx context.Context,
	sessionID string,
	call model.ToolCall,
	sideEffectsDone map[string]bool,
	result *Result,
) model.Message {
	if t, ok := e.registry.Get(call.Name); ok && t.SideEffecting() && sideEffectsDone[call.Name] {
		e.logger.Warn("agent.side_effect.refused", "agent", e.name, "tool", call.Name)
		return observation(call, fmt.Sprintf(
			"Tool %q already ran in this turn and has side effects; it will not run again. Use its earlier result.",
			call.Name), true)
	}

	args, err := call.ArgumentsMap()
	if err != nil {
		return observation(call, fmt.Sprintf("tool arguments were not valid JSON: %v", err), true)
	}

	toolCtx := tool.NewContext(ctx, sessionID, call.ID, e.logger)
	value, invokeErr := e.registry.Invoke(toolCtx, call.Name, args)

	e.metrics.ToolCall(call.Name, invokeErr)

	invocation := Invocation{Tool: call.Name, Args: args, Result: value, Err: invokeErr}
	if t, ok := e.registry.Get(call.Name); ok {
		invocation.SideEffecting = t.SideEffecting()
	}
	result.Invocations = append(result.Invocations, invocation)

	if invokeErr != nil {
		var toolErr *tool.ToolError
		if errors.As(invokeErr, &toolErr) && toolErr.Code == tool.CodeValidation {
			// Recoverable: the planner may retry with corrected arguments.
			return observation(call, toolErr.Error(), true)
		}

		// External failure ends the turn with a spoken message; the session
		// itself continues.
		e.logger.Error("agent.tool.failed", "agent", e.name, "tool", call.Name, "error", invokeErr.Error())
		result.Text = fmt.Sprintf("I couldn't complete that: %s.", toolFailureText(invokeErr))
		return observation(call, invokeErr.Error(), true)
	}

	if invocation.SideEffecting {
		sideEffectsDone[call.Name] = true
	}

	return observation(call, stringify(value), false)
}

// degradedAnswer builds the best-effort reply used when the iteration budget
// runs out: the last successful observation if one exists, otherwise an
// apology.
func (e *Executor) degradedAnswer(messages []model.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		r := messages[i].Result
		if r != nil && !r.IsError && r.Content != "" {
			return fmt.Sprintf("I couldn't fully finish that request. The last thing I found: %s", r.Content)
		}
	}
	return "I couldn't finish working on that request. Could you try rephrasing it?"
}

func (e *Executor) definitions() []model.ToolDefinition {
	tools := e.registry.Tools()
	defs := make([]model.ToolDefinition, len(tools))
	for i, t := range tools {
		defs[i] = model.ToolDefinition{
			Type: "function",
			Function: model.FunctionDefinition{
				Name:        t.Name(),
				Description: t.Description(),
				Parameters:  t.Parameters(),
			},
		}
	}
	return defs
}

func observation(call model.ToolCall, content string, isErr bool) model.Message {
	return model.NewToolResultMessage(model.ToolResult{
		CallID:  call.ID,
		Name:    call.Name,
		Content: content,
		IsError: isErr,
	})
}

// toolFailureText extracts the human part of a tool failure for speech.
func toolFailureText(err error) string {
	var toolErr *tool.ToolError
	if errors.As(err, &toolErr) {
		return toolErr.Message
	}
	return err.Error()
}

// stringify renders a tool result as observation text.
func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return "ok"
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		if raw, err := json.Marshal(v); err == nil {
			return string(raw)
		}
		return fmt.Sprintf("%v", v)
	}
}
