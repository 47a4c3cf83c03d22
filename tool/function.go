package tool

import (
	"fmt"
	"time"

	"github.com/AsimAftab/Sentinel-AI-Desktop/internal/schema"
)

// FunctionTool is a generic adapter that exposes a plain Go function as a tool.
//
// Responsibilities:
//   - Holds a lightweight JSON-Schema-like parameter specification
//   - Validates supplied arguments against that schema before execution
//   - Invokes the wrapped function with a *Context giving access to the turn's
//     cancellation context, correlation IDs and logging
//   - Normalizes error handling so callers receive *ToolError with consistent
//     codes: VALIDATION_ERROR for schema mismatches, EXECUTION_ERROR for
//     failures of the underlying function (custom codes are preserved if the
//     function returns *ToolError directly)
//
// A FunctionTool has no internal mutable state after construction and is safe
// for concurrent use by multiple goroutines.
type FunctionTool struct {
	// Tool identifier (snake_case recommended)
	name string
	// Human-readable description shown to the planner
	description string
	// JSON schema describing accepted arguments
	parameters map[string]any
	// Whether calls change the outside world
	sideEffecting bool
	// User supplied implementation
	fn func(toolCtx *Context, args map[string]any) (any, error)
}

// FunctionToolOption customizes a FunctionTool during construction.
type FunctionToolOption func(*FunctionTool)

// WithSideEffect marks the tool as side-effecting. The agent executor will
// invoke it at most once per turn and refuse automatic repeats.
func WithSideEffect() FunctionToolOption {
	return func(t *FunctionTool) { t.sideEffecting = true }
}

// NewFunctionTool constructs a FunctionTool from explicit schema and function.
//
// Example:
//
//	muteTool := NewFunctionTool(
//	  "mute_audio",
//	  "Mute the system audio output",
//	  map[string]any{
//	    "type":       "object",
//	    "properties": map[string]any{},
//	  },
//	  func(tc *Context, args map[string]any) (any, error) {
//	    return "Audio muted.", controller.Mute(tc.Context())
//	  },
//	  WithSideEffect(),
//	)
func NewFunctionTool(
	name, description string,
	parameters map[string]any,
	fn func(toolCtx *Context, args map[string]any) (any, error),
	opts ...FunctionToolOption,
) *FunctionTool {
	t := &FunctionTool{
		name:        name,
		description: description,
		parameters:  parameters,
		fn:          fn,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// NewFunctionToolFromStruct derives the parameter schema from a struct using
// reflection. It is a convenience for simple argument containers and produces
// a schema equivalent to schema.FromStruct(structType).
//
// Example:
//
//	type TimerArgs struct {
//	  Minutes int    `json:"duration_minutes" description:"Countdown length" minimum:"1" maximum:"480"`
//	  Name    string `json:"name" description:"Display name for the timer"`
//	}
//
//	timerTool := NewFunctionToolFromStruct(
//	  "set_timer",
//	  "Start a countdown timer",
//	  TimerArgs{},
//	  func(tc *Context, args map[string]any) (any, error) { ... },
//	)
func NewFunctionToolFromStruct(
	name, description string,
	structType any,
	fn func(toolCtx *Context, args map[string]any) (any, error),
	opts ...FunctionToolOption,
) *FunctionTool {
	return NewFunctionTool(name, description, schema.FromStruct(structType), fn, opts...)
}

// Name returns the unique tool name used in function call declarations and routing.
func (t *FunctionTool) Name() string { return t.name }

// Description returns the short natural language description exposed to the planner.
func (t *FunctionTool) Description() string { return t.description }

// Parameters returns the (minimal) JSON schema describing expected arguments.
func (t *FunctionTool) Parameters() map[string]any { return t.parameters }

// SideEffecting reports whether the tool was constructed with WithSideEffect.
func (t *FunctionTool) SideEffecting() bool { return t.sideEffecting }

// Call validates the provided args against the declared schema then invokes
// the underlying function. Validation or execution failures are wrapped (or
// passed through) as *ToolError for uniform downstream handling.
//
// Error Semantics:
//
//	*ToolError (returned directly)  -> forwarded unchanged
//	validation failure              -> *ToolError{Code: "VALIDATION_ERROR"}
//	other error                     -> *ToolError{Code: "EXECUTION_ERROR"}
func (t *FunctionTool) Call(toolCtx *Context, args map[string]any) (any, error) {
	logger := toolCtx.Logger()
	start := time.Now()

	logger.Debug("tool.call.start", "tool", t.name, "call_id", toolCtx.CallID())

	if err := schema.Validate(args, t.parameters); err != nil {
		logger.Warn("tool.call.validation_failed", "tool", t.name, "error", err.Error())

		return nil, &ToolError{
			Tool:    t.name,
			Message: fmt.Sprintf("parameter validation failed: %v", err),
			Code:    CodeValidation,
			Details: err,
		}
	}

	result, err := t.fn(toolCtx, args)
	if err != nil {
		if toolErr, ok := err.(*ToolError); ok { // Already a ToolError -> just log and forward
			logger.Error("tool.call.error", "tool", t.name, "error", toolErr.Message)

			return nil, toolErr
		}

		logger.Error("tool.call.error", "tool", t.name, "error", err.Error())

		return nil, &ToolError{
			Tool:    t.name,
			Message: err.Error(),
			Code:    CodeExecution,
			Details: err,
		}
	}

	logger.Info("tool.call.success", "tool", t.name, "duration_ms", time.Since(start).Milliseconds())

	return result, nil
}
