// Package tool implements the capability-calling subsystem that lets agents
// invoke structured tools (timers, playback control, system actions, side
// effects) with schema validated arguments, consistent error handling and rich
// metadata for planner guidance.
package tool

import (
	"fmt"

	"github.com/AsimAftab/Sentinel-AI-Desktop/internal/schema"
)

// Tool defines the interface for extending agent capabilities with external
// functions.
//
// Tools are registered once at startup and dispatched by name. Each tool
// declares a JSON schema for its arguments; the registry validates incoming
// arguments against that schema before the tool runs.
//
// Tool implementations should:
//   - Provide clear, descriptive names and descriptions
//   - Define proper JSON schema for parameters
//   - Handle errors gracefully
//   - Be thread-safe if used concurrently
//   - Declare SideEffecting truthfully, since the executor refuses to repeat
//     side-effecting tools within a turn
type Tool interface {
	// Name returns the unique identifier for this tool.
	// Names should be descriptive and follow snake_case conventions.
	Name() string

	// Description returns a human-readable description of what this tool does.
	// This description is provided to the planner to help it decide when and
	// how to use the tool.
	Description() string

	// Parameters returns a JSON schema describing the expected input format.
	// This schema is used for parameter validation and function calling.
	Parameters() map[string]any

	// SideEffecting reports whether calling this tool changes the outside
	// world (sends an invite, closes an application, mutes audio). The agent
	// executor invokes such tools at most once per turn.
	SideEffecting() bool

	// Call executes the tool with structured arguments and an invocation
	// Context. Arguments have already been validated against the tool's
	// schema when invoked through a Registry.
	Call(toolCtx *Context, args map[string]any) (any, error)
}

// ValidationError represents parameter validation errors with detailed information.
type ValidationError = schema.ValidationError

// Error codes attached to ToolError for categorization.
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeExecution  = "EXECUTION_ERROR"
)

// ToolError represents errors that occur during tool execution.
type ToolError struct {
	Tool    string `json:"tool"`              // Name of the tool that failed
	Message string `json:"message"`           // Error message
	Code    string `json:"code"`              // Error code for categorization
	Details any    `json:"details,omitempty"` // Additional error details
}

func (e *ToolError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("tool error [%s] in %s: %s", e.Code, e.Tool, e.Message)
	}
	return fmt.Sprintf("tool error in %s: %s", e.Tool, e.Message)
}

// Unwrap exposes a wrapped cause so errors.As can reach the underlying
// *ValidationError (or any other error) stored in Details.
func (e *ToolError) Unwrap() error {
	if err, ok := e.Details.(error); ok {
		return err
	}
	return nil
}

// NewToolError creates a new ToolError with the specified details.
func NewToolError(tool, message, code string) *ToolError {
	return &ToolError{
		Tool:    tool,
		Message: message,
		Code:    code,
	}
}

// DuplicateToolError is returned when a tool name is registered twice.
type DuplicateToolError struct {
	Name string
}

func (e *DuplicateToolError) Error() string {
	return fmt.Sprintf("tool %q is already registered", e.Name)
}
