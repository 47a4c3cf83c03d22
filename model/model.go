package model

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Message roles used in planner transcripts.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Message is one entry of the transcript sent to a planning model: a user
// utterance, an assistant turn (text or tool call) or a tool observation.
type Message struct {
	Role   string      `json:"role"`
	Text   string      `json:"text,omitempty"`
	Call   *ToolCall   `json:"call,omitempty"`
	Result *ToolResult `json:"result,omitempty"`
}

// NewUserMessage builds a user transcript entry.
func NewUserMessage(text string) Message {
	return Message{Role: RoleUser, Text: text}
}

// NewAssistantMessage builds an assistant text entry.
func NewAssistantMessage(text string) Message {
	return Message{Role: RoleAssistant, Text: text}
}

// NewAssistantCall builds an assistant entry carrying a tool call request.
func NewAssistantCall(call ToolCall) Message {
	return Message{Role: RoleAssistant, Call: &call}
}

// NewToolResultMessage builds a tool observation entry answering a prior call.
func NewToolResultMessage(result ToolResult) Message {
	return Message{Role: RoleTool, Result: &result}
}

// ToolCall represents a function call request surfaced by a model provider.
// Unified across vendors so downstream logic does not need per-provider
// branching.
type ToolCall struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"` // JSON object of arguments
}

// ArgumentsMap decodes the raw JSON arguments into a generic map. Empty or
// absent arguments decode to an empty map rather than an error.
func (c ToolCall) ArgumentsMap() (map[string]any, error) {
	if len(c.Arguments) == 0 {
		return map[string]any{}, nil
	}

	var args map[string]any
	if err := json.Unmarshal(c.Arguments, &args); err != nil {
		return nil, fmt.Errorf("decode tool arguments for %s: %w", c.Name, err)
	}
	if args == nil {
		args = map[string]any{}
	}
	return args, nil
}

// ToolResult carries a tool's outcome (success payload or error text) back to
// the model as an observation.
type ToolResult struct {
	CallID  string `json:"call_id"`
	Name    string `json:"name"`
	Content string `json:"content"`
	IsError bool   `json:"is_error,omitempty"`
}

// ToolDefinition declaratively exposes a callable function to the model.
type ToolDefinition struct {
	Type     string             `json:"type"` // "function"
	Function FunctionDefinition `json:"function"`
}

// FunctionDefinition describes an individual function (tool) exposed to the
// model. Parameters is a JSON Schema object (draft agnostic, minimal subset
// expected).
type FunctionDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"` // JSON Schema
}

// Request captures the normalized model input produced by the agent executor.
type Request struct {
	Instructions string           `json:"instructions"` // System prompt for the model
	Messages     []Message        `json:"messages"`
	Tools        []ToolDefinition `json:"tools,omitempty"`
}

// TokenUsage captures token usage statistics for a decision.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Decision is the outcome of one planning step: either final answer text or
// exactly one tool call, never both.
type Decision struct {
	Text         string      `json:"text,omitempty"`
	Call         *ToolCall   `json:"call,omitempty"`
	FinishReason string      `json:"finish_reason"` // "stop", "tool_call", "length", etc.
	Usage        *TokenUsage `json:"usage,omitempty"`
}

// IsToolCall reports whether the decision requests a tool invocation.
func (d *Decision) IsToolCall() bool { return d != nil && d.Call != nil }

// Info contains metadata about a model implementation.
type Info struct {
	Name          string `json:"name"`
	Provider      string `json:"provider"` // "openai", "anthropic", "mock", etc.
	SupportsTools bool   `json:"supports_tools"`
}

// Model is the minimal interface required by the router and agent executor to
// drive planning. Decide blocks until the provider returns a single decision.
type Model interface {
	Decide(ctx context.Context, req Request) (*Decision, error)

	// Info returns information about the model implementation.
	Info() Info
}

// MockModel is a lightweight in-memory Model useful for tests & examples.
//
// Decisions queued with Enqueue are returned first, in FIFO order. When the
// queue is empty the mock falls back to canned responses keyed by the last
// message text, then to a generic echo. All received requests are recorded
// for assertions.
type MockModel struct {
	mu        sync.Mutex
	info      Info
	queue     []Decision
	responses map[string]string
	requests  []Request
}

// NewMockModel constructs a MockModel with basic tool support enabled.
func NewMockModel(name, provider string) *MockModel {
	return &MockModel{
		info: Info{
			Name:          name,
			Provider:      provider,
			SupportsTools: true,
		},
		responses: make(map[string]string),
	}
}

// Enqueue appends a scripted decision returned by the next Decide call.
func (m *MockModel) Enqueue(d Decision) *MockModel {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.queue = append(m.queue, d)
	return m
}

// EnqueueText is shorthand for scripting a final text decision.
func (m *MockModel) EnqueueText(text string) *MockModel {
	return m.Enqueue(Decision{Text: text, FinishReason: "stop"})
}

// EnqueueCall is shorthand for scripting a tool call decision.
func (m *MockModel) EnqueueCall(id, name string, args string) *MockModel {
	return m.Enqueue(Decision{
		Call:         &ToolCall{ID: id, Name: name, Arguments: json.RawMessage(args)},
		FinishReason: "tool_call",
	})
}

// AddResponse registers a deterministic canned completion for an input text,
// used when the scripted queue is empty.
func (m *MockModel) AddResponse(input, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.responses[input] = response
}

// Requests returns a copy of every request received so far.
func (m *MockModel) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Request, len(m.requests))
	copy(out, m.requests)
	return out
}

// Decide implements Model.
func (m *MockModel) Decide(ctx context.Context, req Request) (*Decision, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)

	if len(m.queue) > 0 {
		d := m.queue[0]
		m.queue = m.queue[1:]
		return &d, nil
	}

	var lastText string
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Text != "" {
			lastText = req.Messages[i].Text
			break
		}
	}

	if canned, ok := m.responses[lastText]; ok {
		return &Decision{Text: canned, FinishReason: "stop"}, nil
	}

	return &Decision{
		Text:         fmt.Sprintf("Mock response to: %s", lastText),
		FinishReason: "stop",
	}, nil
}

// Info implements Model.
func (m *MockModel) Info() Info { return m.info }
