package tool

import (
	"fmt"
	"sync"

	"github.com/AsimAftab/Sentinel-AI-Desktop/internal/schema"
)

// Registry is a closed catalog of tools keyed by name. Registration happens
// once at startup; afterwards the registry is read-mostly and safe for
// concurrent lookup and invocation.
//
// Invoke is the single dispatch path used by the agent executor: it rejects
// unknown names, validates arguments against the tool's declared schema and
// contains panics from tool implementations so a misbehaving tool cannot take
// down the dialogue loop.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
	order []string
}

// NewRegistry creates an empty tool registry.
func NewRegistry(tools ...Tool) (*Registry, error) {
	r := &Registry{tools: make(map[string]Tool)}
	for _, t := range tools {
		if err := r.Register(t); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// MustRegistry is like NewRegistry but panics on duplicate names. Intended for
// static catalogs assembled at process start, where a duplicate is a
// programming error.
func MustRegistry(tools ...Tool) *Registry {
	r, err := NewRegistry(tools...)
	if err != nil {
		panic(err)
	}
	return r
}

// Register adds a tool to the catalog. It returns *DuplicateToolError if a
// tool with the same name is already present.
func (r *Registry) Register(t Tool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := t.Name()
	if _, exists := r.tools[name]; exists {
		return &DuplicateToolError{Name: name}
	}

	r.tools[name] = t
	r.order = append(r.order, name)

	return nil
}

// Get returns the tool registered under name.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tools[name]
	return t, ok
}

// Names returns tool names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Tools returns the registered tools in registration order.
func (r *Registry) Tools() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// Len reports the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.tools)
}

// Invoke validates args against the named tool's schema and executes it.
//
// Error Semantics:
//
//	unknown name        -> *ToolError{Code: "VALIDATION_ERROR"}
//	schema violation    -> *ToolError{Code: "VALIDATION_ERROR"} wrapping *ValidationError
//	tool panic          -> *ToolError{Code: "EXECUTION_ERROR"}
//	tool returned error -> *ToolError (Call wraps non-ToolError causes)
func (r *Registry) Invoke(toolCtx *Context, name string, args map[string]any) (result any, err error) {
	t, ok := r.Get(name)
	if !ok {
		return nil, &ToolError{
			Tool:    name,
			Message: fmt.Sprintf("unknown tool %q", name),
			Code:    CodeValidation,
			Details: &ValidationError{Field: "tool_name", Value: name, Message: "no tool registered under this name"},
		}
	}

	if verr := schema.Validate(args, t.Parameters()); verr != nil {
		return nil, &ToolError{
			Tool:    name,
			Message: fmt.Sprintf("parameter validation failed: %v", verr),
			Code:    CodeValidation,
			Details: verr,
		}
	}

	// A panicking tool must not corrupt the dialogue loop; convert it to a
	// typed error observation instead.
	defer func() {
		if rec := recover(); rec != nil {
			toolCtx.Logger().Error("tool.call.panic", "tool", name, "panic", fmt.Sprintf("%v", rec))

			result = nil
			err = &ToolError{
				Tool:    name,
				Message: fmt.Sprintf("tool panicked: %v", rec),
				Code:    CodeExecution,
			}
		}
	}()

	return t.Call(toolCtx, args)
}
