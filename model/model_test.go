package model

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

// ---------------------------------------------------------------------------
// ToolCall
// ---------------------------------------------------------------------------

func TestToolCallArgumentsMap(t *testing.T) {
	call := ToolCall{
		Name:      "set_timer",
		Arguments: json.RawMessage(`{"duration_minutes": 5, "name": "Tea"}`),
	}

	args, err := call.ArgumentsMap()
	assert.NoError(t, err)
	assert.Equal(t, float64(5), args["duration_minutes"])
	assert.Equal(t, "Tea", args["name"])
}

func TestToolCallArgumentsMapEmpty(t *testing.T) {
	args, err := ToolCall{Name: "list_timers"}.ArgumentsMap()
	assert.NoError(t, err)
	assert.NotNil(t, args)
	assert.Empty(t, args)

	args, err = ToolCall{Name: "list_timers", Arguments: json.RawMessage(`null`)}.ArgumentsMap()
	assert.NoError(t, err)
	assert.NotNil(t, args)
}

func TestToolCallArgumentsMapMalformed(t *testing.T) {
	_, err := ToolCall{Name: "x", Arguments: json.RawMessage(`{broken`)}.ArgumentsMap()
	assert.Error(t, err)
}

// ---------------------------------------------------------------------------
// Decision
// ---------------------------------------------------------------------------

func TestDecisionIsToolCall(t *testing.T) {
	var nilDecision *Decision
	assert.False(t, nilDecision.IsToolCall())
	assert.False(t, (&Decision{Text: "done"}).IsToolCall())
	assert.True(t, (&Decision{Call: &ToolCall{Name: "set_timer"}}).IsToolCall())
}

// ---------------------------------------------------------------------------
// MockModel
// ---------------------------------------------------------------------------

func TestMockModelScriptedQueue(t *testing.T) {
	m := NewMockModel("test-model", "mock").
		EnqueueCall("call-1", "set_timer", `{"duration_minutes": 5, "name": "Tea"}`).
		EnqueueText("Timer set for 5 minutes.")

	d1, err := m.Decide(context.Background(), Request{Messages: []Message{NewUserMessage("set a timer")}})
	assert.NoError(t, err)
	assert.True(t, d1.IsToolCall())
	assert.Equal(t, "set_timer", d1.Call.Name)

	d2, err := m.Decide(context.Background(), Request{Messages: []Message{NewUserMessage("set a timer")}})
	assert.NoError(t, err)
	assert.False(t, d2.IsToolCall())
	assert.Equal(t, "Timer set for 5 minutes.", d2.Text)

	assert.Len(t, m.Requests(), 2)
}

func TestMockModelCannedFallback(t *testing.T) {
	m := NewMockModel("test-model", "mock")
	m.AddResponse("hello", "Hi there!")

	d, err := m.Decide(context.Background(), Request{Messages: []Message{NewUserMessage("hello")}})
	assert.NoError(t, err)
	assert.Equal(t, "Hi there!", d.Text)

	d, err = m.Decide(context.Background(), Request{Messages: []Message{NewUserMessage("unknown")}})
	assert.NoError(t, err)
	assert.Equal(t, "Mock response to: unknown", d.Text)
}

func TestMockModelContextCancelled(t *testing.T) {
	m := NewMockModel("test-model", "mock")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Decide(ctx, Request{Messages: []Message{NewUserMessage("hello")}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMockModelInfo(t *testing.T) {
	info := NewMockModel("test-model", "mock").Info()
	assert.Equal(t, "test-model", info.Name)
	assert.Equal(t, "mock", info.Provider)
	assert.True(t, info.SupportsTools)
}
