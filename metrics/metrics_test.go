package metrics

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNilCollectorIsNoOp(t *testing.T) {
	var c *Collector

	// None of these may panic on a nil receiver.
	c.SessionCompleted(3)
	c.TurnCompleted("MUSIC", time.Second, false)
	c.FollowUpDetected()
	c.ToolCall("set_timer", nil)
	c.ModelTokens("openai", 100, 20)
	c.IterationCapHit()
	c.EntryScheduled("TIMER")
	c.EntryFired("TIMER")
	c.EntryCancelled("ALARM")

	assert.NotNil(t, c.Handler())
}

func TestCollectorExposition(t *testing.T) {
	c := NewCollector()

	c.SessionCompleted(2)
	c.TurnCompleted("MEETING", 250*time.Millisecond, false)
	c.TurnCompleted("MEETING", time.Second, true)
	c.FollowUpDetected()
	c.ToolCall("create_instant_meeting", nil)
	c.ToolCall("web_search", assert.AnError)
	c.ModelTokens("anthropic", 120, 40)
	c.IterationCapHit()
	c.EntryScheduled("TIMER")
	c.EntryFired("TIMER")

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body := rec.Body.String()
	assert.Contains(t, body, `sentinel_session_completed_total 1`)
	assert.Contains(t, body, `sentinel_session_turns_total{role="MEETING",status="success"} 1`)
	assert.Contains(t, body, `sentinel_session_turns_total{role="MEETING",status="degraded"} 1`)
	assert.Contains(t, body, `sentinel_agent_tool_calls_total{status="error",tool="web_search"} 1`)
	assert.Contains(t, body, `sentinel_agent_model_tokens_total{kind="prompt",provider="anthropic"} 120`)
	assert.Contains(t, body, `sentinel_agent_iteration_cap_hits_total 1`)
	assert.Contains(t, body, `sentinel_scheduler_entries_total{kind="TIMER",outcome="fired"} 1`)
	assert.Contains(t, body, `sentinel_scheduler_active_entries{kind="TIMER"} 0`)
}
