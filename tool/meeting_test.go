package tool

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCalendar struct {
	meetings []Meeting

	createdTitle   string
	createdMinutes int

	scheduledStart     time.Time
	scheduledMinutes   int
	scheduledAttendees []string

	upcomingMax int
	joinedCode  string
}

func (c *fakeCalendar) CreateInstant(_ context.Context, title string, minutes int) (Meeting, error) {
	c.createdTitle = title
	c.createdMinutes = minutes
	return Meeting{
		ID:    "m-1",
		Title: title,
		Start: time.Now(),
		Link:  "https://meet.google.com/abc-defg-hij",
	}, nil
}

func (c *fakeCalendar) Schedule(_ context.Context, title string, start time.Time, minutes int, attendees []string) (Meeting, error) {
	c.scheduledStart = start
	c.scheduledMinutes = minutes
	c.scheduledAttendees = attendees
	return Meeting{ID: "m-2", Title: title, Start: start, End: start.Add(time.Duration(minutes) * time.Minute)}, nil
}

func (c *fakeCalendar) Upcoming(_ context.Context, max int) ([]Meeting, error) {
	c.upcomingMax = max
	if len(c.meetings) > max {
		return c.meetings[:max], nil
	}
	return c.meetings, nil
}

func (c *fakeCalendar) Next(context.Context) (*Meeting, error) {
	if len(c.meetings) == 0 {
		return nil, nil
	}
	return &c.meetings[0], nil
}

func (c *fakeCalendar) Join(_ context.Context, code string) (string, error) {
	c.joinedCode = code
	return "https://meet.google.com/" + code, nil
}

func (c *fakeCalendar) CancelNext(context.Context) (*Meeting, error) {
	if len(c.meetings) == 0 {
		return nil, nil
	}
	m := c.meetings[0]
	c.meetings = c.meetings[1:]
	return &m, nil
}

func newMeetingFixture(t *testing.T) (*Registry, *fakeCalendar) {
	t.Helper()

	c := &fakeCalendar{}
	r, err := NewRegistry(NewMeetingTools(c)...)
	require.NoError(t, err)
	return r, c
}

// ---

func TestCreateInstantMeetingDefaults(t *testing.T) {
	r, c := newMeetingFixture(t)

	result, err := r.Invoke(newTestContext(), "create_instant_meeting", map[string]any{})

	require.NoError(t, err)
	assert.Equal(t, `Created "Quick Meeting" starting now. Join link: https://meet.google.com/abc-defg-hij`, result)
	assert.Equal(t, "Quick Meeting", c.createdTitle)
	assert.Equal(t, 60, c.createdMinutes)
}

func TestScheduleMeeting(t *testing.T) {
	r, c := newMeetingFixture(t)

	result, err := r.Invoke(newTestContext(), "schedule_meeting", map[string]any{
		"title":      "Planning",
		"start_time": "2025-12-01 14:30",
		"attendees":  " alice@example.com , bob@example.com ",
	})

	require.NoError(t, err)
	assert.Equal(t, `Scheduled "Planning" for Monday, December 1 at 2:30 PM. Invited 2 attendees.`, result)
	assert.Equal(t, []string{"alice@example.com", "bob@example.com"}, c.scheduledAttendees)
	assert.Equal(t, 60, c.scheduledMinutes)
	assert.Equal(t, time.Date(2025, time.December, 1, 14, 30, 0, 0, time.Local), c.scheduledStart)
}

func TestScheduleMeetingWithoutAttendees(t *testing.T) {
	r, _ := newMeetingFixture(t)

	result, err := r.Invoke(newTestContext(), "schedule_meeting", map[string]any{
		"title":      "1:1",
		"start_time": "2025-12-01 09:00",
	})

	require.NoError(t, err)
	assert.Equal(t, `Scheduled "1:1" for Monday, December 1 at 9:00 AM.`, result)
}

func TestScheduleMeetingBadStartTime(t *testing.T) {
	r, _ := newMeetingFixture(t)

	_, err := r.Invoke(newTestContext(), "schedule_meeting", map[string]any{
		"title":      "Planning",
		"start_time": "next tuesday at noon",
	})

	var toolErr *ToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, CodeExecution, toolErr.Code)
	assert.Contains(t, toolErr.Message, "YYYY-MM-DD HH:MM")
}

func TestScheduleMeetingRequiresStartTime(t *testing.T) {
	r, _ := newMeetingFixture(t)

	_, err := r.Invoke(newTestContext(), "schedule_meeting", map[string]any{
		"title": "Planning",
	})

	var toolErr *ToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, CodeValidation, toolErr.Code)
}

func TestListUpcomingMeetings(t *testing.T) {
	r, c := newMeetingFixture(t)

	result, err := r.Invoke(newTestContext(), "list_upcoming_meetings", map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, "You have no upcoming meetings.", result)
	assert.Equal(t, 5, c.upcomingMax)

	// ---

	c.meetings = []Meeting{
		{Title: "Standup", Start: time.Date(2025, time.December, 1, 9, 30, 0, 0, time.Local)},
		{Title: "Review", Start: time.Date(2025, time.December, 2, 15, 0, 0, 0, time.Local)},
	}

	result, err = r.Invoke(newTestContext(), "list_upcoming_meetings", map[string]any{})
	require.NoError(t, err)

	want := fmt.Sprintf("You have %d upcoming meetings:\n", 2) +
		`- "Standup" on Monday, December 1 at 9:30 AM` + "\n" +
		`- "Review" on Tuesday, December 2 at 3:00 PM`
	assert.Equal(t, want, result)
}

func TestGetNextMeeting(t *testing.T) {
	r, c := newMeetingFixture(t)

	result, err := r.Invoke(newTestContext(), "get_next_meeting", map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, "You have no upcoming meetings.", result)

	c.meetings = []Meeting{{
		Title: "Standup",
		Start: time.Date(2025, time.December, 1, 9, 30, 0, 0, time.Local),
		Link:  "https://meet.google.com/xyz",
	}}

	result, err = r.Invoke(newTestContext(), "get_next_meeting", map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, `Your next meeting is "Standup" on Monday, December 1 at 9:30 AM. Join link: https://meet.google.com/xyz`, result)
}

func TestJoinMeetingNormalizesCode(t *testing.T) {
	r, c := newMeetingFixture(t)

	result, err := r.Invoke(newTestContext(), "join_meeting", map[string]any{
		"code": "  ABC-DEFG-HIJ ",
	})

	require.NoError(t, err)
	assert.Equal(t, "abc-defg-hij", c.joinedCode)
	assert.Equal(t, "Joining meeting abc-defg-hij now: https://meet.google.com/abc-defg-hij", result)
}

func TestCancelNextMeeting(t *testing.T) {
	r, c := newMeetingFixture(t)

	result, err := r.Invoke(newTestContext(), "cancel_next_meeting", map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, "You have no upcoming meetings to cancel.", result)

	c.meetings = []Meeting{{
		Title: "Standup",
		Start: time.Date(2025, time.December, 1, 9, 30, 0, 0, time.Local),
	}}

	result, err = r.Invoke(newTestContext(), "cancel_next_meeting", map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, `Cancelled "Standup", which was scheduled for Monday, December 1 at 9:30 AM.`, result)
	assert.Empty(t, c.meetings)
}

func TestMeetingSideEffectFlags(t *testing.T) {
	r, _ := newMeetingFixture(t)

	flags := map[string]bool{}
	for _, tl := range r.Tools() {
		flags[tl.Name()] = tl.SideEffecting()
	}

	assert.True(t, flags["create_instant_meeting"])
	assert.True(t, flags["schedule_meeting"])
	assert.False(t, flags["list_upcoming_meetings"])
	assert.False(t, flags["get_next_meeting"])
	assert.True(t, flags["join_meeting"])
	assert.True(t, flags["cancel_next_meeting"])
}
