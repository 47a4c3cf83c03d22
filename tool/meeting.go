package tool

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Meeting is one calendar entry with an attached join link.
type Meeting struct {
	ID    string
	Title string
	Start time.Time
	End   time.Time
	Link  string
}

// Calendar abstracts the meeting backend (Google Calendar in the reference
// host). Next and CancelNext return a nil Meeting when the calendar is empty.
type Calendar interface {
	CreateInstant(ctx context.Context, title string, minutes int) (Meeting, error)
	Schedule(ctx context.Context, title string, start time.Time, minutes int, attendees []string) (Meeting, error)
	Upcoming(ctx context.Context, max int) ([]Meeting, error)
	Next(ctx context.Context) (*Meeting, error)
	Join(ctx context.Context, code string) (string, error)
	CancelNext(ctx context.Context) (*Meeting, error)
}

// startTimeLayout is the accepted schedule_meeting format.
const startTimeLayout = "2006-01-02 15:04"

func formatMeetingStart(t time.Time) string {
	return fmt.Sprintf("%s at %s", t.Format("Monday, January 2"), t.Format("3:04 PM"))
}

// NewMeetingTools builds the calendar tool set over a Calendar.
func NewMeetingTools(c Calendar) []Tool {
	createInstant := NewFunctionTool(
		"create_instant_meeting",
		"Create a meeting that starts right now and return its join link.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title": map[string]any{
					"type":        "string",
					"description": "Meeting title. Defaults to Quick Meeting.",
				},
				"duration_minutes": map[string]any{
					"type":        "integer",
					"description": "Meeting length in minutes. Defaults to 60.",
					"minimum":     float64(1),
					"maximum":     float64(480),
				},
			},
		},
		func(toolCtx *Context, args map[string]any) (any, error) {
			title := stringArg(args, "title")
			if title == "" {
				title = "Quick Meeting"
			}

			m, err := c.CreateInstant(toolCtx.Context(), title, intArg(args, "duration_minutes", 60))
			if err != nil {
				return nil, err
			}

			return fmt.Sprintf("Created %q starting now. Join link: %s", m.Title, m.Link), nil
		},
		WithSideEffect(),
	)

	scheduleMeeting := NewFunctionTool(
		"schedule_meeting",
		"Schedule a meeting for a future date and time.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title": map[string]any{
					"type":        "string",
					"description": "Meeting title.",
				},
				"start_time": map[string]any{
					"type":        "string",
					"description": "Start in the form YYYY-MM-DD HH:MM, e.g. 2025-12-01 14:30.",
				},
				"duration_minutes": map[string]any{
					"type":        "integer",
					"description": "Meeting length in minutes. Defaults to 60.",
					"minimum":     float64(1),
					"maximum":     float64(480),
				},
				"attendees": map[string]any{
					"type":        "string",
					"description": "Comma-separated attendee email addresses.",
				},
			},
			"required": []string{"title", "start_time"},
		},
		func(toolCtx *Context, args map[string]any) (any, error) {
			start, err := time.ParseInLocation(startTimeLayout, stringArg(args, "start_time"), time.Local)
			if err != nil {
				return nil, fmt.Errorf("invalid start_time %q: use YYYY-MM-DD HH:MM", stringArg(args, "start_time"))
			}

			var attendees []string
			for _, a := range strings.Split(stringArg(args, "attendees"), ",") {
				if a = strings.TrimSpace(a); a != "" {
					attendees = append(attendees, a)
				}
			}

			m, err := c.Schedule(toolCtx.Context(), stringArg(args, "title"), start, intArg(args, "duration_minutes", 60), attendees)
			if err != nil {
				return nil, err
			}

			out := fmt.Sprintf("Scheduled %q for %s.", m.Title, formatMeetingStart(m.Start))
			if len(attendees) > 0 {
				out += fmt.Sprintf(" Invited %d attendees.", len(attendees))
			}
			return out, nil
		},
		WithSideEffect(),
	)

	listUpcoming := NewFunctionTool(
		"list_upcoming_meetings",
		"List the next meetings on the calendar.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"max_results": map[string]any{
					"type":        "integer",
					"description": "How many meetings to list. Defaults to 5.",
					"minimum":     float64(1),
					"maximum":     float64(25),
				},
			},
		},
		func(toolCtx *Context, args map[string]any) (any, error) {
			meetings, err := c.Upcoming(toolCtx.Context(), intArg(args, "max_results", 5))
			if err != nil {
				return nil, err
			}
			if len(meetings) == 0 {
				return "You have no upcoming meetings.", nil
			}

			var b strings.Builder
			fmt.Fprintf(&b, "You have %d upcoming meetings:\n", len(meetings))
			for _, m := range meetings {
				fmt.Fprintf(&b, "- %q on %s\n", m.Title, formatMeetingStart(m.Start))
			}
			return strings.TrimRight(b.String(), "\n"), nil
		},
	)

	nextMeeting := NewFunctionTool(
		"get_next_meeting",
		"Tell when the next meeting starts and how to join it.",
		map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
		func(toolCtx *Context, args map[string]any) (any, error) {
			m, err := c.Next(toolCtx.Context())
			if err != nil {
				return nil, err
			}
			if m == nil {
				return "You have no upcoming meetings.", nil
			}

			out := fmt.Sprintf("Your next meeting is %q on %s.", m.Title, formatMeetingStart(m.Start))
			if m.Link != "" {
				out += fmt.Sprintf(" Join link: %s", m.Link)
			}
			return out, nil
		},
	)

	joinMeeting := NewFunctionTool(
		"join_meeting",
		"Join a meeting by its code, like abc-defg-hij.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"code": map[string]any{
					"type":        "string",
					"description": "Meeting code.",
				},
			},
			"required": []string{"code"},
		},
		func(toolCtx *Context, args map[string]any) (any, error) {
			code := strings.ToLower(strings.TrimSpace(stringArg(args, "code")))

			url, err := c.Join(toolCtx.Context(), code)
			if err != nil {
				return nil, err
			}
			return fmt.Sprintf("Joining meeting %s now: %s", code, url), nil
		},
		WithSideEffect(),
	)

	cancelNext := NewFunctionTool(
		"cancel_next_meeting",
		"Cancel the next upcoming meeting on the calendar.",
		map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
		func(toolCtx *Context, args map[string]any) (any, error) {
			m, err := c.CancelNext(toolCtx.Context())
			if err != nil {
				return nil, err
			}
			if m == nil {
				return "You have no upcoming meetings to cancel.", nil
			}
			return fmt.Sprintf("Cancelled %q, which was scheduled for %s.", m.Title, formatMeetingStart(m.Start)), nil
		},
		WithSideEffect(),
	)

	return []Tool{
		createInstant,
		scheduleMeeting,
		listUpcoming,
		nextMeeting,
		joinMeeting,
		cancelNext,
	}
}
