package tool

import (
	"fmt"
	"strings"

	"github.com/AsimAftab/Sentinel-AI-Desktop/scheduler"
)

type timerArgs struct {
	DurationMinutes int    `json:"duration_minutes" description:"Countdown length in minutes" minimum:"1" maximum:"480"`
	Name            string `json:"name,omitempty" description:"Optional label for the timer, e.g. Tea"`
}

type alarmArgs struct {
	Time string `json:"time" description:"Wall-clock time such as 3:30 PM, 15:30 or 3pm"`
	Name string `json:"name,omitempty" description:"Optional label for the alarm"`
}

type cancelArgs struct {
	TimerID int `json:"timer_id" description:"Id of the timer or alarm to cancel" minimum:"1"`
}

// NewProductivityTools builds the timer and alarm tool set over the given
// scheduler.
func NewProductivityTools(s *scheduler.Scheduler) []Tool {
	setTimer := NewFunctionToolFromStruct(
		"set_timer",
		"Start a countdown timer that notifies the user when it runs out.",
		timerArgs{},
		func(toolCtx *Context, args map[string]any) (any, error) {
			minutes := intArg(args, "duration_minutes", 0)

			entry, err := s.SetTimer(minutes, stringArg(args, "name"))
			if err != nil {
				return nil, err
			}

			return fmt.Sprintf("Timer %q set for %s (id %d).",
				entry.Name, scheduler.FormatMinutes(minutes), entry.ID), nil
		},
		WithSideEffect(),
	)

	setAlarm := NewFunctionToolFromStruct(
		"set_alarm",
		"Set an alarm for a wall-clock time. Times already passed today roll over to tomorrow.",
		alarmArgs{},
		func(toolCtx *Context, args map[string]any) (any, error) {
			entry, err := s.SetAlarm(stringArg(args, "time"), stringArg(args, "name"))
			if err != nil {
				return nil, err
			}

			return fmt.Sprintf("Alarm %q set for %s (id %d).",
				entry.Name, scheduler.FormatClock(entry.FireAt), entry.ID), nil
		},
		WithSideEffect(),
	)

	listTimers := NewFunctionTool(
		"list_timers",
		"List every running timer and alarm with its remaining time.",
		map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
		func(toolCtx *Context, args map[string]any) (any, error) {
			entries := s.List()
			if len(entries) == 0 {
				return "No timers or alarms are running.", nil
			}

			var b strings.Builder
			fmt.Fprintf(&b, "%d scheduled:\n", len(entries))
			for _, e := range entries {
				if e.Kind == scheduler.KindAlarm {
					fmt.Fprintf(&b, "- Alarm %q (id %d) rings at %s, in %s\n",
						e.Name, e.ID, scheduler.FormatClock(e.FireAt), scheduler.FormatRemaining(e.Remaining))
					continue
				}
				fmt.Fprintf(&b, "- Timer %q (id %d) fires in %s\n",
					e.Name, e.ID, scheduler.FormatRemaining(e.Remaining))
			}

			return strings.TrimRight(b.String(), "\n"), nil
		},
	)

	cancelTimer := NewFunctionToolFromStruct(
		"cancel_timer",
		"Cancel one timer or alarm by its id.",
		cancelArgs{},
		func(toolCtx *Context, args map[string]any) (any, error) {
			entry, err := s.Cancel(int64(intArg(args, "timer_id", 0)))
			if err != nil {
				return nil, err
			}

			return fmt.Sprintf("Cancelled %s %q (id %d).",
				strings.ToLower(string(entry.Kind)), entry.Name, entry.ID), nil
		},
		WithSideEffect(),
	)

	cancelAll := NewFunctionTool(
		"cancel_all_timers",
		"Cancel every running timer and alarm.",
		map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
		func(toolCtx *Context, args map[string]any) (any, error) {
			n := s.CancelAll()
			if n == 0 {
				return "There was nothing to cancel.", nil
			}
			if n == 1 {
				return "Cancelled 1 timer or alarm.", nil
			}
			return fmt.Sprintf("Cancelled %d timers and alarms.", n), nil
		},
		WithSideEffect(),
	)

	return []Tool{setTimer, setAlarm, listTimers, cancelTimer, cancelAll}
}
