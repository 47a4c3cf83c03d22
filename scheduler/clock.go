package scheduler

import (
	"fmt"
	"strings"
	"time"
)

// Accepted wall-clock spellings, tried in order. Inputs are trimmed and
// uppercased first so "3pm" matches the "3PM" layout.
var wallClockLayouts = []string{
	"3:04 PM", // 3:30 PM
	"3:04PM",  // 3:30PM
	"3PM",     // 3pm
	"15:04",   // 15:30
	"15",      // 15
}

// parseWallClock resolves a spoken time spec to the next matching wall-clock
// instant: today if still ahead, otherwise rolled to tomorrow. Seconds are
// always zero.
func parseWallClock(spec string, now time.Time) (time.Time, error) {
	normalized := strings.ToUpper(strings.TrimSpace(spec))
	if normalized == "" {
		return time.Time{}, &UnparseableTimeError{Spec: spec}
	}

	for _, layout := range wallClockLayouts {
		parsed, err := time.Parse(layout, normalized)
		if err != nil {
			continue
		}

		fireAt := time.Date(now.Year(), now.Month(), now.Day(),
			parsed.Hour(), parsed.Minute(), 0, 0, now.Location())
		if !fireAt.After(now) {
			fireAt = fireAt.AddDate(0, 0, 1)
		}
		return fireAt, nil
	}

	return time.Time{}, &UnparseableTimeError{Spec: spec}
}

// FormatClock renders an instant the way it is spoken back to the user.
func FormatClock(t time.Time) string {
	return t.Format("3:04 PM")
}

// FormatMinutes renders a duration given in whole minutes, e.g. "1 minute",
// "45 minutes", "1 hour 30 minutes".
func FormatMinutes(minutes int) string {
	switch {
	case minutes == 1:
		return "1 minute"
	case minutes < 60:
		return fmt.Sprintf("%d minutes", minutes)
	case minutes == 60:
		return "1 hour"
	}

	hours := minutes / 60
	mins := minutes % 60

	out := fmt.Sprintf("%d hour", hours)
	if hours > 1 {
		out += "s"
	}
	if mins == 0 {
		return out
	}
	out += fmt.Sprintf(" %d minute", mins)
	if mins > 1 {
		out += "s"
	}
	return out
}

// FormatRemaining renders a countdown compactly: "2h 5m", "4m 59s" or "45s".
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	switch {
	case d >= time.Hour:
		return fmt.Sprintf("%dh %dm", int(d.Hours()), int(d.Minutes())%60)
	case d >= time.Minute:
		return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
	default:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
}
