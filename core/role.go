package core

import "strings"

// Role identifies the capability category the supervisor selects for a turn.
// The set is closed; a Role value outside it is never produced by this module.
type Role string

const (
	// RoleBrowser handles web search, page opening and information lookups.
	RoleBrowser Role = "BROWSER"
	// RoleMusic handles media playback through the shared automation session.
	RoleMusic Role = "MUSIC"
	// RoleMeeting handles calendar and meeting operations.
	RoleMeeting Role = "MEETING"
	// RoleSystem handles local machine control (volume, applications, screenshots).
	RoleSystem Role = "SYSTEM"
	// RoleProductivity handles timers, alarms and reminders.
	RoleProductivity Role = "PRODUCTIVITY"
	// RoleFinish ends routing for the turn; it carries a direct reply and owns
	// no tool catalog.
	RoleFinish Role = "FINISH"
)

// DispatchOrder lists every dispatchable role in fixed priority order. Routing
// falls back to this order when vocabulary matching ties and no prior turn
// breaks the tie. RoleFinish is not a dispatch target and is excluded.
var DispatchOrder = []Role{RoleProductivity, RoleMusic, RoleMeeting, RoleSystem, RoleBrowser}

// ParseRole maps free-form classifier output onto a member of the role set.
// Matching is case-insensitive and tolerant of surrounding whitespace. Unknown
// or empty input maps to RoleFinish so that routing stays total.
func ParseRole(s string) Role {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleBrowser:
		return RoleBrowser
	case RoleMusic:
		return RoleMusic
	case RoleMeeting:
		return RoleMeeting
	case RoleSystem:
		return RoleSystem
	case RoleProductivity:
		return RoleProductivity
	default:
		return RoleFinish
	}
}

// Dispatchable reports whether the role owns a tool catalog and can be handed
// to an executor. Only RoleFinish is not dispatchable.
func (r Role) Dispatchable() bool {
	switch r {
	case RoleBrowser, RoleMusic, RoleMeeting, RoleSystem, RoleProductivity:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (r Role) String() string { return string(r) }
