package tool

import (
	"context"
	"fmt"
	"strings"
)

// SystemController abstracts local machine control: audio, applications and
// the screen. A desktop host backs it with OS calls; tests use fakes.
type SystemController interface {
	// SetVolume sets the output volume to an absolute percentage (0-100).
	SetVolume(ctx context.Context, level int) error
	// AdjustVolume nudges the volume "up" or "down" one step and returns the
	// resulting percentage.
	AdjustVolume(ctx context.Context, direction string) (int, error)
	// Mute silences the output.
	Mute(ctx context.Context) error
	// OpenApplication launches an application by name.
	OpenApplication(ctx context.Context, name string) error
	// CloseApplication terminates an application by name.
	CloseApplication(ctx context.Context, name string) error
	// RunningApplications lists the user-visible applications.
	RunningApplications(ctx context.Context) ([]string, error)
	// TakeScreenshot captures the screen and returns the saved file path.
	TakeScreenshot(ctx context.Context) (string, error)
}

type volumeArgs struct {
	Level int `json:"level" description:"Volume percentage" minimum:"0" maximum:"100"`
}

type adjustVolumeArgs struct {
	Direction string `json:"direction" enum:"up,down" description:"Whether to raise or lower the volume"`
}

type applicationArgs struct {
	Name string `json:"name" description:"Application name, e.g. notepad or spotify"`
}

// NewSystemTools builds the machine-control tool set over a SystemController.
func NewSystemTools(c SystemController) []Tool {
	setVolume := NewFunctionToolFromStruct(
		"set_volume",
		"Set the system volume to an exact percentage between 0 and 100.",
		volumeArgs{},
		func(toolCtx *Context, args map[string]any) (any, error) {
			level := intArg(args, "level", 0)
			if err := c.SetVolume(toolCtx.Context(), level); err != nil {
				return nil, err
			}
			return fmt.Sprintf("Volume set to %d%%.", level), nil
		},
		WithSideEffect(),
	)

	adjustVolume := NewFunctionToolFromStruct(
		"adjust_volume",
		"Turn the system volume up or down one step.",
		adjustVolumeArgs{},
		func(toolCtx *Context, args map[string]any) (any, error) {
			direction := stringArg(args, "direction")
			level, err := c.AdjustVolume(toolCtx.Context(), direction)
			if err != nil {
				return nil, err
			}
			return fmt.Sprintf("Volume turned %s to %d%%.", direction, level), nil
		},
		WithSideEffect(),
	)

	muteAudio := NewFunctionTool(
		"mute_audio",
		"Mute the system audio output.",
		map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
		func(toolCtx *Context, args map[string]any) (any, error) {
			if err := c.Mute(toolCtx.Context()); err != nil {
				return nil, err
			}
			return "Audio muted.", nil
		},
		WithSideEffect(),
	)

	openApplication := NewFunctionToolFromStruct(
		"open_application",
		"Launch an application on this machine.",
		applicationArgs{},
		func(toolCtx *Context, args map[string]any) (any, error) {
			name := stringArg(args, "name")
			if err := c.OpenApplication(toolCtx.Context(), name); err != nil {
				return nil, err
			}
			return fmt.Sprintf("Opened %s.", name), nil
		},
		WithSideEffect(),
	)

	closeApplication := NewFunctionToolFromStruct(
		"close_application",
		"Close a running application by name.",
		applicationArgs{},
		func(toolCtx *Context, args map[string]any) (any, error) {
			name := stringArg(args, "name")
			if err := c.CloseApplication(toolCtx.Context(), name); err != nil {
				return nil, err
			}
			return fmt.Sprintf("Closed %s.", name), nil
		},
		WithSideEffect(),
	)

	listApplications := NewFunctionTool(
		"list_running_applications",
		"List the applications currently running on this machine.",
		map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
		func(toolCtx *Context, args map[string]any) (any, error) {
			apps, err := c.RunningApplications(toolCtx.Context())
			if err != nil {
				return nil, err
			}
			if len(apps) == 0 {
				return "No user applications are running.", nil
			}
			return fmt.Sprintf("Running applications: %s.", strings.Join(apps, ", ")), nil
		},
	)

	takeScreenshot := NewFunctionTool(
		"take_screenshot",
		"Capture the screen and save it as an image.",
		map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
		func(toolCtx *Context, args map[string]any) (any, error) {
			path, err := c.TakeScreenshot(toolCtx.Context())
			if err != nil {
				return nil, err
			}
			return fmt.Sprintf("Screenshot saved to %s.", path), nil
		},
		WithSideEffect(),
	)

	return []Tool{
		setVolume,
		adjustVolume,
		muteAudio,
		openApplication,
		closeApplication,
		listApplications,
		takeScreenshot,
	}
}
