package tool

import (
	"context"

	"github.com/AsimAftab/Sentinel-AI-Desktop/automation"
)

// Player drives the streaming site inside an automation session. Every method
// receives the session handle the manager acquired; implementations must not
// retain it between calls.
type Player interface {
	// Play searches for the query and starts playback. It returns a
	// user-facing description of what is now playing.
	Play(ctx context.Context, h automation.Handle, query string) (string, error)
	// Control applies a playback command: play, pause, next, previous, like.
	Control(ctx context.Context, h automation.Handle, action string) (string, error)
	// NowPlaying reports the current track.
	NowPlaying(ctx context.Context, h automation.Handle) (string, error)
	// StartRadio starts an endless station seeded from a song or artist.
	StartRadio(ctx context.Context, h automation.Handle, seed string) (string, error)
}

type playArgs struct {
	Query string `json:"query" description:"Song, artist or playlist to play"`
}

type controlArgs struct {
	Action string `json:"action" enum:"play,pause,next,previous,like" description:"Playback command to apply"`
}

type radioArgs struct {
	Song string `json:"song" description:"Seed song or artist for the radio station"`
}

const noPlaybackText = "Nothing is playing right now. Ask me to play something first."

// NewMusicTools builds the playback tool set. Every tool goes through the
// automation manager, so concurrent music requests queue up instead of
// fighting over the browser.
func NewMusicTools(m *automation.Manager, p Player) []Tool {
	playMusic := NewFunctionToolFromStruct(
		"play_music",
		"Search for a song, artist or playlist and start playing it.",
		playArgs{},
		func(toolCtx *Context, args map[string]any) (any, error) {
			var out string
			err := m.Do(toolCtx.Context(), func(ctx context.Context, h automation.Handle) error {
				var err error
				out, err = p.Play(ctx, h, stringArg(args, "query"))
				return err
			})
			if err != nil {
				return nil, err
			}
			return out, nil
		},
		WithSideEffect(),
	)

	controlPlayback := NewFunctionToolFromStruct(
		"control_playback",
		"Control the running playback: play, pause, next, previous or like.",
		controlArgs{},
		func(toolCtx *Context, args map[string]any) (any, error) {
			// Without an open session there is nothing to control; opening a
			// fresh browser just to press pause helps nobody.
			if m.Status() != automation.StatusOpen {
				return noPlaybackText, nil
			}

			var out string
			err := m.Do(toolCtx.Context(), func(ctx context.Context, h automation.Handle) error {
				var err error
				out, err = p.Control(ctx, h, stringArg(args, "action"))
				return err
			})
			if err != nil {
				return nil, err
			}
			return out, nil
		},
		WithSideEffect(),
	)

	getCurrentSong := NewFunctionTool(
		"get_current_song",
		"Tell which song is currently playing.",
		map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
		func(toolCtx *Context, args map[string]any) (any, error) {
			if m.Status() != automation.StatusOpen {
				return noPlaybackText, nil
			}

			var out string
			err := m.Do(toolCtx.Context(), func(ctx context.Context, h automation.Handle) error {
				var err error
				out, err = p.NowPlaying(ctx, h)
				return err
			})
			if err != nil {
				return nil, err
			}
			return out, nil
		},
	)

	startRadio := NewFunctionToolFromStruct(
		"start_radio",
		"Start an endless radio station seeded from a song or artist.",
		radioArgs{},
		func(toolCtx *Context, args map[string]any) (any, error) {
			var out string
			err := m.Do(toolCtx.Context(), func(ctx context.Context, h automation.Handle) error {
				var err error
				out, err = p.StartRadio(ctx, h, stringArg(args, "song"))
				return err
			})
			if err != nil {
				return nil, err
			}
			return out, nil
		},
		WithSideEffect(),
	)

	closeSession := NewFunctionTool(
		"close_music_session",
		"Close the music browser session and stop playback.",
		map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
		func(toolCtx *Context, args map[string]any) (any, error) {
			if m.Status() != automation.StatusOpen {
				return "No music session is open.", nil
			}

			if err := m.Close(toolCtx.Context()); err != nil {
				return nil, err
			}
			return "Music session closed.", nil
		},
		WithSideEffect(),
	)

	return []Tool{playMusic, controlPlayback, getCurrentSong, startRadio, closeSession}
}
