// Package voice defines the audio boundary of the assistant: wake word
// detection, speech capture and speech output. The engine depends only on
// these interfaces; real microphone, hotword and TTS backends live outside
// this module and are injected by the host application.
package voice

import (
	"context"
	"errors"
	"time"
)

// ErrCaptureTimeout is returned by a Recognizer when no speech started within
// the listen timeout. The dialogue loop treats it as "the user said nothing".
var ErrCaptureTimeout = errors.New("voice: no speech before listen timeout")

// ErrCaptureEmpty is returned by a Recognizer when audio was captured but no
// usable text came out of it.
var ErrCaptureEmpty = errors.New("voice: captured audio produced no text")

// Recognizer converts one spoken phrase to text. Listen blocks until a phrase
// is transcribed, the listen timeout expires with no speech, or the context is
// cancelled. phraseLimit bounds the length of a single phrase once speech has
// started.
type Recognizer interface {
	Listen(ctx context.Context, timeout, phraseLimit time.Duration) (string, error)
}

// RecognizerFunc adapts a function to the Recognizer interface.
type RecognizerFunc func(ctx context.Context, timeout, phraseLimit time.Duration) (string, error)

// Listen implements Recognizer.
func (f RecognizerFunc) Listen(ctx context.Context, timeout, phraseLimit time.Duration) (string, error) {
	return f(ctx, timeout, phraseLimit)
}

// Speaker voices one reply and returns once playback finished or failed.
// Implementations must be safe to call sequentially from a single goroutine.
type Speaker interface {
	Speak(ctx context.Context, text string) error
}

// SpeakerFunc adapts a function to the Speaker interface.
type SpeakerFunc func(ctx context.Context, text string) error

// Speak implements Speaker.
func (f SpeakerFunc) Speak(ctx context.Context, text string) error { return f(ctx, text) }

// WakeListener blocks until the wake word is heard or the context is
// cancelled.
type WakeListener interface {
	WaitForWake(ctx context.Context) error
}

// WakeListenerFunc adapts a function to the WakeListener interface.
type WakeListenerFunc func(ctx context.Context) error

// WaitForWake implements WakeListener.
func (f WakeListenerFunc) WaitForWake(ctx context.Context) error { return f(ctx) }
