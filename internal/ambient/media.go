package ambient

import (
	"context"
	"errors"
)

// ErrAutoplayBlocked marks a playback rejection that only a user gesture
// can clear. Media implementations wrap it to signal the condition.
var ErrAutoplayBlocked = errors.New("autoplay blocked until user interaction")

// Media is one loaded, looping audio resource.
type Media interface {
	// Load prepares url for playback.
	Load(ctx context.Context, url string) error
	// Play starts or resumes playback and returns once it is audible.
	Play(ctx context.Context) error
	Pause() error
	// SetVolume applies a 0..100 volume, live if playing.
	SetVolume(volume int) error
	// Close releases the resource; the controller calls it exactly once.
	Close() error
}

// Factory creates a Media for sound at the given initial volume.
type Factory func(sound Sound, volume int) Media
