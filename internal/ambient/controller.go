package ambient

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"github.com/five82/sanctuary/internal/prefs"
)

// State is the controller's playback state.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StatePlaying State = "playing"
	StatePaused  State = "paused"
	StateError   State = "error"
	StateBlocked State = "blocked-needs-interaction"
)

var (
	ErrUnknownSound = errors.New("unknown sound")
	ErrNoSound      = errors.New("no sound selected")
	ErrClosed       = errors.New("ambient controller closed")
)

const (
	defaultMaxRetries = 3
	defaultRetryDelay = 500 * time.Millisecond

	blockedMessage = "Playback blocked until you press play"
)

// Snapshot is a point-in-time view of the controller.
type Snapshot struct {
	State   State
	SoundID string
	Volume  int
	// Error holds the user-facing message for StateError and StateBlocked.
	Error string
	// Retries counts retries spent by the current load.
	Retries int
}

func (s Snapshot) Playing() bool          { return s.State == StatePlaying }
func (s Snapshot) Loading() bool          { return s.State == StateLoading }
func (s Snapshot) NeedsInteraction() bool { return s.State == StateBlocked }

// Options configure a Controller.
type Options struct {
	Sounds   []Sound
	Factory  Factory
	Prefs    prefs.Store
	Logger   hclog.Logger
	Autoplay bool
	// MaxRetries is the retry budget after the first attempt.
	MaxRetries int
	// RetryDelay is multiplied by the retry number for linear backoff.
	RetryDelay time.Duration
	// Sleep waits between retries; it must return early when ctx ends.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Controller owns at most one Media at a time and drives it through the
// loading, retry and autoplay-recovery states.
type Controller struct {
	sounds     []Sound
	factory    Factory
	store      prefs.Store
	logger     hclog.Logger
	autoplay   bool
	maxRetries int
	retryDelay time.Duration
	sleep      func(ctx context.Context, d time.Duration) error

	mu      sync.Mutex
	state   State
	soundID string
	volume  int
	errMsg  string
	retries int
	media   Media
	mediaID string
	loaded  bool
	gen     uint64
	cancel  context.CancelFunc
	subs    map[int]chan Snapshot
	nextSub int
	closed  bool

	wg sync.WaitGroup
}

// New builds a Controller, restoring the selected sound and volume from the
// settings store without starting playback.
func New(opts Options) *Controller {
	c := &Controller{
		sounds:     opts.Sounds,
		factory:    opts.Factory,
		store:      opts.Prefs,
		logger:     opts.Logger,
		autoplay:   opts.Autoplay,
		maxRetries: opts.MaxRetries,
		retryDelay: opts.RetryDelay,
		sleep:      opts.Sleep,
		state:      StateIdle,
		subs:       make(map[int]chan Snapshot),
	}
	if len(c.sounds) == 0 {
		c.sounds = DefaultSounds()
	}
	if c.store == nil {
		c.store = prefs.NewMemory()
	}
	if c.logger == nil {
		c.logger = hclog.NewNullLogger()
	}
	if c.maxRetries <= 0 {
		c.maxRetries = defaultMaxRetries
	}
	if c.retryDelay <= 0 {
		c.retryDelay = defaultRetryDelay
	}
	if c.sleep == nil {
		c.sleep = sleepContext
	}
	c.volume = prefs.Volume(c.store)
	if id := prefs.Sound(c.store); id != "" {
		if _, ok := Find(c.sounds, id); ok {
			c.soundID = id
		}
	}
	return c
}

// Sounds returns the catalog.
func (c *Controller) Sounds() []Sound {
	return append([]Sound(nil), c.sounds...)
}

// Play selects id and starts playback as a user gesture.
func (c *Controller) Play(id string) error {
	return c.play(id, true)
}

// Restore re-selects the persisted sound without a user gesture, so the
// autoplay policy applies. It does nothing when no sound is stored.
func (c *Controller) Restore() error {
	c.mu.Lock()
	id := c.soundID
	c.mu.Unlock()
	if id == "" {
		return nil
	}
	return c.play(id, false)
}

// Toggle pauses while playing or loading and otherwise (re)starts the
// selected sound as a user gesture, which also clears an autoplay block.
func (c *Controller) Toggle() error {
	c.mu.Lock()
	state, id := c.state, c.soundID
	c.mu.Unlock()

	switch state {
	case StatePlaying, StateLoading:
		return c.Pause()
	default:
		if id == "" {
			return ErrNoSound
		}
		return c.play(id, true)
	}
}

// Pause stops playback, abandoning any in-flight attempt.
func (c *Controller) Pause() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.media == nil || (c.state != StatePlaying && c.state != StateLoading) {
		return nil
	}
	c.stopAttemptLocked()
	c.state = StatePaused
	c.errMsg = ""
	err := c.media.Pause()
	c.publishLocked()
	if err != nil {
		c.logger.Warn("pause failed", "sound", c.mediaID, "error", err)
		return fmt.Errorf("pause: %w", err)
	}
	c.logger.Debug("paused", "sound", c.mediaID)
	return nil
}

// SetVolume clamps v to 0..100, persists it and applies it to the live media.
func (c *Controller) SetVolume(v int) error {
	v = prefs.ClampVolume(v)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.volume = v
	if err := prefs.SetVolume(c.store, v); err != nil {
		c.logger.Warn("persist volume failed", "error", err)
	}
	var applyErr error
	if c.media != nil {
		if err := c.media.SetVolume(v); err != nil {
			c.logger.Warn("apply volume failed", "sound", c.mediaID, "volume", v, "error", err)
			applyErr = fmt.Errorf("set volume: %w", err)
		}
	}
	c.publishLocked()
	return applyErr
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Subscribe returns a channel receiving the latest Snapshot after every
// change. Slow readers only miss intermediate snapshots. The returned func
// unsubscribes and closes the channel.
func (c *Controller) Subscribe() (<-chan Snapshot, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan Snapshot, 1)
	if c.closed {
		close(ch)
		return ch, func() {}
	}
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch
	ch <- c.snapshotLocked()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if sub, ok := c.subs[id]; ok {
				delete(c.subs, id)
				close(sub)
			}
		})
	}
}

// Close stops playback, releases the media and closes subscriptions.
func (c *Controller) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.stopAttemptLocked()
	err := c.releaseMediaLocked()
	c.state = StateIdle
	for id, ch := range c.subs {
		close(ch)
		delete(c.subs, id)
	}
	c.mu.Unlock()

	c.wg.Wait()
	return err
}

func (c *Controller) play(id string, gesture bool) error {
	sound, ok := Find(c.sounds, id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSound, id)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}

	if c.media != nil && c.mediaID == id {
		if c.state == StatePlaying || c.state == StateLoading {
			return nil
		}
		c.logger.Debug("resuming", "sound", id, "gesture", gesture)
		c.beginLocked(sound, gesture)
		return nil
	}

	if err := c.releaseMediaLocked(); err != nil {
		c.logger.Warn("release previous media failed", "error", err)
	}

	c.media = c.factory(sound, c.volume)
	c.mediaID = id
	c.loaded = false
	if c.soundID != id {
		c.soundID = id
		if err := prefs.SetSound(c.store, id); err != nil {
			c.logger.Warn("persist sound failed", "error", err)
		}
	}
	c.logger.Info("loading", "sound", id, "url", sound.URL, "gesture", gesture)
	c.beginLocked(sound, gesture)
	return nil
}

// beginLocked enters StateLoading and starts a fresh attempt generation.
func (c *Controller) beginLocked(sound Sound, gesture bool) {
	c.stopAttemptLocked()
	gen := c.gen
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.state = StateLoading
	c.errMsg = ""
	c.retries = 0
	c.publishLocked()

	c.wg.Add(1)
	go c.attempt(ctx, gen, c.media, sound, !c.loaded, gesture)
}

// stopAttemptLocked cancels the running attempt and invalidates its
// generation so late results are discarded.
func (c *Controller) stopAttemptLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.gen++
}

// releaseMediaLocked closes the current media exactly once.
func (c *Controller) releaseMediaLocked() error {
	if c.media == nil {
		return nil
	}
	media, id := c.media, c.mediaID
	c.media = nil
	c.mediaID = ""
	c.loaded = false
	c.logger.Debug("releasing media", "sound", id)
	return media.Close()
}

func (c *Controller) attempt(ctx context.Context, gen uint64, media Media, sound Sound, needLoad, gesture bool) {
	defer c.wg.Done()

	for try := 0; ; try++ {
		err := c.tryPlay(ctx, gen, media, sound, &needLoad, gesture)
		if ctx.Err() != nil {
			return
		}
		if err == nil {
			c.logger.Info("playing", "sound", sound.ID, "retries", try)
			c.finish(gen, StatePlaying, "")
			return
		}
		if errors.Is(err, ErrAutoplayBlocked) {
			c.logger.Info("autoplay blocked", "sound", sound.ID)
			c.finish(gen, StateBlocked, blockedMessage)
			return
		}
		if try >= c.maxRetries {
			c.logger.Error("playback failed", "sound", sound.ID, "attempts", try+1, "error", err)
			c.finish(gen, StateError, "Playback failed: "+err.Error())
			return
		}
		delay := time.Duration(try+1) * c.retryDelay
		c.logger.Warn("playback attempt failed, retrying", "sound", sound.ID, "attempt", try+1, "delay", delay, "error", err)
		if !c.noteRetry(gen, try+1) {
			return
		}
		if err := c.sleep(ctx, delay); err != nil {
			return
		}
	}
}

func (c *Controller) tryPlay(ctx context.Context, gen uint64, media Media, sound Sound, needLoad *bool, gesture bool) error {
	if *needLoad {
		if err := media.Load(ctx, sound.URL); err != nil {
			return fmt.Errorf("load %s: %w", sound.Name, err)
		}
		*needLoad = false
		c.markLoaded(gen)
	}
	if !gesture && !c.autoplay {
		return ErrAutoplayBlocked
	}
	return media.Play(ctx)
}

func (c *Controller) markLoaded(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen == c.gen {
		c.loaded = true
	}
}

func (c *Controller) noteRetry(gen uint64, retries int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen || c.closed {
		return false
	}
	c.retries = retries
	c.publishLocked()
	return true
}

func (c *Controller) finish(gen uint64, state State, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen || c.closed {
		return
	}
	c.state = state
	c.errMsg = msg
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.publishLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		State:   c.state,
		SoundID: c.soundID,
		Volume:  c.volume,
		Error:   c.errMsg,
		Retries: c.retries,
	}
}

func (c *Controller) publishLocked() {
	snap := c.snapshotLocked()
	for _, ch := range c.subs {
		select {
		case <-ch:
		default:
		}
		ch <- snap
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
