package ambient

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/five82/sanctuary/internal/prefs"
)

type fakeMedia struct {
	mu       sync.Mutex
	sound    Sound
	loadErrs []error
	playErrs []error
	loads    int
	plays    int
	pauses   int
	closes   int
	volumes  []int
}

func (m *fakeMedia) Load(context.Context, string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
	return pop(&m.loadErrs)
}

func (m *fakeMedia) Play(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.plays++
	return pop(&m.playErrs)
}

func (m *fakeMedia) Pause() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pauses++
	return nil
}

func (m *fakeMedia) SetVolume(v int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volumes = append(m.volumes, v)
	return nil
}

func (m *fakeMedia) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closes++
	return nil
}

func (m *fakeMedia) counts() (loads, plays, pauses, closes int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loads, m.plays, m.pauses, m.closes
}

func pop(errs *[]error) error {
	if len(*errs) == 0 {
		return nil
	}
	err := (*errs)[0]
	*errs = (*errs)[1:]
	return err
}

type script struct {
	loadErrs []error
	playErrs []error
}

type harness struct {
	mu      sync.Mutex
	scripts map[string]script
	created []*fakeMedia
	delays  []time.Duration
	store   *prefs.MemoryStore
}

func newHarness() *harness {
	return &harness{scripts: make(map[string]script), store: prefs.NewMemory()}
}

func (h *harness) factory(sound Sound, volume int) Media {
	h.mu.Lock()
	defer h.mu.Unlock()
	s := h.scripts[sound.ID]
	m := &fakeMedia{
		sound:    sound,
		loadErrs: append([]error(nil), s.loadErrs...),
		playErrs: append([]error(nil), s.playErrs...),
		volumes:  []int{volume},
	}
	h.created = append(h.created, m)
	return m
}

func (h *harness) sleep(ctx context.Context, d time.Duration) error {
	h.mu.Lock()
	h.delays = append(h.delays, d)
	h.mu.Unlock()
	return ctx.Err()
}

func (h *harness) media() []*fakeMedia {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*fakeMedia(nil), h.created...)
}

func (h *harness) sleeps() []time.Duration {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]time.Duration(nil), h.delays...)
}

func (h *harness) controller(t *testing.T, autoplay bool) *Controller {
	t.Helper()
	c := New(Options{
		Factory:    h.factory,
		Prefs:      h.store,
		Autoplay:   autoplay,
		RetryDelay: 500 * time.Millisecond,
		Sleep:      h.sleep,
	})
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func waitState(t *testing.T, c *Controller, want State) Snapshot {
	t.Helper()
	require.Eventually(t, func() bool {
		return c.Snapshot().State == want
	}, 2*time.Second, 5*time.Millisecond, "want state %s", want)
	return c.Snapshot()
}

func TestController_RetryBudgetThenError(t *testing.T) {
	h := newHarness()
	boom := errors.New("boom")
	h.scripts["rain"] = script{loadErrs: []error{boom, boom, boom, boom, boom}}
	c := h.controller(t, true)

	require.NoError(t, c.Play("rain"))
	snap := waitState(t, c, StateError)

	require.Equal(t, "Playback failed: load Rain: boom", snap.Error)
	require.Equal(t, 3, snap.Retries)
	require.Equal(t, []time.Duration{500 * time.Millisecond, time.Second, 1500 * time.Millisecond}, h.sleeps())

	loads, plays, _, _ := h.media()[0].counts()
	require.Equal(t, 4, loads, "first attempt plus three retries")
	require.Zero(t, plays)
}

func TestController_RetryThenPlay(t *testing.T) {
	h := newHarness()
	h.scripts["forest"] = script{playErrs: []error{errors.New("stall"), errors.New("stall")}}
	c := h.controller(t, true)

	require.NoError(t, c.Play("forest"))
	snap := waitState(t, c, StatePlaying)
	require.Empty(t, snap.Error)
	require.Len(t, h.sleeps(), 2)

	loads, plays, _, _ := h.media()[0].counts()
	require.Equal(t, 1, loads, "a loaded source is not reloaded on retry")
	require.Equal(t, 3, plays)
}

func TestController_AutoplayBlockedOnRestore(t *testing.T) {
	h := newHarness()
	require.NoError(t, prefs.SetSound(h.store, "waves"))
	c := h.controller(t, false)
	require.Equal(t, "waves", c.Snapshot().SoundID)
	require.Equal(t, StateIdle, c.Snapshot().State)

	require.NoError(t, c.Restore())
	snap := waitState(t, c, StateBlocked)
	require.True(t, snap.NeedsInteraction())
	require.Zero(t, snap.Retries)
	require.Empty(t, h.sleeps(), "autoplay rejection consumes no retry")

	require.NoError(t, c.Toggle())
	waitState(t, c, StatePlaying)

	media := h.media()
	require.Len(t, media, 1, "the gesture reuses the loaded media")
	loads, plays, _, closes := media[0].counts()
	require.Equal(t, 1, loads)
	require.Equal(t, 1, plays)
	require.Zero(t, closes)
}

func TestController_MediaReportsAutoplayBlocked(t *testing.T) {
	h := newHarness()
	h.scripts["lofi"] = script{playErrs: []error{fmt.Errorf("device busy: %w", ErrAutoplayBlocked)}}
	c := h.controller(t, true)

	require.NoError(t, c.Play("lofi"))
	waitState(t, c, StateBlocked)
	require.Empty(t, h.sleeps())
}

func TestController_SwitchTearsDownOldMediaOnce(t *testing.T) {
	h := newHarness()
	c := h.controller(t, true)

	require.NoError(t, c.Play("rain"))
	waitState(t, c, StatePlaying)
	require.NoError(t, c.Play("rain"), "selecting the playing sound is a no-op")
	require.Len(t, h.media(), 1)

	require.NoError(t, c.Play("forest"))
	waitState(t, c, StatePlaying)
	require.Equal(t, "forest", c.Snapshot().SoundID)
	require.Equal(t, "forest", prefs.Sound(h.store))

	media := h.media()
	require.Len(t, media, 2)
	_, _, _, closes := media[0].counts()
	require.Equal(t, 1, closes)

	require.NoError(t, c.Close())
	_, _, _, closes = media[0].counts()
	require.Equal(t, 1, closes, "old media is never closed twice")
	_, _, _, closes = media[1].counts()
	require.Equal(t, 1, closes)
	require.ErrorIs(t, c.Play("rain"), ErrClosed)
}

func TestController_PauseAndToggle(t *testing.T) {
	h := newHarness()
	c := h.controller(t, true)

	require.ErrorIs(t, c.Toggle(), ErrNoSound)

	require.NoError(t, c.Play("coffee-shop"))
	waitState(t, c, StatePlaying)

	require.NoError(t, c.Toggle())
	require.Equal(t, StatePaused, c.Snapshot().State)
	_, _, pauses, _ := h.media()[0].counts()
	require.Equal(t, 1, pauses)

	require.NoError(t, c.Toggle())
	waitState(t, c, StatePlaying)
	require.Len(t, h.media(), 1)
}

func TestController_PauseCancelsRetries(t *testing.T) {
	h := newHarness()
	boom := errors.New("offline")
	h.scripts["rain"] = script{loadErrs: []error{boom, boom, boom, boom}}
	release := make(chan struct{})
	c := New(Options{
		Factory: h.factory,
		Prefs:   h.store,
		Sleep: func(ctx context.Context, d time.Duration) error {
			select {
			case <-ctx.Done():
				close(release)
				return ctx.Err()
			case <-time.After(5 * time.Second):
				return nil
			}
		},
	})
	t.Cleanup(func() { _ = c.Close() })

	require.NoError(t, c.Play("rain"))
	require.Eventually(t, func() bool { return c.Snapshot().Retries == 1 }, 2*time.Second, 5*time.Millisecond)

	require.NoError(t, c.Pause())
	<-release
	require.Equal(t, StatePaused, c.Snapshot().State)
	loads, _, _, _ := h.media()[0].counts()
	require.Equal(t, 1, loads)
}

func TestController_Volume(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.store.Set(prefs.KeyAmbientVolume, "loud"))
	c := h.controller(t, true)
	require.Equal(t, prefs.DefaultVolume, c.Snapshot().Volume)

	require.NoError(t, c.SetVolume(150))
	require.Equal(t, 100, c.Snapshot().Volume)
	require.Equal(t, 100, prefs.Volume(h.store))

	require.NoError(t, c.Play("rain"))
	waitState(t, c, StatePlaying)
	require.NoError(t, c.SetVolume(-4))
	require.Equal(t, 0, prefs.Volume(h.store))

	m := h.media()[0]
	m.mu.Lock()
	defer m.mu.Unlock()
	require.Equal(t, []int{100, 0}, m.volumes, "created at the stored volume then updated live")
}

func TestController_UnknownSound(t *testing.T) {
	c := newHarness().controller(t, true)
	require.ErrorIs(t, c.Play("thunder"), ErrUnknownSound)
	require.Equal(t, StateIdle, c.Snapshot().State)
}

func TestController_IgnoresStaleStoredSound(t *testing.T) {
	h := newHarness()
	require.NoError(t, prefs.SetSound(h.store, "removed"))
	c := h.controller(t, true)
	require.Empty(t, c.Snapshot().SoundID)
	require.NoError(t, c.Restore())
	require.Empty(t, h.media())
}

func TestController_Subscribe(t *testing.T) {
	c := newHarness().controller(t, true)
	updates, cancel := c.Subscribe()

	first := <-updates
	require.Equal(t, StateIdle, first.State)

	require.NoError(t, c.Play("rain"))
	require.Eventually(t, func() bool {
		select {
		case snap := <-updates:
			return snap.State == StatePlaying
		default:
			return false
		}
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	cancel()
	for range updates {
	}
}
