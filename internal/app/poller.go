package app

import (
	"context"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"github.com/five82/sanctuary/internal/actor"
	"github.com/five82/sanctuary/internal/state"
)

const (
	defaultPollInterval = 10 * time.Second
	maxBackoff          = 30 * time.Second
)

// StartPoller launches a background goroutine that refreshes the store,
// backing off while the actor is unreachable. It returns immediately.
func StartPoller(ctx context.Context, store *state.Store, client actor.Actor, interval time.Duration, logger hclog.Logger) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
			_ = Refresh(ctx, store, client, logger)
			timer.Reset(calculateBackoff(store.Snapshot().ConsecutiveFailures, interval))
		}
	}()
}

// Refresh fetches every actor record once and updates the store.
func Refresh(ctx context.Context, store *state.Store, client actor.Actor, logger hclog.Logger) error {
	data, err := fetchAll(ctx, client)
	if err != nil {
		store.Update(state.Data{}, err)
		logger.Warn("actor poll failed", "error", err, "kind", actor.KindOf(err).String())
		return err
	}
	store.Update(data, nil)
	logger.Debug("actor poll ok", "sessions", len(data.Sessions), "presets", len(data.Presets), "goals", len(data.Goals))
	return nil
}

func fetchAll(ctx context.Context, client actor.Actor) (state.Data, error) {
	var data state.Data
	var err error
	if data.Sessions, err = client.ExportSessions(ctx); err != nil {
		return state.Data{}, err
	}
	if data.Presets, err = client.Presets(ctx); err != nil {
		return state.Data{}, err
	}
	if data.Goals, err = client.Goals(ctx); err != nil {
		return state.Data{}, err
	}
	if data.Tags, err = client.Tags(ctx); err != nil {
		return state.Data{}, err
	}
	if data.Wallpapers, err = client.Wallpapers(ctx); err != nil {
		return state.Data{}, err
	}
	return data, nil
}

// calculateBackoff doubles the poll interval per consecutive failure, capped
// at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	if failures > 16 {
		return maxBackoff
	}
	backoff := base << failures
	if backoff > maxBackoff || backoff <= 0 {
		return maxBackoff
	}
	return backoff
}
