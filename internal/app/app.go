package app

import (
	"context"
	"fmt"
	"io"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"github.com/five82/sanctuary/internal/actor"
	"github.com/five82/sanctuary/internal/ambient"
	"github.com/five82/sanctuary/internal/chime"
	"github.com/five82/sanctuary/internal/config"
	"github.com/five82/sanctuary/internal/logging"
	"github.com/five82/sanctuary/internal/prefs"
	"github.com/five82/sanctuary/internal/state"
	"github.com/five82/sanctuary/internal/ui"
)

// Options configure the Sanctuary application.
type Options struct {
	ConfigPath string // empty uses ~/.config/sanctuary/config.toml
	PrefsPath  string // empty uses ~/.config/sanctuary/prefs.toml
	LogLevel   string // overrides the config log level when set
	PollEvery  time.Duration
}

// Env holds the dependencies shared by the TUI and the CLI commands.
type Env struct {
	Config config.Config
	Logger hclog.Logger
	Prefs  *prefs.FileStore
	Client *actor.Client

	logCloser io.Closer
}

// Open loads config and preferences, opens the log file and builds the actor
// client.
func Open(opts Options) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.PollEvery > 0 {
		cfg.PollInterval = opts.PollEvery
	}

	logger, closer, err := logging.New(logging.Options{Path: cfg.LogFile, Level: cfg.LogLevel, JSON: cfg.LogJSON})
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	store, err := prefs.Open(opts.PrefsPath)
	if err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("open prefs: %w", err)
	}

	client, err := actor.NewClient(cfg.APIBind, cfg.RequestTimeout)
	if err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("init actor client: %w", err)
	}

	logger.Debug("environment ready", "api", client.BaseURL(), "prefs", store.Path())
	return &Env{Config: cfg, Logger: logger, Prefs: store, Client: client, logCloser: closer}, nil
}

// Close releases the log file.
func (e *Env) Close() error {
	if e.logCloser == nil {
		return nil
	}
	return e.logCloser.Close()
}

// NewAmbient builds the ambient controller over the configured player.
func (e *Env) NewAmbient(autoplay bool) *ambient.Controller {
	logger := e.Logger.Named("ambient")
	backend, err := resolveBackend(e.Config.Ambient.Player)
	if err != nil {
		logger.Warn("no ambient player", "error", err)
	} else {
		logger.Debug("ambient player", "name", backend.Name, "path", backend.Path)
	}
	return ambient.New(ambient.Options{
		Sounds:   ambient.Catalog(e.Config.Ambient.Sounds),
		Factory:  ambient.NewExecFactory(backend, logger),
		Prefs:    e.Prefs,
		Logger:   logger,
		Autoplay: autoplay,
	})
}

func resolveBackend(name string) (ambient.Backend, error) {
	if name != "" {
		return ambient.BackendNamed(name)
	}
	backend, ok := ambient.DetectBackend()
	if !ok {
		return ambient.Backend{}, ambient.ErrNoPlayer
	}
	return backend, nil
}

// Run boots the Sanctuary TUI until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	env, err := Open(opts)
	if err != nil {
		return err
	}
	defer env.Close()

	logger := env.Logger
	logger.Info("starting", "api", env.Client.BaseURL())

	store := state.NewStore(nil)

	// Populate the store before the UI starts; failures show as offline.
	_ = Refresh(ctx, store, env.Client, logger.Named("poller"))
	StartPoller(ctx, store, env.Client, env.Config.PollInterval, logger.Named("poller"))

	controller := env.NewAmbient(env.Config.Ambient.Autoplay)
	defer func() {
		if err := controller.Close(); err != nil {
			logger.Warn("close ambient", "error", err)
		}
	}()

	err = ui.Run(ui.Options{
		Context: ctx,
		Client:  env.Client,
		Store:   store,
		Prefs:   env.Prefs,
		Ambient: controller,
		Chime:   chime.New(env.Config.Timer.Chime, logger.Named("chime")),
		Timer:   env.Config.Timer,
		Logger:  logger,
		Refresh: func(ctx context.Context) error {
			return Refresh(ctx, store, env.Client, logger.Named("poller"))
		},
	})
	logger.Info("stopped", "error", err)
	return err
}
