package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything Sanctuary reads from config.toml.
type Config struct {
	APIBind        string
	RequestTimeout time.Duration
	PollInterval   time.Duration
	LogFile        string
	LogLevel       string
	LogJSON        bool
	Timer          TimerConfig
	Ambient        AmbientConfig
}

// TimerConfig holds the default phase lengths in minutes.
type TimerConfig struct {
	WorkMinutes       int
	ShortBreakMinutes int
	LongBreakMinutes  int
	StudyMinutes      int
	// Chime plays a tone when a phase ends.
	Chime bool
}

// AmbientConfig controls the ambient sound player.
type AmbientConfig struct {
	// Player forces a specific player binary; empty means auto-detect.
	Player   string
	Autoplay bool
	Sounds   []SoundEntry
}

// SoundEntry adds or overrides an entry in the ambient sound catalog.
type SoundEntry struct {
	ID   string `toml:"id"`
	Name string `toml:"name"`
	URL  string `toml:"url"`
	Icon string `toml:"icon"`
}

const (
	defaultConfigPath     = "~/.config/sanctuary/config.toml"
	defaultLogFile        = "~/.local/state/sanctuary/sanctuary.log"
	defaultAPIBind        = "127.0.0.1:4943"
	defaultLogLevel       = "info"
	defaultRequestTimeout = 5 * time.Second
	defaultPollInterval   = 10 * time.Second

	defaultWorkMinutes       = 25
	defaultShortBreakMinutes = 5
	defaultLongBreakMinutes  = 15
	defaultStudyMinutes      = 40
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIBind:        defaultAPIBind,
		RequestTimeout: defaultRequestTimeout,
		PollInterval:   defaultPollInterval,
		LogFile:        mustExpand(defaultLogFile),
		LogLevel:       defaultLogLevel,
		Timer: TimerConfig{
			WorkMinutes:       defaultWorkMinutes,
			ShortBreakMinutes: defaultShortBreakMinutes,
			LongBreakMinutes:  defaultLongBreakMinutes,
			StudyMinutes:      defaultStudyMinutes,
			Chime:             true,
		},
	}
}

type rawConfig struct {
	APIBind        string `toml:"api_bind"`
	RequestTimeout string `toml:"request_timeout"`
	PollInterval   string `toml:"poll_interval"`
	LogFile        string `toml:"log_file"`
	LogLevel       string `toml:"log_level"`
	LogJSON        bool   `toml:"log_json"`
	Timer          struct {
		WorkMinutes       int   `toml:"work_minutes"`
		ShortBreakMinutes int   `toml:"short_break_minutes"`
		LongBreakMinutes  int   `toml:"long_break_minutes"`
		StudyMinutes      int   `toml:"study_minutes"`
		Chime             *bool `toml:"chime"`
	} `toml:"timer"`
	Ambient struct {
		Player   string       `toml:"player"`
		Autoplay bool         `toml:"autoplay"`
		Sounds   []SoundEntry `toml:"sounds"`
	} `toml:"ambient"`
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if bind := strings.TrimSpace(raw.APIBind); bind != "" {
		cfg.APIBind = bind
	}
	if cfg.RequestTimeout, err = parseDuration("request_timeout", raw.RequestTimeout, defaultRequestTimeout); err != nil {
		return Config{}, err
	}
	if cfg.PollInterval, err = parseDuration("poll_interval", raw.PollInterval, defaultPollInterval); err != nil {
		return Config{}, err
	}
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}
	if level := strings.TrimSpace(raw.LogLevel); level != "" {
		cfg.LogLevel = strings.ToLower(level)
	}
	cfg.LogJSON = raw.LogJSON

	cfg.Timer.WorkMinutes = positiveOr(raw.Timer.WorkMinutes, defaultWorkMinutes)
	cfg.Timer.ShortBreakMinutes = positiveOr(raw.Timer.ShortBreakMinutes, defaultShortBreakMinutes)
	cfg.Timer.LongBreakMinutes = positiveOr(raw.Timer.LongBreakMinutes, defaultLongBreakMinutes)
	cfg.Timer.StudyMinutes = positiveOr(raw.Timer.StudyMinutes, defaultStudyMinutes)
	if raw.Timer.Chime != nil {
		cfg.Timer.Chime = *raw.Timer.Chime
	}

	cfg.Ambient.Player = strings.TrimSpace(raw.Ambient.Player)
	cfg.Ambient.Autoplay = raw.Ambient.Autoplay
	for _, entry := range raw.Ambient.Sounds {
		entry.ID = strings.TrimSpace(entry.ID)
		entry.URL = strings.TrimSpace(entry.URL)
		if entry.ID == "" || entry.URL == "" {
			continue
		}
		if strings.TrimSpace(entry.Name) == "" {
			entry.Name = entry.ID
		}
		cfg.Ambient.Sounds = append(cfg.Ambient.Sounds, entry)
	}

	return cfg, nil
}

// DefaultPath returns the unexpanded default config location.
func DefaultPath() string {
	return defaultConfigPath
}

func parseDuration(field, value string, fallback time.Duration) (time.Duration, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(trimmed)
	if err != nil {
		return 0, fmt.Errorf("parse config: %s: %w", field, err)
	}
	if d <= 0 {
		return fallback, nil
	}
	return d, nil
}

func positiveOr(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

func mustExpand(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
