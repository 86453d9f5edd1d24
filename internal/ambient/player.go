package ambient

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	hclog "github.com/hashicorp/go-hclog"
)

// ErrNoPlayer is returned when no supported audio player is installed.
var ErrNoPlayer = errors.New("no audio player found (install mpv or ffplay)")

var errMediaClosed = errors.New("media closed")

// startupGrace is how long a freshly started player must stay alive before
// playback counts as started.
const startupGrace = 300 * time.Millisecond

// Backend describes an external player that can loop a URL or file.
type Backend struct {
	Name string
	Path string
	Args func(url string, volume int) []string
}

func mpvArgs(url string, volume int) []string {
	return []string{
		"--no-video",
		"--no-terminal",
		"--loop-file=inf",
		"--volume=" + strconv.Itoa(volume),
		url,
	}
}

func ffplayArgs(url string, volume int) []string {
	return []string{
		"-nodisp",
		"-loglevel", "quiet",
		"-loop", "0",
		"-volume", strconv.Itoa(volume),
		url,
	}
}

var knownBackends = []Backend{
	{Name: "mpv", Args: mpvArgs},
	{Name: "ffplay", Args: ffplayArgs},
}

// DetectBackend returns the first supported player found in PATH.
func DetectBackend() (Backend, bool) {
	return detectBackend(exec.LookPath)
}

func detectBackend(lookPath func(string) (string, error)) (Backend, bool) {
	for _, b := range knownBackends {
		if path, err := lookPath(b.Name); err == nil {
			b.Path = path
			return b, true
		}
	}
	return Backend{}, false
}

// NewExecFactory returns a Factory that plays through backend. A zero
// Backend yields media whose Load fails with ErrNoPlayer.
func NewExecFactory(backend Backend, logger hclog.Logger) Factory {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return func(sound Sound, volume int) Media {
		return &execMedia{
			backend: backend,
			logger:  logger.With("sound", sound.ID),
			volume:  volume,
		}
	}
}

type process struct {
	cmd  *exec.Cmd
	done chan struct{}
	err  error
}

func (p *process) exited() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// execMedia drives one player process. Pause stops the process and Play
// starts a new one from the beginning of the loop.
type execMedia struct {
	backend Backend
	logger  hclog.Logger

	mu     sync.Mutex
	url    string
	volume int
	proc   *process
	closed bool
}

var _ Media = (*execMedia)(nil)

func (m *execMedia) Load(_ context.Context, url string) error {
	if m.backend.Path == "" {
		return ErrNoPlayer
	}
	if !strings.Contains(url, "://") {
		if _, err := os.Stat(url); err != nil {
			return fmt.Errorf("open %s: %w", url, err)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return errMediaClosed
	}
	m.url = url
	return nil
}

func (m *execMedia) Play(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return errMediaClosed
	}
	if m.url == "" {
		m.mu.Unlock()
		return errors.New("media not loaded")
	}
	if m.proc != nil && !m.proc.exited() {
		m.mu.Unlock()
		return nil
	}
	proc, err := m.startLocked()
	m.mu.Unlock()
	if err != nil {
		return err
	}

	grace := time.NewTimer(startupGrace)
	defer grace.Stop()
	for {
		select {
		case <-proc.done:
			m.mu.Lock()
			current := m.proc
			m.mu.Unlock()
			if current != nil && current != proc {
				// SetVolume restarted the player; watch the replacement.
				proc = current
				grace.Reset(startupGrace)
				continue
			}
			if proc.err != nil {
				return fmt.Errorf("%s exited: %w", m.backend.Name, proc.err)
			}
			return fmt.Errorf("%s exited during startup", m.backend.Name)
		case <-ctx.Done():
			m.mu.Lock()
			if m.proc == proc {
				m.stopLocked()
			}
			m.mu.Unlock()
			return ctx.Err()
		case <-grace.C:
			return nil
		}
	}
}

func (m *execMedia) Pause() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked()
	return nil
}

// SetVolume restarts a running player at the new volume.
func (m *execMedia) SetVolume(volume int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.volume == volume {
		return nil
	}
	m.volume = volume
	if m.closed || m.proc == nil || m.proc.exited() {
		return nil
	}
	m.stopLocked()
	_, err := m.startLocked()
	return err
}

func (m *execMedia) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true
	m.stopLocked()
	return nil
}

func (m *execMedia) startLocked() (*process, error) {
	cmd := exec.Command(m.backend.Path, m.backend.Args(m.url, m.volume)...) //nolint:gosec // backend path comes from PATH lookup
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", m.backend.Name, err)
	}
	proc := &process{cmd: cmd, done: make(chan struct{})}
	go func() {
		proc.err = cmd.Wait()
		close(proc.done)
	}()
	m.proc = proc
	m.logger.Debug("player started", "player", m.backend.Name, "pid", cmd.Process.Pid, "volume", m.volume)
	return proc, nil
}

func (m *execMedia) stopLocked() {
	proc := m.proc
	if proc == nil {
		return
	}
	m.proc = nil
	if !proc.exited() {
		if err := proc.cmd.Process.Kill(); err != nil {
			m.logger.Debug("kill player failed", "error", err)
		}
	}
	<-proc.done
	m.logger.Debug("player stopped", "player", m.backend.Name)
}

// BackendNamed resolves a specific supported player from PATH.
func BackendNamed(name string) (Backend, error) {
	return backendNamed(name, exec.LookPath)
}

func backendNamed(name string, lookPath func(string) (string, error)) (Backend, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, b := range knownBackends {
		if b.Name != name {
			continue
		}
		path, err := lookPath(b.Name)
		if err != nil {
			return Backend{}, fmt.Errorf("find %s: %w", name, err)
		}
		b.Path = path
		return b, nil
	}
	return Backend{}, fmt.Errorf("unsupported player %q (want mpv or ffplay)", name)
}
