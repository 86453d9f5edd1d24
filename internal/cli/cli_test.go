package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/five82/sanctuary/internal/actor"
	"github.com/five82/sanctuary/internal/actor/actortest"
	"github.com/five82/sanctuary/internal/ambient"
	"github.com/five82/sanctuary/internal/clock"
	"github.com/five82/sanctuary/internal/prefs"
)

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

type fixture struct {
	server    *actortest.Server
	config    string
	prefsPath string
	clock     *clock.Manual
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	server, ts := actortest.Start(t)
	dir := t.TempDir()
	config := filepath.Join(dir, "config.toml")
	body := fmt.Sprintf("api_bind = %q\nlog_file = %q\n\n[ambient]\nplayer = \"\"\n",
		ts.URL, filepath.Join(dir, "sanctuary.log"))
	require.NoError(t, os.WriteFile(config, []byte(body), 0o600))
	return &fixture{
		server:    server,
		config:    config,
		prefsPath: filepath.Join(dir, "prefs.toml"),
		clock:     clock.NewManual(testNow),
	}
}

func (f *fixture) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand(f.clock)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", f.config, "--prefs", f.prefsPath}, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func (f *fixture) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := f.run(t, args...)
	require.NoError(t, err, "sanctuary %s", strings.Join(args, " "))
	return out
}

func (f *fixture) addSession(start time.Time, length time.Duration, label string, tags ...string) {
	f.server.AddSession(actor.TimerSession{
		StartTime:  actor.ToWire(start),
		EndTime:    actor.ToWire(start.Add(length)),
		Duration:   int64(length),
		LabelText:  label,
		ColorTheme: "#3b82f6",
		Tags:       tags,
	})
}

func TestSessionRecordAndList(t *testing.T) {
	f := newFixture(t)

	out := f.mustRun(t, "session", "record", "--minutes", "45", "--label", "Pomodoro", "--tags", "math, exam", "--tags", "math")
	require.Contains(t, out, "recorded Pomodoro session (45m0s)")

	sessions := f.server.Sessions()
	require.Len(t, sessions, 1)
	require.True(t, testNow.Equal(sessions[0].End()))
	require.Equal(t, 45*time.Minute, sessions[0].Length())
	require.Equal(t, []string{"math", "exam"}, sessions[0].Tags)

	f.addSession(testNow.Add(-48*time.Hour), time.Hour, "Stopwatch")
	out = f.mustRun(t, "session", "list")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	require.Contains(t, lines[0], "START")
	require.Contains(t, lines[1], "Pomodoro", "newest first")
	require.Contains(t, lines[2], "Stopwatch")

	out = f.mustRun(t, "session", "list", "--tag", "exam")
	require.NotContains(t, out, "Stopwatch")

	out = f.mustRun(t, "session", "list", "--label", "Animedoro")
	require.Equal(t, "no sessions\n", out)
}

func TestSessionRecordRequiresLength(t *testing.T) {
	f := newFixture(t)
	_, err := f.run(t, "session", "record")
	require.Error(t, err)
	_, err = f.run(t, "session", "record", "--start", testNow.Add(time.Hour).Format(time.RFC3339))
	require.Error(t, err)
	require.Empty(t, f.server.Sessions())
}

func TestExportSessionsCSV(t *testing.T) {
	f := newFixture(t)
	f.addSession(testNow.Add(-time.Hour), 30*time.Minute, "Stopwatch", "math")

	out := f.mustRun(t, "export", "sessions")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "Start Time,End Time,Duration (hours),Label,Color,Tags", lines[0])
	require.Contains(t, lines[1], "Stopwatch")

	path := filepath.Join(t.TempDir(), "sessions.json")
	f.mustRun(t, "export", "sessions", "-f", "json", "-o", path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"labelText": "Stopwatch"`)
}

func TestExportRejectsUnknownKind(t *testing.T) {
	f := newFixture(t)
	_, err := f.run(t, "export", "quotes")
	require.Error(t, err)
	_, err = f.run(t, "export", "goals", "-f", "xml")
	require.Error(t, err)
}

func TestStats(t *testing.T) {
	f := newFixture(t)
	f.addSession(testNow.Add(-2*time.Hour), 90*time.Minute, "Pomodoro", "math")
	f.addSession(testNow.Add(-3*24*time.Hour), 30*time.Minute, "Stopwatch")
	f.mustRun(t, "goal", "set", "Daily Study Goal", "--hours", "2")

	out := f.mustRun(t, "stats")
	require.Contains(t, out, "Today:")
	require.Contains(t, out, "1.50h")
	require.Contains(t, out, "Sessions:")
	require.Contains(t, out, "Average:")
	require.Contains(t, out, "Last 7 days")
	require.Contains(t, out, "Daily Study Goal")

	out = f.mustRun(t, "stats", "--tag", "math")
	require.Contains(t, out, "#math")
	require.Contains(t, out, "This Week:")
}

func TestPresets(t *testing.T) {
	f := newFixture(t)

	_, err := f.run(t, "preset", "save", "Deep Work")
	require.Error(t, err, "minutes are required")

	f.mustRun(t, "preset", "save", "Deep Work", "--minutes", "50", "--label", "Deep")
	presets := f.server.Presets()
	require.Len(t, presets, 1)
	require.Equal(t, 50*time.Minute, presets[0].Length())
	require.Equal(t, "Deep", presets[0].LabelText)

	out := f.mustRun(t, "preset", "list")
	require.Contains(t, out, "Deep Work")
	require.Contains(t, out, "50:00")
}

func TestGoals(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, "no goals\n", f.mustRun(t, "goal", "list"))

	f.mustRun(t, "goal", "set", "Daily Study Goal", "--hours", "2")
	f.mustRun(t, "goal", "progress", "Daily Study Goal", "--hours", "2.5")

	goals := f.server.Goals()
	require.Len(t, goals, 1)
	require.True(t, goals[0].Achieved)
	require.EqualValues(t, 1, goals[0].Streak)

	out := f.mustRun(t, "goal", "list")
	require.Contains(t, out, "2.50/2.00h")
	require.Contains(t, out, "100%")

	_, err := f.run(t, "goal", "progress", "Missing", "--hours", "1")
	require.Error(t, err)
}

func TestWallpapers(t *testing.T) {
	f := newFixture(t)

	out := f.mustRun(t, "wallpaper", "list")
	require.Contains(t, out, "anime-study-1")

	f.mustRun(t, "wallpaper", "select", "ghibli-cafe-1")
	store, err := prefs.Open(f.prefsPath)
	require.NoError(t, err)
	require.Equal(t, "ghibli-cafe-1", prefs.Wallpaper(store))

	_, err = f.run(t, "wallpaper", "select", "nope")
	require.Error(t, err)

	image := filepath.Join(t.TempDir(), "My Desk.png")
	require.NoError(t, os.WriteFile(image, []byte("png-bytes"), 0o600))
	out = f.mustRun(t, "wallpaper", "upload", image, "--name", "desk", "--select")
	require.Contains(t, out, "uploaded")

	data, ok := f.server.WallpaperData("desk")
	require.True(t, ok)
	require.Equal(t, "png-bytes", string(data))

	out = f.mustRun(t, "wallpaper", "list")
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "*") {
			require.Contains(t, line, "desk")
		}
	}
}

func TestTags(t *testing.T) {
	f := newFixture(t)
	f.addSession(testNow.Add(-time.Hour), time.Hour, "Stopwatch", "math", "exam")
	f.addSession(testNow.Add(-2*time.Hour), time.Hour, "Stopwatch", "math")

	out := f.mustRun(t, "tags")
	require.Contains(t, out, "math")
	require.Contains(t, out, "exam")
}

func TestSound(t *testing.T) {
	f := newFixture(t)

	_, err := f.run(t, "sound", "play", "thunder")
	require.ErrorIs(t, err, ambient.ErrUnknownSound)

	f.mustRun(t, "sound", "volume", "140")
	out := f.mustRun(t, "sound", "list")
	require.Contains(t, out, "coffee-shop")
	require.Contains(t, out, "volume: 100%")

	_, err = f.run(t, "sound", "volume", "loud")
	require.Error(t, err)
}

func TestSpotify(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, "not connected\n", f.mustRun(t, "spotify", "status"))

	_, err := f.run(t, "spotify", "connect", "https://localhost/callback#error=access_denied")
	require.ErrorIs(t, err, prefs.ErrNoToken)

	f.mustRun(t, "spotify", "connect", "https://localhost/callback#access_token=abc&token_type=Bearer&expires_in=3600")
	require.Equal(t, "connected, expires in 1h0m0s\n", f.mustRun(t, "spotify", "status"))

	f.clock.Advance(2 * time.Hour)
	require.Equal(t, "token expired\n", f.mustRun(t, "spotify", "status"))

	f.mustRun(t, "spotify", "logout")
	require.Equal(t, "not connected\n", f.mustRun(t, "spotify", "status"))
}

func TestLogs(t *testing.T) {
	f := newFixture(t)
	f.mustRun(t, "session", "record", "--minutes", "10")

	out := f.mustRun(t, "logs", "--plain")
	require.Contains(t, out, "session recorded")

	out = f.mustRun(t, "logs", "--plain", "--level", "error")
	require.NotContains(t, out, "session recorded")
}
