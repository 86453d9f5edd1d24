package actortest_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/five82/sanctuary/internal/actor"
	"github.com/five82/sanctuary/internal/actor/actortest"
)

func newClient(t *testing.T) (*actortest.Server, *actor.Client) {
	t.Helper()
	srv, ts := actortest.Start(t)
	c, err := actor.NewClient(ts.URL, 2*time.Second)
	require.NoError(t, err)
	return srv, c
}

func TestSessionsRoundTrip(t *testing.T) {
	srv, c := newClient(t)
	ctx := context.Background()
	start := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)

	require.NoError(t, c.RecordSession(ctx, actor.SessionDraft{
		Start: start, End: start.Add(25 * time.Minute), Label: "Pomodoro", Color: "#ef4444", Tags: []string{"math"},
	}))
	require.NoError(t, c.RecordSession(ctx, actor.SessionDraft{Start: start, End: start.Add(time.Hour)}))

	all, err := c.ExportSessions(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "Study Session", all[1].LabelText)
	require.Equal(t, 25*time.Minute, all[0].Length())

	byTag, err := c.SessionsByTag(ctx, "math")
	require.NoError(t, err)
	require.Len(t, byTag, 1)

	byLabel, err := c.SessionsByLabel(ctx, "Pomodoro")
	require.NoError(t, err)
	require.Len(t, byLabel, 1)

	count, err := c.SessionCount(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, count)

	avg, err := c.AverageSessionDuration(ctx)
	require.NoError(t, err)
	require.Equal(t, 42*time.Minute+30*time.Second, avg)

	tags, err := c.Tags(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"math"}, tags)

	for _, id := range srv.RequestIDs() {
		require.NotEmpty(t, id)
	}
}

func TestPresetsAndGoals(t *testing.T) {
	_, c := newClient(t)
	ctx := context.Background()

	require.NoError(t, c.SavePreset(ctx, "deep", actor.TimerPreset{Duration: int64(50 * time.Minute), LabelText: "Deep Work", ColorTheme: "#10b981"}))
	require.NoError(t, c.SavePreset(ctx, "deep", actor.TimerPreset{Duration: int64(45 * time.Minute), LabelText: "Deep Work", ColorTheme: "#10b981"}))
	presets, err := c.Presets(ctx)
	require.NoError(t, err)
	require.Len(t, presets, 1)
	require.Equal(t, 45*time.Minute, presets[0].Length())

	err = c.SavePreset(ctx, "zero", actor.TimerPreset{})
	require.True(t, errors.Is(err, actor.ErrValidation))

	require.NoError(t, c.SetGoal(ctx, "daily", actor.GoalDaily, 2))
	require.NoError(t, c.UpdateGoalProgress(ctx, "daily", 1.5))
	require.NoError(t, c.UpdateGoalProgress(ctx, "daily", 1))
	goals, err := c.Goals(ctx)
	require.NoError(t, err)
	require.Len(t, goals, 1)
	require.True(t, goals[0].Achieved)
	require.EqualValues(t, 1, goals[0].Streak)
	require.InDelta(t, 2.5, goals[0].Progress, 1e-9)

	err = c.UpdateGoalProgress(ctx, "nope", 1)
	require.True(t, errors.Is(err, actor.ErrNotFound))
}

func TestNamesWithSlashRoundTrip(t *testing.T) {
	_, c := newClient(t)
	ctx := context.Background()

	require.NoError(t, c.SavePreset(ctx, "Math/Physics", actor.TimerPreset{Duration: int64(25 * time.Minute), LabelText: "Math"}))
	presets, err := c.Presets(ctx)
	require.NoError(t, err)
	require.Len(t, presets, 1)
	require.Equal(t, "Math/Physics", presets[0].Name)

	require.NoError(t, c.SetGoal(ctx, "daily/main", actor.GoalDaily, 2))
	require.NoError(t, c.UpdateGoalProgress(ctx, "daily/main", 1))
	goals, err := c.Goals(ctx)
	require.NoError(t, err)
	require.Len(t, goals, 1)
	require.Equal(t, "daily/main", goals[0].Name)
	require.InDelta(t, 1, goals[0].Progress, 1e-9)
}

func TestWallpapersUploadAndFetch(t *testing.T) {
	srv, c := newClient(t)
	ctx := context.Background()

	_, err := c.Wallpaper(ctx, "beach")
	require.ErrorIs(t, err, actor.ErrNotFound)

	data := bytes.Repeat([]byte{0xAB}, 64*1024)
	var progress []int
	require.NoError(t, c.UploadWallpaper(ctx, "beach", bytes.NewReader(data), int64(len(data)), func(p int) {
		progress = append(progress, p)
	}))
	require.NotEmpty(t, progress)
	require.Equal(t, 100, progress[len(progress)-1])
	for i := 1; i < len(progress); i++ {
		require.Greater(t, progress[i], progress[i-1])
	}

	stored, ok := srv.WallpaperData("beach")
	require.True(t, ok)
	require.Equal(t, data, stored)

	names, err := c.ListWallpapers(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"beach"}, names)

	blobs, err := c.Wallpapers(ctx)
	require.NoError(t, err)
	require.Len(t, blobs, 1)
	require.Contains(t, blobs[0].URL, "/blobs/beach")

	blob, err := c.Wallpaper(ctx, "beach")
	require.NoError(t, err)
	require.Equal(t, "beach", blob.Name)
}

func TestFailNextInjectsStatus(t *testing.T) {
	srv, c := newClient(t)
	srv.FailNext(http.StatusServiceUnavailable, 1)

	_, err := c.Presets(context.Background())
	require.ErrorIs(t, err, actor.ErrServer)

	_, err = c.Presets(context.Background())
	require.NoError(t, err)
}
