package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/sanctuary/internal/actor"
	"github.com/five82/sanctuary/internal/ambient"
	"github.com/five82/sanctuary/internal/export"
	"github.com/five82/sanctuary/internal/state"
	"github.com/five82/sanctuary/internal/wallpaper"
)

type tickMsg time.Time

type snapshotMsg state.Snapshot

type ambientMsg struct {
	snapshot ambient.Snapshot
	updates  <-chan ambient.Snapshot
}

type sessionSavedMsg struct {
	session actor.TimerSession
	mode    Mode
	err     error
}

// actionDoneMsg reports a finished actor call. refresh asks for the data
// snapshot to be re-fetched.
type actionDoneMsg struct {
	text    string
	err     error
	refresh bool
}

type uploadMsg struct {
	percent int
	id      string
	err     error
	done    bool
	next    <-chan uploadMsg
}

type toastKind int

const (
	toastInfo toastKind = iota
	toastSuccess
	toastError
)

type toastMsg struct {
	text string
	kind toastKind
}

type toast struct {
	text  string
	kind  toastKind
	until time.Time
}

func (t *toast) expire(now time.Time) {
	if t.text != "" && !now.Before(t.until) {
		*t = toast{}
	}
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func waitAmbientCmd(updates <-chan ambient.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-updates
		if !ok {
			return nil
		}
		return ambientMsg{snapshot: snap, updates: updates}
	}
}

func errorToast(prefix string, err error) tea.Msg {
	return toastMsg{text: fmt.Sprintf("%s: %v", prefix, err), kind: toastError}
}

func restoreAmbientCmd(c *ambient.Controller) tea.Cmd {
	return func() tea.Msg {
		if err := c.Restore(); err != nil {
			return errorToast("Restore sound", err)
		}
		return nil
	}
}

func toggleAmbientCmd(c *ambient.Controller) tea.Cmd {
	if c == nil {
		return nil
	}
	return func() tea.Msg {
		err := c.Toggle()
		switch {
		case errors.Is(err, ambient.ErrNoSound):
			return toastMsg{text: "Pick a sound first (view 3)", kind: toastInfo}
		case err != nil:
			return errorToast("Sound", err)
		}
		return nil
	}
}

func playSoundCmd(c *ambient.Controller, id string) tea.Cmd {
	if c == nil {
		return nil
	}
	return func() tea.Msg {
		if err := c.Play(id); err != nil {
			return errorToast("Sound", err)
		}
		return nil
	}
}

func volumeCmd(c *ambient.Controller, volume int) tea.Cmd {
	if c == nil {
		return nil
	}
	return func() tea.Msg {
		if err := c.SetVolume(volume); err != nil {
			return errorToast("Volume", err)
		}
		return nil
	}
}

// saveSessionCmd records draft with the actor and echoes the stored session.
func saveSessionCmd(ctx context.Context, client actor.Actor, mode Mode, draft actor.SessionDraft) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
		defer cancel()
		err := client.RecordSession(ctx, draft)
		session := actor.TimerSession{
			StartTime:  actor.ToWire(draft.Start),
			EndTime:    actor.ToWire(draft.End),
			Duration:   int64(draft.End.Sub(draft.Start)),
			ColorTheme: draft.Color,
			Tags:       draft.Tags,
			LabelText:  draft.Label,
		}
		return sessionSavedMsg{session: session, mode: mode, err: err}
	}
}

func savePresetCmd(ctx context.Context, client actor.Actor, name string, preset actor.TimerPreset) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
		defer cancel()
		if err := client.SavePreset(ctx, name, preset); err != nil {
			return actionDoneMsg{err: fmt.Errorf("save preset: %w", err)}
		}
		return actionDoneMsg{text: fmt.Sprintf("Preset %q saved", name), refresh: true}
	}
}

func setGoalCmd(ctx context.Context, client actor.Actor, name string, hours float64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
		defer cancel()
		if err := client.SetGoal(ctx, name, actor.GoalDaily, hours); err != nil {
			return actionDoneMsg{err: fmt.Errorf("set goal: %w", err)}
		}
		return actionDoneMsg{text: fmt.Sprintf("Goal %q set to %.1fh", name, hours), refresh: true}
	}
}

// goalProgressCmd adds hours to every goal after a session is saved.
func goalProgressCmd(ctx context.Context, client actor.Actor, goals []actor.Goal, hours float64) tea.Cmd {
	if len(goals) == 0 || hours <= 0 {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
		defer cancel()
		for _, g := range goals {
			if err := client.UpdateGoalProgress(ctx, g.Name, hours); err != nil {
				return actionDoneMsg{err: fmt.Errorf("update goal %s: %w", g.Name, err)}
			}
		}
		return actionDoneMsg{refresh: true}
	}
}

func refreshCmd(ctx context.Context, refresh func(context.Context) error, store *state.Store) tea.Cmd {
	if refresh == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
		defer cancel()
		_ = refresh(ctx)
		if store == nil {
			return nil
		}
		return snapshotMsg(store.Snapshot())
	}
}

// exportSessionsCmd writes the sessions CSV to a timestamped file in dir.
func exportSessionsCmd(ctx context.Context, client actor.Actor, dir string, now time.Time) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
		defer cancel()
		sessions, err := client.ExportSessions(ctx)
		if err != nil {
			return actionDoneMsg{err: fmt.Errorf("export sessions: %w", err)}
		}
		name := export.Stamp(export.FileName(export.Sessions, export.CSV), now)
		path := filepath.Join(dir, name)
		err = export.ToFile(path, nil, func(w io.Writer) error {
			return export.WriteSessions(w, export.CSV, sessions)
		})
		if err != nil {
			return actionDoneMsg{err: fmt.Errorf("export sessions: %w", err)}
		}
		return actionDoneMsg{text: fmt.Sprintf("Exported %d sessions to %s", len(sessions), path)}
	}
}

// uploadCmd starts an upload and streams progress messages until done.
func uploadCmd(ctx context.Context, client actor.Actor, path, name string) tea.Cmd {
	ch := make(chan uploadMsg, 8)
	go func() {
		defer close(ch)
		ctx, cancel := context.WithTimeout(ctx, 5*RequestTimeout)
		defer cancel()
		last := -1
		id, err := wallpaper.Upload(ctx, client, path, name, func(percent int) {
			if percent == last {
				return
			}
			last = percent
			select {
			case ch <- uploadMsg{percent: percent}:
			default:
			}
		})
		ch <- uploadMsg{id: id, err: err, done: true}
	}()
	return waitUploadCmd(ch)
}

func waitUploadCmd(ch <-chan uploadMsg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		msg.next = ch
		return msg
	}
}
