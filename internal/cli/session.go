package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/sanctuary/internal/actor"
	"github.com/five82/sanctuary/internal/app"
	"github.com/five82/sanctuary/internal/stats"
	"github.com/five82/sanctuary/internal/timer"
)

func newSessionCmd(flags *rootFlags) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Record and list study sessions"}
	session.AddCommand(newSessionRecordCmd(flags), newSessionListCmd(flags))
	return session
}

func newSessionRecordCmd(flags *rootFlags) *cobra.Command {
	var (
		startText string
		minutes   int
		label     string
		color     string
		tags      []string
	)

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a finished study session",
		Long: `Record a session that ended now and lasted --minutes, or one that
started at --start (RFC 3339) and ended now.`,
		Args: cobra.NoArgs,
		RunE: flags.withEnv(func(cmd *cobra.Command, _ []string, env *app.Env) error {
			end := flags.clock.Now()
			var start time.Time
			switch {
			case startText != "":
				parsed, err := time.Parse(time.RFC3339, startText)
				if err != nil {
					return fmt.Errorf("parse --start: %w", err)
				}
				start = parsed
			case minutes > 0:
				start = end.Add(-time.Duration(minutes) * time.Minute)
			default:
				return errors.New("either --start or --minutes is required")
			}
			if !start.Before(end) {
				return errors.New("session start must be before now")
			}

			var cleaned timer.Tags
			for _, tag := range tags {
				cleaned.Add(tag)
			}
			draft := actor.SessionDraft{
				Start: start,
				End:   end,
				Label: label,
				Color: color,
				Tags:  cleaned.List(),
			}
			if err := env.Client.RecordSession(cmd.Context(), draft); err != nil {
				return fmt.Errorf("record session: %w", err)
			}
			env.Logger.Info("session recorded", "label", label, "duration", end.Sub(start))
			fmt.Fprintf(out(cmd), "recorded %s session (%s)\n", label, end.Sub(start).Round(time.Second))
			return nil
		}),
	}
	cmd.Flags().StringVar(&startText, "start", "", "session start time (RFC 3339)")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "session length in minutes, ending now")
	cmd.Flags().StringVar(&label, "label", timer.LabelStopwatch, "session label")
	cmd.Flags().StringVar(&color, "color", timer.ColorStopwatch, "session color")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "session tags")
	return cmd
}

func newSessionListCmd(flags *rootFlags) *cobra.Command {
	var tag, label string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded sessions, newest first",
		Args:  cobra.NoArgs,
		RunE: flags.withEnv(func(cmd *cobra.Command, _ []string, env *app.Env) error {
			ctx := cmd.Context()
			var sessions []actor.TimerSession
			var err error
			switch {
			case strings.TrimSpace(label) != "":
				sessions, err = env.Client.SessionsByLabel(ctx, label)
				sessions = stats.FilterByTag(sessions, tag)
			case strings.TrimSpace(tag) != "":
				sessions, err = env.Client.SessionsByTag(ctx, tag)
			default:
				sessions, err = env.Client.ExportSessions(ctx)
			}
			if err != nil {
				return fmt.Errorf("fetch sessions: %w", err)
			}
			if len(sessions) == 0 {
				fmt.Fprintln(out(cmd), "no sessions")
				return nil
			}

			w := tabwriter.NewWriter(out(cmd), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "START\tDURATION\tLABEL\tTAGS")
			sort.SliceStable(sessions, func(i, j int) bool { return sessions[i].StartTime > sessions[j].StartTime })
			for i, s := range sessions {
				if limit > 0 && i == limit {
					break
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					s.Start().Local().Format("2006-01-02 15:04"),
					s.Length().Round(time.Second),
					s.LabelText,
					strings.Join(s.Tags, ", "),
				)
			}
			return w.Flush()
		}),
	}
	cmd.Flags().StringVar(&tag, "tag", "", "only sessions with this tag")
	cmd.Flags().StringVar(&label, "label", "", "only sessions with this label")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum sessions to show (0 for all)")
	return cmd
}
