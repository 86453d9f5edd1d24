package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/sanctuary/internal/actor"
	"github.com/five82/sanctuary/internal/app"
	"github.com/five82/sanctuary/internal/stats"
)

func newStatsCmd(flags *rootFlags) *cobra.Command {
	var tag string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show hours studied, the last seven days and goal progress",
		Args:  cobra.NoArgs,
		RunE: flags.withEnv(func(cmd *cobra.Command, _ []string, env *app.Env) error {
			ctx := cmd.Context()
			now := flags.clock.Now()

			var sessions []actor.TimerSession
			var err error
			if tag = strings.TrimSpace(tag); tag != "" {
				sessions, err = env.Client.SessionsByTag(ctx, tag)
			} else {
				sessions, err = env.Client.ExportSessions(ctx)
			}
			if err != nil {
				return fmt.Errorf("fetch sessions: %w", err)
			}
			goals, err := env.Client.Goals(ctx)
			if err != nil {
				return fmt.Errorf("fetch goals: %w", err)
			}

			summary := stats.Summarize(sessions, now)
			count, average := int64(summary.Count), summary.Average
			if tag == "" {
				// Untagged totals come from the actor's aggregates.
				if count, err = env.Client.SessionCount(ctx); err != nil {
					return fmt.Errorf("session count: %w", err)
				}
				if average, err = env.Client.AverageSessionDuration(ctx); err != nil {
					return fmt.Errorf("average duration: %w", err)
				}
			}

			w := tabwriter.NewWriter(out(cmd), 0, 4, 2, ' ', 0)
			if tag != "" {
				fmt.Fprintf(w, "Tag:\t#%s\n", tag)
			}
			for _, window := range stats.Windows {
				fmt.Fprintf(w, "%s:\t%.2fh\n", window, summary.Hours[window])
			}
			fmt.Fprintf(w, "Sessions:\t%d\n", count)
			fmt.Fprintf(w, "Average:\t%s\n", average.Round(time.Second))
			fmt.Fprintln(w)
			fmt.Fprintln(w, "Last 7 days")
			for _, bar := range stats.LastSevenDays(sessions, now) {
				fmt.Fprintf(w, "  %s %s\t%.2fh\t%s\n", bar.Label, bar.Date.Format("Jan 2"), bar.Hours, strings.Repeat("#", int(bar.Hours*4)))
			}
			if progress := stats.Goals(goals); len(progress) > 0 {
				fmt.Fprintln(w)
				fmt.Fprintln(w, "Goals")
				for _, g := range progress {
					mark := ""
					if g.Achieved {
						mark = "achieved"
					}
					fmt.Fprintf(w, "  %s\t%.2f/%.2fh\t%.0f%%\t%s\n", g.Name, g.Progress, g.TargetHours, g.Percent, mark)
				}
			}
			return w.Flush()
		}),
	}
	cmd.Flags().StringVar(&tag, "tag", "", "only count sessions with this tag")
	return cmd
}
