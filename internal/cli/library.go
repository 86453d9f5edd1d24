package cli

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/sanctuary/internal/actor"
	"github.com/five82/sanctuary/internal/app"
	"github.com/five82/sanctuary/internal/prefs"
	"github.com/five82/sanctuary/internal/stats"
	"github.com/five82/sanctuary/internal/timer"
	"github.com/five82/sanctuary/internal/wallpaper"
)

func newPresetCmd(flags *rootFlags) *cobra.Command {
	preset := &cobra.Command{Use: "preset", Short: "Manage custom timer presets"}

	preset.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List saved presets",
		Args:  cobra.NoArgs,
		RunE: flags.withEnv(func(cmd *cobra.Command, _ []string, env *app.Env) error {
			presets, err := env.Client.Presets(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetch presets: %w", err)
			}
			if len(presets) == 0 {
				fmt.Fprintln(out(cmd), "no presets")
				return nil
			}
			w := tabwriter.NewWriter(out(cmd), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tLABEL\tDURATION\tCOLOR")
			for _, p := range presets {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Name, p.DisplayName(), timer.FormatCountdown(p.Length()), p.ColorTheme)
			}
			return w.Flush()
		}),
	})

	var minutes int
	var label, color string
	save := &cobra.Command{
		Use:   "save <name>",
		Short: "Save or replace a preset",
		Args:  cobra.ExactArgs(1),
		RunE: flags.withEnv(func(cmd *cobra.Command, args []string, env *app.Env) error {
			name := strings.TrimSpace(args[0])
			if name == "" || minutes <= 0 {
				return errors.New("a name and a positive --minutes are required")
			}
			if strings.TrimSpace(label) == "" {
				label = name
			}
			p := actor.TimerPreset{
				Name:       name,
				Duration:   int64(time.Duration(minutes) * time.Minute),
				ColorTheme: color,
				LabelText:  label,
			}
			if err := env.Client.SavePreset(cmd.Context(), name, p); err != nil {
				return fmt.Errorf("save preset: %w", err)
			}
			fmt.Fprintf(out(cmd), "saved preset %s (%d min)\n", name, minutes)
			return nil
		}),
	}
	save.Flags().IntVar(&minutes, "minutes", 0, "preset length in minutes")
	save.Flags().StringVar(&label, "label", "", "display label (defaults to the name)")
	save.Flags().StringVar(&color, "color", "#3b82f6", "display color")
	preset.AddCommand(save)

	return preset
}

func newGoalCmd(flags *rootFlags) *cobra.Command {
	goal := &cobra.Command{Use: "goal", Short: "Manage study goals"}

	goal.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List goals with progress",
		Args:  cobra.NoArgs,
		RunE: flags.withEnv(func(cmd *cobra.Command, _ []string, env *app.Env) error {
			goals, err := env.Client.Goals(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetch goals: %w", err)
			}
			if len(goals) == 0 {
				fmt.Fprintln(out(cmd), "no goals")
				return nil
			}
			w := tabwriter.NewWriter(out(cmd), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTYPE\tPROGRESS\tPERCENT\tSTREAK\tACHIEVED")
			for _, g := range stats.Goals(goals) {
				fmt.Fprintf(w, "%s\t%s\t%.2f/%.2fh\t%.0f%%\t%d\t%t\n",
					g.Name, g.TargetType, g.Progress, g.TargetHours, g.Percent, g.Streak, g.Achieved)
			}
			return w.Flush()
		}),
	})

	var targetHours float64
	set := &cobra.Command{
		Use:   "set <name>",
		Short: "Create or replace a daily goal",
		Args:  cobra.ExactArgs(1),
		RunE: flags.withEnv(func(cmd *cobra.Command, args []string, env *app.Env) error {
			if targetHours <= 0 {
				return errors.New("--hours must be positive")
			}
			if err := env.Client.SetGoal(cmd.Context(), args[0], actor.GoalDaily, targetHours); err != nil {
				return fmt.Errorf("set goal: %w", err)
			}
			fmt.Fprintf(out(cmd), "goal %s set to %.2fh daily\n", args[0], targetHours)
			return nil
		}),
	}
	set.Flags().Float64Var(&targetHours, "hours", 2, "daily target in hours")
	goal.AddCommand(set)

	var addHours float64
	progress := &cobra.Command{
		Use:   "progress <name>",
		Short: "Add studied hours to a goal",
		Args:  cobra.ExactArgs(1),
		RunE: flags.withEnv(func(cmd *cobra.Command, args []string, env *app.Env) error {
			if addHours <= 0 {
				return errors.New("--hours must be positive")
			}
			if err := env.Client.UpdateGoalProgress(cmd.Context(), args[0], addHours); err != nil {
				return fmt.Errorf("update goal: %w", err)
			}
			fmt.Fprintf(out(cmd), "added %.2fh to %s\n", addHours, args[0])
			return nil
		}),
	}
	progress.Flags().Float64Var(&addHours, "hours", 0, "hours to add")
	goal.AddCommand(progress)

	return goal
}

func newWallpaperCmd(flags *rootFlags) *cobra.Command {
	wp := &cobra.Command{Use: "wallpaper", Short: "List, select and upload wallpapers"}

	// catalog merges uploaded wallpapers; an unreachable actor leaves the
	// built-ins.
	catalog := func(cmd *cobra.Command, env *app.Env) []wallpaper.Wallpaper {
		blobs, err := env.Client.Wallpapers(cmd.Context())
		if err != nil {
			env.Logger.Warn("list custom wallpapers failed", "error", err)
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: custom wallpapers unavailable: %v\n", err)
		}
		return wallpaper.Merge(blobs)
	}

	wp.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List wallpapers; the selected one is marked with *",
		Args:  cobra.NoArgs,
		RunE: flags.withEnv(func(cmd *cobra.Command, _ []string, env *app.Env) error {
			all := catalog(cmd, env)
			current := wallpaper.Current(env.Prefs, all)
			w := tabwriter.NewWriter(out(cmd), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, " \tID\tNAME\tCATEGORY")
			for _, item := range all {
				mark := " "
				if item.ID == current.ID {
					mark = "*"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", mark, item.ID, item.Name, item.Category)
			}
			return w.Flush()
		}),
	})

	wp.AddCommand(&cobra.Command{
		Use:   "select <id>",
		Short: "Select the wallpaper used by the interface",
		Args:  cobra.ExactArgs(1),
		RunE: flags.withEnv(func(cmd *cobra.Command, args []string, env *app.Env) error {
			selected, err := wallpaper.Select(env.Prefs, catalog(cmd, env), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "selected %s\n", selected.Name)
			return nil
		}),
	})

	var name string
	var choose bool
	upload := &cobra.Command{
		Use:   "upload <path>",
		Short: "Upload an image as a custom wallpaper",
		Args:  cobra.ExactArgs(1),
		RunE: flags.withEnv(func(cmd *cobra.Command, args []string, env *app.Env) error {
			if strings.TrimSpace(name) == "" {
				name = wallpaper.NameFor(args[0], flags.clock.Now())
			}
			last := -1
			id, err := wallpaper.Upload(cmd.Context(), env.Client, args[0], name, func(percent int) {
				if percent == last || (last >= 0 && percent < 100 && percent-last < 10) {
					return
				}
				last = percent
				fmt.Fprintf(cmd.ErrOrStderr(), "\ruploading %3d%%", percent)
			})
			if last >= 0 {
				fmt.Fprintln(cmd.ErrOrStderr())
			}
			if err != nil {
				return err
			}
			if choose {
				if err := prefs.SetWallpaper(env.Prefs, id); err != nil {
					return fmt.Errorf("select wallpaper: %w", err)
				}
			}
			fmt.Fprintf(out(cmd), "uploaded %s\n", id)
			return nil
		}),
	}
	upload.Flags().StringVar(&name, "name", "", "wallpaper name (defaults to the file name)")
	upload.Flags().BoolVar(&choose, "select", false, "select the wallpaper after uploading")
	wp.AddCommand(upload)

	return wp
}

func newTagsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List every tag used on a session",
		Args:  cobra.NoArgs,
		RunE: flags.withEnv(func(cmd *cobra.Command, _ []string, env *app.Env) error {
			tags, err := env.Client.Tags(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetch tags: %w", err)
			}
			for _, tag := range tags {
				fmt.Fprintln(out(cmd), tag)
			}
			return nil
		}),
	}
}
