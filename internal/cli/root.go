// Package cli defines the Cobra commands for the sanctuary binary.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/sanctuary/internal/app"
	"github.com/five82/sanctuary/internal/clock"
)

var version = "dev" // set via ldflags at build time

// rootFlags carries the persistent flags every subcommand opens the
// environment with.
type rootFlags struct {
	configPath string
	prefsPath  string
	logLevel   string
	poll       time.Duration
	clock      clock.Clock
}

func (f *rootFlags) options() app.Options {
	return app.Options{ConfigPath: f.configPath, PrefsPath: f.prefsPath, LogLevel: f.logLevel, PollEvery: f.poll}
}

// withEnv opens the environment for the duration of fn.
func (f *rootFlags) withEnv(fn func(cmd *cobra.Command, args []string, env *app.Env) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		env, err := app.Open(f.options())
		if err != nil {
			return err
		}
		defer env.Close()
		return fn(cmd, args, env)
	}
}

// NewRootCommand returns the sanctuary command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(clock.System{})
}

func newRootCommand(clk clock.Clock) *cobra.Command {
	flags := &rootFlags{clock: clk}

	root := &cobra.Command{
		Use:   "sanctuary",
		Short: "Study timer with ambient sounds",
		Long: `Sanctuary is a terminal study timer: stopwatch, Pomodoro, Animedoro and
custom countdowns, with session logging, goals, ambient sounds and
wallpapers. Run without a subcommand to open the interactive UI.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), flags.options())
		},
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default ~/.config/sanctuary/config.toml)")
	root.PersistentFlags().StringVar(&flags.prefsPath, "prefs", "", "preferences file (default ~/.config/sanctuary/prefs.toml)")
	root.Flags().DurationVar(&flags.poll, "poll", 0, "actor refresh interval for the UI (default from config)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level override (trace, debug, info, warn, error)")

	root.AddCommand(
		newExportCmd(flags),
		newStatsCmd(flags),
		newSessionCmd(flags),
		newPresetCmd(flags),
		newGoalCmd(flags),
		newWallpaperCmd(flags),
		newSoundCmd(flags),
		newTagsCmd(flags),
		newSpotifyCmd(flags),
		newLogsCmd(flags),
	)
	return root
}

// Execute runs the root command. Called from main.
func Execute(ctx context.Context) int {
	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "sanctuary: %v\n", err)
		return 1
	}
	return 0
}

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
