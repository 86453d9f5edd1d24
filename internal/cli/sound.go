package cli

import (
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/five82/sanctuary/internal/ambient"
	"github.com/five82/sanctuary/internal/app"
	"github.com/five82/sanctuary/internal/prefs"
)

func newSoundCmd(flags *rootFlags) *cobra.Command {
	sound := &cobra.Command{Use: "sound", Short: "List and play ambient sounds"}

	sound.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List ambient sounds; the selected one is marked with *",
		Args:  cobra.NoArgs,
		RunE: flags.withEnv(func(cmd *cobra.Command, _ []string, env *app.Env) error {
			current := prefs.Sound(env.Prefs)
			w := tabwriter.NewWriter(out(cmd), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, " \tID\tNAME\tURL")
			for _, s := range ambient.Catalog(env.Config.Ambient.Sounds) {
				mark := " "
				if s.ID == current {
					mark = "*"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", mark, s.ID, s.Label(), s.URL)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "volume: %d%%\n", prefs.Volume(env.Prefs))
			return nil
		}),
	})

	var volume int
	play := &cobra.Command{
		Use:   "play <id>",
		Short: "Play an ambient sound until interrupted",
		Args:  cobra.ExactArgs(1),
		RunE: flags.withEnv(func(cmd *cobra.Command, args []string, env *app.Env) error {
			ctrl := env.NewAmbient(true)
			defer ctrl.Close()

			if cmd.Flags().Changed("volume") {
				if err := ctrl.SetVolume(volume); err != nil {
					return err
				}
			}
			updates, cancel := ctrl.Subscribe()
			defer cancel()
			if err := ctrl.Play(args[0]); err != nil {
				return err
			}

			var last ambient.State
			for {
				select {
				case <-cmd.Context().Done():
					return nil
				case snap, ok := <-updates:
					if !ok {
						return nil
					}
					if snap.State == last {
						continue
					}
					last = snap.State
					switch snap.State {
					case ambient.StateError:
						return errors.New(snap.Error)
					case ambient.StatePlaying:
						fmt.Fprintf(cmd.ErrOrStderr(), "playing %s at %d%% (ctrl+c to stop)\n", snap.SoundID, snap.Volume)
					case ambient.StateLoading:
						if snap.Retries > 0 {
							fmt.Fprintf(cmd.ErrOrStderr(), "retrying (%d)\n", snap.Retries)
						}
					}
				}
			}
		}),
	}
	play.Flags().IntVar(&volume, "volume", prefs.DefaultVolume, "playback volume 0-100")
	sound.AddCommand(play)

	sound.AddCommand(&cobra.Command{
		Use:   "volume <0-100>",
		Short: "Set the stored ambient volume",
		Args:  cobra.ExactArgs(1),
		RunE: flags.withEnv(func(cmd *cobra.Command, args []string, env *app.Env) error {
			v, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("parse volume: %w", err)
			}
			v = prefs.ClampVolume(v)
			if err := prefs.SetVolume(env.Prefs, v); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "volume: %d%%\n", v)
			return nil
		}),
	})

	return sound
}
