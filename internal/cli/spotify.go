package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/sanctuary/internal/app"
	"github.com/five82/sanctuary/internal/prefs"
)

func newSpotifyCmd(flags *rootFlags) *cobra.Command {
	spotify := &cobra.Command{Use: "spotify", Short: "Manage the Spotify access token"}

	spotify.AddCommand(&cobra.Command{
		Use:   "connect <redirect-url-or-fragment>",
		Short: "Store the access token from a Spotify redirect",
		Long: `Paste the URL Spotify redirected to after authorizing. The access_token
and expires_in values of its fragment are stored in the preferences file.`,
		Args: cobra.ExactArgs(1),
		RunE: flags.withEnv(func(cmd *cobra.Command, args []string, env *app.Env) error {
			token, err := prefs.ParseSpotifyFragment(args[0], flags.clock.Now())
			if err != nil {
				return err
			}
			if err := prefs.SaveSpotifyToken(env.Prefs, token); err != nil {
				return fmt.Errorf("save token: %w", err)
			}
			env.Logger.Info("spotify connected", "expires", token.Expiry)
			fmt.Fprintf(out(cmd), "connected until %s\n", token.Expiry.Local().Format(time.Kitchen))
			return nil
		}),
	})

	spotify.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show whether a valid token is stored",
		Args:  cobra.NoArgs,
		RunE: flags.withEnv(func(cmd *cobra.Command, _ []string, env *app.Env) error {
			now := flags.clock.Now()
			token, ok := prefs.LoadSpotifyToken(env.Prefs)
			switch {
			case !ok:
				fmt.Fprintln(out(cmd), "not connected")
			case !token.Valid(now):
				fmt.Fprintln(out(cmd), "token expired")
			default:
				fmt.Fprintf(out(cmd), "connected, expires in %s\n", token.Expiry.Sub(now).Round(time.Second))
			}
			return nil
		}),
	})

	spotify.AddCommand(&cobra.Command{
		Use:   "logout",
		Short: "Forget the stored token",
		Args:  cobra.NoArgs,
		RunE: flags.withEnv(func(cmd *cobra.Command, _ []string, env *app.Env) error {
			if err := prefs.ClearSpotifyToken(env.Prefs); err != nil {
				return err
			}
			fmt.Fprintln(out(cmd), "disconnected")
			return nil
		}),
	})

	return spotify
}
