package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/sanctuary/internal/app"
	"github.com/five82/sanctuary/internal/logtail"
)

func newLogsCmd(flags *rootFlags) *cobra.Command {
	var lines int
	var level string
	var plain bool

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the end of the log file",
		Args:  cobra.NoArgs,
		RunE: flags.withEnv(func(cmd *cobra.Command, _ []string, env *app.Env) error {
			raw, err := logtail.Read(env.Config.LogFile, lines)
			if err != nil {
				return err
			}
			for _, line := range logtail.Filter(raw, level) {
				if e, ok := logtail.Parse(line); ok {
					line = logtail.Format(e, !plain)
				}
				fmt.Fprintln(out(cmd), line)
			}
			return nil
		}),
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 100, "number of lines to read (0 for all)")
	cmd.Flags().StringVar(&level, "level", "", "minimum level to show (trace, debug, info, warn, error)")
	cmd.Flags().BoolVar(&plain, "plain", false, "disable colors")
	return cmd
}
