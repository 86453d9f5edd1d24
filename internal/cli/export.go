package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/five82/sanctuary/internal/app"
	"github.com/five82/sanctuary/internal/export"
)

func newExportCmd(flags *rootFlags) *cobra.Command {
	var formatName, outPath string

	cmd := &cobra.Command{
		Use:       "export {sessions|presets|goals}",
		Short:     "Export records as CSV, JSON or YAML",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(export.Sessions), string(export.Presets), string(export.Goals)},
		RunE: flags.withEnv(func(cmd *cobra.Command, args []string, env *app.Env) error {
			kind, err := export.ParseKind(args[0])
			if err != nil {
				return err
			}
			format, err := export.ParseFormat(formatName)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			var write func(io.Writer) error
			var count int
			switch kind {
			case export.Presets:
				presets, err := env.Client.Presets(ctx)
				if err != nil {
					return fmt.Errorf("fetch presets: %w", err)
				}
				count = len(presets)
				write = func(w io.Writer) error { return export.WritePresets(w, format, presets) }
			case export.Goals:
				goals, err := env.Client.Goals(ctx)
				if err != nil {
					return fmt.Errorf("fetch goals: %w", err)
				}
				count = len(goals)
				write = func(w io.Writer) error { return export.WriteGoals(w, format, goals) }
			default:
				sessions, err := env.Client.ExportSessions(ctx)
				if err != nil {
					return fmt.Errorf("fetch sessions: %w", err)
				}
				count = len(sessions)
				write = func(w io.Writer) error { return export.WriteSessions(w, format, sessions) }
			}

			if err := export.ToFile(outPath, out(cmd), write); err != nil {
				return err
			}
			env.Logger.Info("exported", "kind", string(kind), "format", string(format), "count", count, "path", outPath)
			if outPath != "" && outPath != "-" {
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d %s to %s\n", count, kind, outPath)
			}
			return nil
		}),
	}
	cmd.Flags().StringVarP(&formatName, "format", "f", "csv", "output format: csv|json|yaml")
	cmd.Flags().StringVarP(&outPath, "out", "o", "-", "output file (- for stdout)")
	return cmd
}
