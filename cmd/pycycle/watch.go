// # cmd/pycycle/watch.go
package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"pycycle/internal/observability"
)

var watchCmd = &cobra.Command{
	Use:   "watch [root]",
	Short: "Scan, then rescan whenever project files change",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			cfg.Root = args[0]
		}

		shutdown, err := observability.InitTracing(cmd.Context(), cfg.Observability.TraceEndpoint)
		if err != nil {
			return err
		}
		defer func() {
			if err := shutdown(cmd.Context()); err != nil {
				slog.Warn("failed to shut down tracing", "error", err)
			}
		}()

		app, err := NewApp(cfg)
		if err != nil {
			return err
		}
		defer app.Close(cmd.Context())

		if err := app.StartObservability(cmd.Context()); err != nil {
			return err
		}

		res, err := app.RunScan(cmd.Context())
		if err != nil {
			return err
		}
		app.PrintSummary(res)

		if err := app.StartWatcher(); err != nil {
			return err
		}

		slog.Info("watching for changes", "root", cfg.Root)
		select {}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
