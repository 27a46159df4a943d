// # cmd/pycycle/root.go
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"pycycle/internal/config"
)

const version = "1.0.0"

var (
	configPath string
	verbose    bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "pycycle",
	Short: "Import scanner and circular-import detector for Python projects",
	Long: `pycycle walks a Python project tree, maps every file to its fully
qualified module name, resolves absolute and relative imports, and reports
the circular import chains found in the resulting dependency graph.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logLevel := slog.LevelInfo
		if verbose {
			logLevel = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		}))
		slog.SetDefault(logger)

		loaded, err := config.Load(configPath)
		if err != nil {
			if os.IsNotExist(err) && !cmd.Flags().Changed("config") {
				cfg = config.Default()
				return nil
			}
			slog.Error("failed to load config", "path", configPath, "error", err)
			return err
		}
		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.SetVersionTemplate("pycycle v{{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./pycycle.toml", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose logging")
}
