// # cmd/pycycle/scan.go
package main

import (
	"github.com/spf13/cobra"
)

var (
	jsonOut string
	dotOut  string
	tsvOut  string
)

var scanCmd = &cobra.Command{
	Use:   "scan [root]",
	Short: "Run a single scan and print the import report",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			cfg.Root = args[0]
		}
		if jsonOut != "" {
			cfg.Output.JSON = jsonOut
		}
		if dotOut != "" {
			cfg.Output.DOT = dotOut
		}
		if tsvOut != "" {
			cfg.Output.TSV = tsvOut
		}

		app, err := NewApp(cfg)
		if err != nil {
			return err
		}
		defer app.Close(cmd.Context())

		res, err := app.RunScan(cmd.Context())
		if err != nil {
			return err
		}

		app.PrintSummary(res)
		return nil
	},
}

func init() {
	scanCmd.Flags().StringVar(&jsonOut, "json", "", "Write the modules/cycles document to this path")
	scanCmd.Flags().StringVar(&dotOut, "dot", "", "Write a Graphviz DOT graph to this path")
	scanCmd.Flags().StringVar(&tsvOut, "tsv", "", "Write an edge listing TSV to this path")
	rootCmd.AddCommand(scanCmd)
}
