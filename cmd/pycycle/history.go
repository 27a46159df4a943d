// # cmd/pycycle/history.go
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"pycycle/internal/history"
)

var historySince time.Duration

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded scans from the history database",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.History.Path == "" {
			return fmt.Errorf("no history path configured, set [history] path in the config file")
		}

		store, err := history.Open(cfg.History.Path)
		if err != nil {
			return err
		}
		defer store.Close()

		since := time.Time{}
		if historySince > 0 {
			since = time.Now().Add(-historySince)
		}

		records, err := store.LoadScans("default", since)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No recorded scans.")
			return nil
		}

		for _, rec := range records {
			fmt.Printf("%s  %s  modules=%d edges=%d cycles=%d failures=%d in %v\n",
				rec.Timestamp.Format(time.RFC3339), rec.Root,
				rec.ModuleCount, rec.EdgeCount, rec.CycleCount,
				rec.ParseFailures, rec.Duration)
			for _, c := range rec.Cycles {
				fmt.Printf("    %s\n", strings.Join(c, " -> "))
			}
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().DurationVar(&historySince, "since", 0, "Only show scans newer than this age (e.g. 24h)")
	rootCmd.AddCommand(historyCmd)
}
