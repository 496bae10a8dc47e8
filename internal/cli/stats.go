package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show reading statistics",
	Long: `Show statistics over the whole reading log: duration, skipped days,
best and worst days, average, median and what the total would be with no
day skipped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, render, cleanup, err := openService(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		stats, ok := svc.Stats()
		if !ok {
			fmt.Println("Nothing has been logged yet.")
			return nil
		}

		fmt.Println(render.Stats(stats))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
