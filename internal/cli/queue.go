package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Show the reading queue",
	Long: `Show every queued material with the dates it is projected to be
read, chained at the current pace. An unstarted head is projected as
starting today.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, render, cleanup, err := openService(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		schedule, err := svc.Projection()
		if err != nil {
			return err
		}

		fmt.Println(render.Queue(schedule))
		return nil
	},
}

var processedCmd = &cobra.Command{
	Use:   "processed",
	Short: "Show completed materials",
	Long:  `Show every completed material with the dates it was read between.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, render, cleanup, err := openService(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		fmt.Println(render.Processed(svc.Processed()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(queueCmd)
	rootCmd.AddCommand(processedCmd)
}
