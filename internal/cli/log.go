package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show the reading log",
	Long: `Show the pages logged for each day, the running average and how it
compares to the daily goal.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, render, cleanup, err := openService(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		fmt.Println(render.Log(svc.Entries(), svc.Average(), svc.DailyGoal()))
		return nil
	},
}

var totalCmd = &cobra.Command{
	Use:   "total",
	Short: "Show total pages read",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, render, cleanup, err := openService(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		fmt.Println(render.Total(svc.Total()))
		return nil
	},
}

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Show the full report",
	Long:  `Show the reading log, the projected queue and the total in one report.`,
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

		fmt.Println(render.All(svc.Entries(), svc.Average(), svc.DailyGoal(), schedule, svc.Total()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(totalCmd)
	rootCmd.AddCommand(allCmd)
}
