package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	recordToday     bool
	recordYesterday bool
	recordLastPage  bool
)

var recordCmd = &cobra.Command{
	Use:   "record [pages]",
	Short: "Log pages read",
	Long: `Log the number of pages read today, or yesterday with --yesterday.

With --last-page the argument is the page you stopped on instead of a
page count; the pages read are derived from the running total.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		modes := 0
		for _, set := range []bool{recordToday, recordYesterday, recordLastPage} {
			if set {
				modes++
			}
		}
		if modes > 1 {
			if recordToday && recordYesterday {
				return fmt.Errorf("only today or yesterday, not together")
			}
			return fmt.Errorf("choose one of --today, --yesterday or --last-page")
		}

		count, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid number %q", args[0])
		}

		svc, render, cleanup, err := openService(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		ctx := cmd.Context()
		switch {
		case recordLastPage:
			pages, err := svc.RecordLastPage(ctx, count)
			if err != nil {
				return err
			}
			fmt.Printf("Recorded %s for today (stopped on page %d)\n", render.Inflect().Pages(pages), count)
		case recordYesterday:
			if err := svc.RecordYesterday(ctx, count); err != nil {
				return err
			}
			fmt.Printf("Recorded %s for yesterday\n", render.Inflect().Pages(count))
		default:
			if err := svc.Record(ctx, count); err != nil {
				return err
			}
			fmt.Printf("Recorded %s for today\n", render.Inflect().Pages(count))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(recordCmd)

	recordCmd.Flags().BoolVar(&recordToday, "today", false, "Log for today (the default)")
	recordCmd.Flags().BoolVar(&recordYesterday, "yesterday", false, "Log for yesterday instead of today")
	recordCmd.Flags().BoolVar(&recordLastPage, "last-page", false, "Argument is the page you stopped on, not a count")
}
