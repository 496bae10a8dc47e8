package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"tracker/internal/models"
)

var (
	addTitle  string
	addAuthor string
	addPages  int

	beginDate    string
	completeDate string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a material to the queue",
	Long:  `Append a material to the tail of the reading queue.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, render, cleanup, err := openService(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		material, err := svc.AddMaterial(cmd.Context(), addTitle, addAuthor, addPages)
		if err != nil {
			return err
		}

		fmt.Printf("Added to the queue: %s\n", render.MaterialLine(material))
		return nil
	},
}

var beginCmd = &cobra.Command{
	Use:   "begin",
	Short: "Start reading the next material",
	Long:  `Start reading the head of the queue, today or on the date given with --date.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateFlag(beginDate)
		if err != nil {
			return err
		}

		svc, _, cleanup, err := openService(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		material, err := svc.BeginActive(cmd.Context(), date)
		if err != nil {
			return err
		}

		fmt.Printf("Started reading «%s» on %s\n", material.Title, date)
		return nil
	},
}

var completeCmd = &cobra.Command{
	Use:   "complete",
	Short: "Complete the current material",
	Long: `Mark the material being read as completed, today or on the date
given with --date, and move it to the processed list.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateFlag(completeDate)
		if err != nil {
			return err
		}

		svc, _, cleanup, err := openService(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		material, err := svc.CompleteActive(cmd.Context(), date)
		if err != nil {
			return err
		}

		fmt.Printf("«%s» completed on %s\n", material.Title, date)
		if head, ok := svc.Head(); ok {
			fmt.Printf("Next up: «%s», starting %s\n", head.Title, head.StartDate)
		}
		return nil
	},
}

// parseDateFlag parses a --date value, defaulting to today when empty
func parseDateFlag(value string) (models.Date, error) {
	if value == "" {
		return models.Today(), nil
	}
	date, err := models.ParseDate(value)
	if err != nil {
		return models.Date{}, fmt.Errorf("invalid date %q, expected DD.MM.YYYY", value)
	}
	return date, nil
}

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(beginCmd)
	rootCmd.AddCommand(completeCmd)

	addCmd.Flags().StringVar(&addTitle, "title", "", "Material title")
	addCmd.Flags().StringVar(&addAuthor, "author", "", "Material author")
	addCmd.Flags().IntVar(&addPages, "pages", 0, "Number of pages")
	addCmd.MarkFlagRequired("title")
	addCmd.MarkFlagRequired("author")
	addCmd.MarkFlagRequired("pages")

	beginCmd.Flags().StringVar(&beginDate, "date", "", "Start date (DD.MM.YYYY, default today)")
	completeCmd.Flags().StringVar(&completeDate, "date", "", "Completion date (DD.MM.YYYY, default today)")
}
