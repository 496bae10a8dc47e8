package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	noteMaterialID int
	noteContent    string
	noteChapter    int
	notePage       int
	noteListID     int
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Reading notes",
	Long:  `Attach notes to materials and list them.`,
}

var noteAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a note to a material",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, render, cleanup, err := openService(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		note, err := svc.AddNote(cmd.Context(), noteMaterialID, noteContent, noteChapter, notePage)
		if err != nil {
			return err
		}

		material, err := svc.MaterialByID(note.MaterialID)
		if err != nil {
			return err
		}
		fmt.Printf("Note added to «%s»: %s\n", material.Title, render.Note(note))
		return nil
	},
}

var noteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes",
	Long:  `List all notes, or only one material's notes with --material.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, render, cleanup, err := openService(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		notes := svc.Notes()
		if noteListID != 0 {
			notes = svc.NotesFor(noteListID)
		}
		if len(notes) == 0 {
			fmt.Println("No notes yet.")
			return nil
		}

		for _, note := range notes {
			fmt.Println(render.Note(note))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(noteCmd)
	noteCmd.AddCommand(noteAddCmd)
	noteCmd.AddCommand(noteListCmd)

	noteAddCmd.Flags().IntVar(&noteMaterialID, "material", 0, "Material id the note belongs to")
	noteAddCmd.Flags().StringVar(&noteContent, "content", "", "Note text")
	noteAddCmd.Flags().IntVar(&noteChapter, "chapter", 0, "Chapter the note refers to")
	noteAddCmd.Flags().IntVar(&notePage, "page", 0, "Page the note refers to")
	noteAddCmd.MarkFlagRequired("material")
	noteAddCmd.MarkFlagRequired("content")

	noteListCmd.Flags().IntVar(&noteListID, "material", 0, "Only notes for this material id")
}
