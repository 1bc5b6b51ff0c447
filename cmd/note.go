package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/khrees2412/talentflow/pkg/models"
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Add and view notes on candidates",
}

var addNoteCmd = &cobra.Command{
	Use:     "add <candidate-id> <content>",
	Short:   "Add a note to a candidate",
	Args:    cobra.MinimumNArgs(2),
	Example: `  talentflow note add 3f2a... "Strong system design, loop in @maria.lee"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := records(cmd)
		if err != nil {
			return err
		}

		note, err := svc.CreateNote(cmd.Context(), models.Note{
			CandidateID: args[0],
			Content:     strings.Join(args[1:], " "),
		})
		if err != nil {
			return fmt.Errorf("save note: %w", err)
		}
		cmd.Printf("✓ Note added (ID: %s)\n", note.ID)
		return nil
	},
}

var listNotesCmd = &cobra.Command{
	Use:   "list <candidate-id>",
	Short: "List notes for a candidate, oldest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := records(cmd)
		if err != nil {
			return err
		}

		notes, err := svc.ListNotes(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if len(notes) == 0 {
			cmd.Println("No notes yet.")
			return nil
		}

		cmd.Println(titleStyle.Render("Notes"))
		for _, n := range notes {
			cmd.Printf("%s  %s\n", mutedStyle.Render(n.CreatedAt.Format("Jan 2 15:04")), n.Content)
		}
		return nil
	},
}

var editNoteCmd = &cobra.Command{
	Use:   "edit <note-id> <content>",
	Short: "Replace the content of a note",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := records(cmd)
		if err != nil {
			return err
		}
		if _, err := svc.UpdateNote(cmd.Context(), args[0], strings.Join(args[1:], " ")); err != nil {
			return err
		}
		cmd.Println("✓ Note updated")
		return nil
	},
}

var removeNoteCmd = &cobra.Command{
	Use:   "remove <note-id>",
	Short: "Remove a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := records(cmd)
		if err != nil {
			return err
		}
		if err := svc.DeleteNote(cmd.Context(), args[0]); err != nil {
			return err
		}
		cmd.Println("✓ Note removed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(noteCmd)
	noteCmd.AddCommand(addNoteCmd, listNotesCmd, editNoteCmd, removeNoteCmd)
}
