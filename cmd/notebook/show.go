// ABOUTME: Show command for displaying a single note.
// ABOUTME: Renders markdown content with glamour and lists the note's todos.

package main

import (
	"fmt"

	"github.com/harper/notebook/internal/ui"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id-prefix>",
	Short: "Show a note",
	Long:  `Display a note's full content with rendered markdown, followed by its tracked todos.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		found, err := svc.FindNote(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get note: %w", err)
		}
		note, err := svc.GetNote(cmd.Context(), found.ID)
		if err != nil {
			return fmt.Errorf("failed to get note: %w", err)
		}

		raw, _ := cmd.Flags().GetBool("raw")

		fmt.Print(ui.FormatNoteHeader(note.Note))
		if raw {
			fmt.Println(note.Content)
		} else {
			content, _ := ui.FormatNoteContent(note.Content)
			fmt.Print(content)
		}

		if len(note.Todos) > 0 {
			fmt.Print(ui.FormatTodoSection(note.Todos))
		}
		return nil
	},
}

func init() {
	showCmd.Flags().Bool("raw", false, "print markdown without rendering")
	rootCmd.AddCommand(showCmd)
}
