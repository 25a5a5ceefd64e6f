// ABOUTME: Edit command for modifying existing notes.
// ABOUTME: Opens note content in $EDITOR; saving re-syncs the note's todos.

package main

import (
	"fmt"
	"strings"

	"github.com/harper/notebook/internal/notebook"
	"github.com/harper/notebook/internal/ui"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <id-prefix>",
	Short: "Edit a note",
	Long:  `Open a note in $EDITOR for editing, or replace its content with --content. Todos keep their completion state when their text is unchanged.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		note, err := svc.FindNote(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get note: %w", err)
		}

		in := notebook.NoteInput{Title: note.Title, Content: note.Content, Tags: note.Tags}
		if cmd.Flags().Changed("title") {
			in.Title, _ = cmd.Flags().GetString("title")
		}

		if cmd.Flags().Changed("content") {
			in.Content, _ = cmd.Flags().GetString("content")
		} else if !cmd.Flags().Changed("title") {
			in.Content, err = openEditor(note.Content)
			if err != nil {
				return fmt.Errorf("failed to open editor: %w", err)
			}
		}

		if in.Content == note.Content && in.Title == note.Title {
			fmt.Println("No changes made.")
			return nil
		}
		if strings.TrimSpace(in.Content) == "" {
			return fmt.Errorf("note content cannot be empty")
		}

		updated, err := svc.UpdateNote(cmd.Context(), note.ID, in)
		if err != nil && updated == nil {
			return fmt.Errorf("failed to update note: %w", err)
		}
		if err != nil {
			warnf("note saved but todos not synced: %v", err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("Updated note %s (%d todos)", note.ID.String()[:6], len(updated.Todos))))
		return nil
	},
}

func init() {
	editCmd.Flags().String("title", "", "new title")
	editCmd.Flags().String("content", "", "replace content (skips $EDITOR)")
	rootCmd.AddCommand(editCmd)
}
