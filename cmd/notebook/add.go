// ABOUTME: Add command for creating new notes.
// ABOUTME: Supports inline content, file input, or $EDITOR.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/harper/notebook/internal/notebook"
	"github.com/harper/notebook/internal/ui"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a new note",
	Long:  `Create a new note with the given title. Content can be provided via --content, --file, or $EDITOR. List items under a "## TODO" heading become todos.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := args[0]

		tagsFlag, _ := cmd.Flags().GetString("tags")
		contentFlag, _ := cmd.Flags().GetString("content")
		fileFlag, _ := cmd.Flags().GetString("file")

		var content string
		var err error

		switch {
		case contentFlag != "":
			content = contentFlag
		case fileFlag != "":
			data, err := os.ReadFile(fileFlag) //nolint:gosec // User-specified file path is expected CLI behavior
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}
			content = string(data)
		default:
			content, err = openEditor("# " + title + "\n\n## TODO\n- \n")
			if err != nil {
				return fmt.Errorf("failed to open editor: %w", err)
			}
		}

		if strings.TrimSpace(content) == "" {
			return fmt.Errorf("note content cannot be empty")
		}

		note, err := svc.CreateNote(cmd.Context(), notebook.NoteInput{
			Title:   title,
			Content: content,
			Tags:    splitTags(tagsFlag),
		})
		if err != nil && note == nil {
			return fmt.Errorf("failed to create note: %w", err)
		}
		if err != nil {
			warnf("note saved but todos not synced: %v", err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("Created note %s (%d todos)", note.ID.String()[:6], len(note.Todos))))
		return nil
	},
}

func init() {
	addCmd.Flags().String("tags", "", "comma-separated tags")
	addCmd.Flags().String("content", "", "note content (inline)")
	addCmd.Flags().String("file", "", "read content from file")
	rootCmd.AddCommand(addCmd)
}
