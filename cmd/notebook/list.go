// ABOUTME: List command for displaying notes.
// ABOUTME: Supports filtering by tag and search query.

package main

import (
	"fmt"

	"github.com/harper/notebook/internal/ui"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes",
	Long:  `List notes newest first, optionally filtered by tag or search query.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tagFlag, _ := cmd.Flags().GetString("tag")
		searchFlag, _ := cmd.Flags().GetString("search")
		limitFlag, _ := cmd.Flags().GetInt("limit")

		search := searchFlag
		if tagFlag != "" {
			search = "tag:" + tagFlag
		}

		notes, err := svc.ListNotes(cmd.Context(), search, limitFlag)
		if err != nil {
			return fmt.Errorf("failed to list notes: %w", err)
		}

		if len(notes) == 0 {
			fmt.Println("No notes found.")
			return nil
		}

		for _, note := range notes {
			fmt.Print(ui.FormatNoteListItem(note))
		}

		if search == "" && len(notes) == limitFlag {
			total, err := svc.CountNotes(cmd.Context())
			if err == nil && total > len(notes) {
				fmt.Print(ui.FormatShowMore(total - len(notes)))
			}
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringP("tag", "t", "", "filter by tag")
	listCmd.Flags().StringP("search", "s", "", "search query (or tag:name)")
	listCmd.Flags().IntP("limit", "n", 20, "number of results")
	rootCmd.AddCommand(listCmd)
}
