// ABOUTME: Reindex command re-extracting todos from every note.
// ABOUTME: Completion state carries over for todos whose text is unchanged.

package main

import (
	"fmt"

	"github.com/harper/notebook/internal/ui"
	"github.com/spf13/cobra"
)

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Re-extract todos from all notes",
	Long:  `Run todo extraction again over every note and replace the stored todo sets.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		notes, err := svc.ListNotes(cmd.Context(), "", 0)
		if err != nil {
			return fmt.Errorf("failed to list notes: %w", err)
		}

		total := 0
		for _, note := range notes {
			todos, err := svc.Reconcile(cmd.Context(), note)
			if err != nil {
				warnf("failed to reindex %s: %v", note.ID.String()[:6], err)
				continue
			}
			total += len(todos)
		}

		fmt.Println(ui.Success(fmt.Sprintf("Reindexed %d notes (%d todos)", len(notes), total)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reindexCmd)
}
