// ABOUTME: Todo command for listing and changing tracked todos.
// ABOUTME: Note todos are edited through their note line; standalone todos directly.

package main

import (
	"fmt"

	"github.com/harper/notebook/internal/db"
	"github.com/harper/notebook/internal/models"
	"github.com/harper/notebook/internal/notebook"
	"github.com/harper/notebook/internal/ui"
	"github.com/spf13/cobra"
)

var todoCmd = &cobra.Command{
	Use:   "todo",
	Short: "Manage todos",
	Long:  `List, add, complete, edit and remove todos. Todos extracted from a note keep the note as their source of truth.`,
}

var todoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List todos",
	RunE: func(cmd *cobra.Command, args []string) error {
		allFlag, _ := cmd.Flags().GetBool("all")
		doneFlag, _ := cmd.Flags().GetBool("done")
		noteFlag, _ := cmd.Flags().GetString("note")
		tagFlag, _ := cmd.Flags().GetString("tag")
		searchFlag, _ := cmd.Flags().GetString("search")
		limitFlag, _ := cmd.Flags().GetInt("limit")

		filter := db.TodoFilter{Search: searchFlag, Limit: limitFlag}
		if tagFlag != "" {
			filter.Search = "tag:" + tagFlag
		}
		if !allFlag {
			filter.Completed = &doneFlag
		}
		if noteFlag != "" {
			note, err := svc.FindNote(cmd.Context(), noteFlag)
			if err != nil {
				return fmt.Errorf("failed to get note: %w", err)
			}
			filter.NoteID = &note.ID
		}

		todos, err := svc.ListTodos(cmd.Context(), filter)
		if err != nil {
			return fmt.Errorf("failed to list todos: %w", err)
		}

		if len(todos) == 0 {
			fmt.Println("No todos found.")
			return nil
		}

		for _, td := range todos {
			fmt.Print(ui.FormatTodoListItem(td))
		}
		return nil
	},
}

var todoAddCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add a standalone todo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		priorityFlag, _ := cmd.Flags().GetString("priority")
		tagsFlag, _ := cmd.Flags().GetString("tags")

		td, err := svc.CreateTodo(cmd.Context(), notebook.TodoInput{
			Text:     args[0],
			Priority: models.Priority(priorityFlag),
			Tags:     splitTags(tagsFlag),
		})
		if err != nil {
			return fmt.Errorf("failed to create todo: %w", err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("Created todo %s", short(td.ID))))
		return nil
	},
}

func setCompleted(cmd *cobra.Command, prefix string, done bool) error {
	td, err := svc.FindTodo(cmd.Context(), prefix)
	if err != nil {
		return fmt.Errorf("failed to get todo: %w", err)
	}

	patch := notebook.TodoPatch{Completed: &done}
	if cmd.Flags().Lookup("comment") != nil && cmd.Flags().Changed("comment") {
		comment, _ := cmd.Flags().GetString("comment")
		patch.CompletionComment = &comment
	}

	td, err = svc.UpdateTodo(cmd.Context(), td.ID, patch)
	if err != nil {
		return fmt.Errorf("failed to update todo: %w", err)
	}

	state := "open"
	if done {
		state = "done"
	}
	fmt.Println(ui.Success(fmt.Sprintf("Marked %q %s", td.Text, state)))
	return nil
}

var todoDoneCmd = &cobra.Command{
	Use:   "done <id-prefix>",
	Short: "Mark a todo done",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setCompleted(cmd, args[0], true)
	},
}

var todoUndoCmd = &cobra.Command{
	Use:   "undo <id-prefix>",
	Short: "Mark a todo open again",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setCompleted(cmd, args[0], false)
	},
}

var todoEditCmd = &cobra.Command{
	Use:   "edit <id-prefix> <text>",
	Short: "Change a todo's text or priority",
	Long:  `Change a todo's text and optionally its priority. For a note todo the note's line is rewritten and the note re-synced.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		td, err := svc.FindTodo(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get todo: %w", err)
		}

		priority := td.Priority
		if cmd.Flags().Changed("priority") {
			p, _ := cmd.Flags().GetString("priority")
			priority = models.Priority(p)
		}

		if td.Standalone() {
			text := args[1]
			td, err = svc.UpdateTodo(cmd.Context(), td.ID, notebook.TodoPatch{Text: &text, Priority: &priority})
		} else {
			td, err = svc.EditTodo(cmd.Context(), td.ID, args[1], priority)
		}
		if err != nil {
			return fmt.Errorf("failed to edit todo: %w", err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("Updated todo %s", short(td.ID))))
		return nil
	},
}

var todoRmCmd = &cobra.Command{
	Use:   "rm <id-prefix>",
	Short: "Remove a todo",
	Long:  `Remove a todo. A note todo reappears on the next note save unless its line is removed too.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		td, err := svc.FindTodo(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get todo: %w", err)
		}
		if err := svc.DeleteTodo(cmd.Context(), td.ID); err != nil {
			return fmt.Errorf("failed to delete todo: %w", err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("Deleted todo %s", short(td.ID))))
		return nil
	},
}

func init() {
	todoListCmd.Flags().BoolP("all", "a", false, "include completed todos")
	todoListCmd.Flags().Bool("done", false, "show only completed todos")
	todoListCmd.Flags().String("note", "", "only todos from this note")
	todoListCmd.Flags().StringP("tag", "t", "", "filter by tag")
	todoListCmd.Flags().StringP("search", "s", "", "search query (or tag:name)")
	todoListCmd.Flags().IntP("limit", "n", 0, "number of results (0 for all)")

	todoAddCmd.Flags().StringP("priority", "p", "medium", "priority (low|medium|high)")
	todoAddCmd.Flags().String("tags", "", "comma-separated tags")

	todoDoneCmd.Flags().StringP("comment", "m", "", "completion comment")

	todoEditCmd.Flags().StringP("priority", "p", "", "new priority (low|medium|high)")

	todoCmd.AddCommand(todoListCmd)
	todoCmd.AddCommand(todoAddCmd)
	todoCmd.AddCommand(todoDoneCmd)
	todoCmd.AddCommand(todoUndoCmd)
	todoCmd.AddCommand(todoEditCmd)
	todoCmd.AddCommand(todoRmCmd)
	rootCmd.AddCommand(todoCmd)
}
