// ABOUTME: Export command for backing up notes and todos.
// ABOUTME: Supports a JSON bundle and markdown files with YAML frontmatter.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/harper/notebook/internal/archive"
	"github.com/harper/notebook/internal/db"
	"github.com/harper/notebook/internal/models"
	"github.com/harper/notebook/internal/ui"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export notes",
	Long:  `Export notes to a JSON bundle (with todo state and standalone todos) or to markdown files.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		outputPath, _ := cmd.Flags().GetString("output")
		notePrefix, _ := cmd.Flags().GetString("note")

		ctx := cmd.Context()
		var notes []*models.Note
		if notePrefix != "" {
			note, err := svc.FindNote(ctx, notePrefix)
			if err != nil {
				return fmt.Errorf("failed to get note: %w", err)
			}
			notes = append(notes, note)
		} else {
			all, err := svc.ListNotes(ctx, "", 0)
			if err != nil {
				return fmt.Errorf("failed to list notes: %w", err)
			}
			notes = all
		}

		var exported []archive.Note
		for _, n := range notes {
			full, err := svc.GetNote(ctx, n.ID)
			if err != nil {
				return fmt.Errorf("failed to load note %s: %w", n.ID.String()[:6], err)
			}
			exported = append(exported, archive.FromNote(full.Note, full.Todos))
		}

		switch format {
		case "json":
			bundle := &archive.Bundle{ExportedAt: time.Now(), Notes: exported}
			if notePrefix == "" {
				standalone, err := standaloneTodos(cmd)
				if err != nil {
					return err
				}
				bundle.Todos = standalone
			}
			return exportJSON(bundle, outputPath)
		case "md":
			return exportMarkdown(exported, outputPath)
		default:
			return fmt.Errorf("unknown format: %s", format)
		}
	},
}

func standaloneTodos(cmd *cobra.Command) ([]archive.Todo, error) {
	todos, err := svc.ListTodos(cmd.Context(), db.TodoFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	var out []archive.Todo
	for _, td := range todos {
		if td.Standalone() {
			out = append(out, archive.FromTodo(td))
		}
	}
	return out, nil
}

func exportJSON(bundle *archive.Bundle, outputPath string) error {
	var w io.Writer = os.Stdout
	if outputPath != "" && outputPath != "-" {
		f, err := os.Create(outputPath) //nolint:gosec // User-specified output path is expected CLI behavior
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	if err := archive.WriteJSON(w, bundle); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	if w != os.Stdout {
		fmt.Fprintln(os.Stderr, ui.Success(fmt.Sprintf("Exported %d notes and %d todos to %s", len(bundle.Notes), len(bundle.Todos), outputPath)))
	}
	return nil
}

func exportMarkdown(notes []archive.Note, outputDir string) error {
	if outputDir == "" {
		outputDir = "export"
	}

	if err := os.MkdirAll(outputDir, 0750); err != nil {
		return err
	}

	used := make(map[string]bool)
	for _, n := range notes {
		data, err := archive.EncodeMarkdown(n)
		if err != nil {
			return fmt.Errorf("failed to encode note %s: %w", short(n.ID), err)
		}

		filename := archive.FileName(n.Title)
		if used[filename] {
			filename = archive.FileName(n.Title + " " + short(n.ID))
		}
		used[filename] = true

		if err := os.WriteFile(filepath.Join(outputDir, filename), data, 0600); err != nil {
			return err
		}
	}

	fmt.Println(ui.Success(fmt.Sprintf("Exported %d notes to %s", len(notes), outputDir)))
	return nil
}

func init() {
	exportCmd.Flags().StringP("format", "f", "json", "export format (json|md)")
	exportCmd.Flags().StringP("output", "o", "", "output path")
	exportCmd.Flags().StringP("note", "n", "", "single note ID to export")
	rootCmd.AddCommand(exportCmd)
}
