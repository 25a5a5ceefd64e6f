// ABOUTME: Import command for restoring notes from backup.
// ABOUTME: Supports JSON bundles and markdown files; todos are re-extracted on import.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harper/notebook/internal/archive"
	"github.com/harper/notebook/internal/ui"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Import notes",
	Long:  `Import notes from a JSON bundle, a markdown file, or a directory of markdown files. Notes whose id already exists are skipped.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("failed to stat path: %w", err)
		}

		if info.IsDir() {
			return importMarkdownDir(cmd.Context(), path)
		}

		if strings.HasSuffix(path, ".json") {
			return importJSON(cmd.Context(), path)
		}

		if err := importMarkdownFile(cmd.Context(), path); err != nil {
			return err
		}
		fmt.Println(ui.Success("Imported 1 note"))
		return nil
	},
}

func restore(ctx context.Context, n archive.Note) error {
	if strings.TrimSpace(n.Content) == "" {
		return fmt.Errorf("note content cannot be empty")
	}
	note, err := svc.RestoreNote(ctx, n.Model(), n.PriorTodos())
	if err != nil && note != nil {
		warnf("imported %q but todos not synced: %v", n.Title, err)
		return nil
	}
	return err
}

func importJSON(ctx context.Context, path string) error {
	f, err := os.Open(path) //nolint:gosec // User-specified file path is expected CLI behavior
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	bundle, err := archive.ReadJSON(f)
	if err != nil {
		return err
	}

	notes := 0
	for _, n := range bundle.Notes {
		if err := restore(ctx, n); err != nil {
			warnf("failed to import %q: %v", n.Title, err)
			continue
		}
		notes++
	}

	todos := 0
	for _, t := range bundle.Todos {
		if err := svc.RestoreTodo(ctx, t.Model()); err != nil {
			warnf("failed to import todo %q: %v", t.Text, err)
			continue
		}
		todos++
	}

	fmt.Println(ui.Success(fmt.Sprintf("Imported %d notes and %d todos", notes, todos)))
	return nil
}

func importMarkdownDir(ctx context.Context, dir string) error {
	count := 0

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}

		if err := importMarkdownFile(ctx, path); err != nil {
			warnf("failed to import %s: %v", path, err)
			return nil
		}
		count++
		return nil
	})

	if err != nil {
		return err
	}

	fmt.Println(ui.Success(fmt.Sprintf("Imported %d notes", count)))
	return nil
}

func importMarkdownFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // User-specified file path is expected CLI behavior
	if err != nil {
		return err
	}

	n, err := archive.DecodeMarkdown(data)
	if err != nil {
		return err
	}
	if n.Title == "" {
		n.Title = strings.TrimSuffix(filepath.Base(path), ".md")
	}

	return restore(ctx, n)
}

func init() {
	rootCmd.AddCommand(importCmd)
}
