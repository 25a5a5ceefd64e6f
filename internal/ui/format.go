// ABOUTME: Terminal UI formatting for notebook output.
// ABOUTME: Uses glamour for markdown and fatih/color for styling.

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/harper/notebook/internal/models"
)

var (
	faint  = color.New(color.Faint).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
)

const timeLayout = "2006-01-02 15:04"

type TagCount struct {
	Name  string
	Notes int
	Todos int
}

func FormatNoteListItem(note *models.Note) string {
	var sb strings.Builder

	idPrefix := note.ID.String()[:6]
	sb.WriteString(fmt.Sprintf("  %s  %s\n", faint(idPrefix), bold(note.Title)))

	if len(note.Tags) > 0 {
		sb.WriteString(fmt.Sprintf("         %s %s\n",
			faint("Tags:"),
			cyan(strings.Join(note.Tags, ", "))))
	}

	sb.WriteString(fmt.Sprintf("         %s %s\n",
		faint("Updated:"),
		faint(note.UpdatedAt.Format(timeLayout))))

	return sb.String()
}

func priorityLabel(p models.Priority) string {
	switch p {
	case models.PriorityHigh:
		return red("high")
	case models.PriorityLow:
		return faint("low")
	default:
		return yellow("med")
	}
}

// shortID trims a todo id for display. Note-linked ids keep their line index.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	if i := strings.LastIndex(id, "-"); i > 0 && len(id)-i <= 6 && strings.Count(id, "-") > 4 {
		return id[:6] + id[i:]
	}
	return id[:8]
}

func FormatTodoListItem(td *models.Todo) string {
	var sb strings.Builder

	box := "[ ]"
	text := td.Text
	if td.Completed {
		box = green("[x]")
		text = faint(td.Text)
	}
	sb.WriteString(fmt.Sprintf("  %s %s  %s %s\n", box, faint(shortID(td.ID)), priorityLabel(td.Priority), text))

	var meta []string
	if td.NoteTitle != "" {
		meta = append(meta, faint("Note:")+" "+td.NoteTitle)
	}
	if len(td.Tags) > 0 {
		meta = append(meta, faint("Tags:")+" "+cyan(strings.Join(td.Tags, ", ")))
	}
	if td.CompletionComment != nil && *td.CompletionComment != "" {
		meta = append(meta, faint("Comment:")+" "+*td.CompletionComment)
	}
	if len(meta) > 0 {
		sb.WriteString("        " + strings.Join(meta, "  ") + "\n")
	}

	return sb.String()
}

func FormatNoteContent(content string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// Fallback to raw content if renderer fails
		return content, nil //nolint:nilerr // Intentional fallback
	}

	out, err := renderer.Render(content)
	if err != nil {
		return content, nil //nolint:nilerr // Intentional fallback
	}
	return out, nil
}

func FormatNoteHeader(note *models.Note) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s\n", bold(note.Title)))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("ID:"), faint(note.ID.String())))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Created:"), faint(note.CreatedAt.Format(timeLayout))))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Updated:"), faint(note.UpdatedAt.Format(timeLayout))))

	if len(note.Tags) > 0 {
		sb.WriteString(fmt.Sprintf("%s %s\n", faint("Tags:"), cyan(strings.Join(note.Tags, ", "))))
	}

	sb.WriteString(Separator())
	return sb.String()
}

func FormatTodoSection(todos []*models.Todo) string {
	var sb strings.Builder

	done := 0
	for _, td := range todos {
		if td.Completed {
			done++
		}
	}
	sb.WriteString(fmt.Sprintf("\n%s %s\n", bold("Todos:"), faint(fmt.Sprintf("%d/%d done", done, len(todos)))))
	for _, td := range todos {
		sb.WriteString(FormatTodoListItem(td))
	}

	return sb.String()
}

func FormatTagList(tags []TagCount) string {
	var sb strings.Builder

	for _, t := range tags {
		sb.WriteString(fmt.Sprintf("  %s %s\n",
			cyan(t.Name),
			faint(fmt.Sprintf("(%d notes, %d todos)", t.Notes, t.Todos))))
	}

	return sb.String()
}

func FormatShowMore(count int) string {
	return faint(fmt.Sprintf("\n%d more notes; use --limit to see them\n", count))
}

func Separator() string {
	return faint(strings.Repeat("─", 50)) + "\n"
}

func Success(msg string) string {
	return color.New(color.FgGreen).Sprint("✓ ") + msg
}

func Error(msg string) string {
	return color.New(color.FgRed).Sprint("✗ ") + msg
}

func Warning(msg string) string {
	return color.New(color.FgYellow).Sprint("! ") + msg
}
