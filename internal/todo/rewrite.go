// ABOUTME: Rewrites the source line of a single TODO in place.
// ABOUTME: All other lines, including the section heading, pass through untouched.

package todo

import (
	"strings"

	"github.com/harper/notebook/internal/models"
)

// Rewrite replaces the list line whose recomputed identifier equals todoID
// with the same indent and marker followed by the canonical priority prefix
// and newText. Content is returned unchanged when no line matches.
func Rewrite(content, todoID, newText string, newPriority models.Priority) string {
	lines := splitLines(content)
	noteID := NoteIDOf(todoID)
	changed := false
	scanSections(lines, func(l listLine) {
		if changed || ID(noteID, l.index) != todoID {
			return
		}
		cr := ""
		if strings.HasSuffix(lines[l.index], "\r") {
			cr = "\r"
		}
		lines[l.index] = l.indent + string(l.marker) + " " + FormatPriority(newPriority) + newText + cr
		changed = true
	})
	if !changed {
		return content
	}
	return strings.Join(lines, "\n")
}

// Item is the parsed form of one source line.
type Item struct {
	Line     int
	Text     string
	Priority models.Priority
}

// Locate parses the line todoID currently points at. It reports false when
// the identifier does not resolve to a list line inside a TODO section.
func Locate(content, todoID string) (Item, bool) {
	noteID := NoteIDOf(todoID)
	var item Item
	found := false
	scanSections(splitLines(content), func(l listLine) {
		if found || ID(noteID, l.index) != todoID {
			return
		}
		item.Line = l.index
		item.Priority, item.Text = ParsePriority(l.body)
		found = true
	})
	return item, found
}
