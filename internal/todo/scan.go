// ABOUTME: Line-oriented state machine that finds list items inside TODO sections.
// ABOUTME: Shared by extraction, rewriting and lookup so all three agree on line indexes.

package todo

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	todoHeadingRe = regexp.MustCompile(`(?i)^#+\s*TODO$`)
	headingRe     = regexp.MustCompile(`^#+(?:\s|$)`)
)

// listLine is a candidate list item found inside a TODO section.
type listLine struct {
	index  int
	indent string
	marker byte
	body   string
}

func splitLines(content string) []string {
	return strings.Split(content, "\n")
}

// scanSections calls fn for every - or * line inside a TODO section.
func scanSections(lines []string, fn func(listLine)) {
	inside := false
	for i, raw := range lines {
		line := strings.TrimSuffix(raw, "\r")
		trimmed := strings.TrimSpace(line)

		if todoHeadingRe.MatchString(trimmed) {
			inside = true
			continue
		}
		if !inside {
			continue
		}

		switch {
		case strings.HasPrefix(trimmed, "-"), strings.HasPrefix(trimmed, "*"):
			indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
			fn(listLine{
				index:  i,
				indent: indent,
				marker: trimmed[0],
				body:   trimmed[1:],
			})
		case headingRe.MatchString(trimmed):
			inside = false
		case trimmed == "":
		case line[0] == ' ' || line[0] == '\t':
		default:
			inside = false
		}
	}
}

// ID builds the identifier of the item found on line index of a note.
func ID(noteID string, index int) string {
	return fmt.Sprintf("%s-%d", noteID, index)
}

// NoteIDOf returns the note part of a note-linked todo identifier.
func NoteIDOf(todoID string) string {
	i := strings.LastIndex(todoID, "-")
	if i < 0 {
		return todoID
	}
	return todoID[:i]
}
