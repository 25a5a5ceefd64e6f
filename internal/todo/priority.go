// ABOUTME: Priority marker lexing for TODO list items.
// ABOUTME: Decodes ten token spellings, encodes one canonical prefix per level.

package todo

import (
	"regexp"
	"strings"

	"github.com/harper/notebook/internal/models"
)

type priorityRule struct {
	re    *regexp.Regexp
	level models.Priority
}

// Tested in order; the first match wins, so !!! must precede !! and !.
var priorityRules = []priorityRule{
	{regexp.MustCompile(`(?i)^(?:\[(?:H|HIGH)\]|!!!)\s*`), models.PriorityHigh},
	{regexp.MustCompile(`(?i)^(?:\[(?:M|MED|MEDIUM)\]|!!)\s*`), models.PriorityMedium},
	{regexp.MustCompile(`(?i)^(?:\[(?:L|LOW)\]|!)\s*`), models.PriorityLow},
}

// ParsePriority strips one leading priority token from a list item body
// (the text after the - or * marker). Without a token the priority is
// medium and the trimmed text is returned as is.
func ParsePriority(text string) (models.Priority, string) {
	text = strings.TrimSpace(text)
	for _, r := range priorityRules {
		if loc := r.re.FindStringIndex(text); loc != nil {
			return r.level, text[loc[1]:]
		}
	}
	return models.PriorityMedium, text
}

// FormatPriority returns the canonical prefix written back into markdown.
// Medium is never written.
func FormatPriority(p models.Priority) string {
	switch p {
	case models.PriorityHigh:
		return "[H] "
	case models.PriorityLow:
		return "[L] "
	default:
		return ""
	}
}
