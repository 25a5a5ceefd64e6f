package todo

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/harper/notebook/internal/models"
)

type extracted struct {
	ID       string
	Text     string
	Priority models.Priority
}

func summarize(todos []*models.Todo) []extracted {
	var out []extracted
	for _, td := range todos {
		out = append(out, extracted{ID: td.ID, Text: td.Text, Priority: td.Priority})
	}
	return out
}

func TestExtract(t *testing.T) {
	noteID := uuid.New()
	id := func(line int) string { return ID(noteID.String(), line) }

	tests := []struct {
		name    string
		content string
		want    []extracted
	}{
		{
			name:    "priorities",
			content: "## TODO\n- [H] Fix bug\n- Write docs\n",
			want: []extracted{
				{id(1), "Fix bug", models.PriorityHigh},
				{id(2), "Write docs", models.PriorityMedium},
			},
		},
		{
			name:    "next heading closes section",
			content: "## TODO\n- a\n## Notes\n- b\n",
			want:    []extracted{{id(1), "a", models.PriorityMedium}},
		},
		{
			name:    "prose closes section",
			content: "# TODO\n- a\nSome prose\n- b\n",
			want:    []extracted{{id(1), "a", models.PriorityMedium}},
		},
		{
			name:    "blank and indented lines keep section open",
			content: "# todo\n- a\n\n   continuation\n* b\n  - nested\n",
			want: []extracted{
				{id(1), "a", models.PriorityMedium},
				{id(4), "b", models.PriorityMedium},
				{id(5), "nested", models.PriorityMedium},
			},
		},
		{
			name:    "multiple sections",
			content: "## TODO\n- one\n## Log\n- skipped\n### TODO\n- ! two\n",
			want: []extracted{
				{id(1), "one", models.PriorityMedium},
				{id(5), "two", models.PriorityLow},
			},
		},
		{
			name:    "empty items dropped",
			content: "## TODO\n-\n- [H]\n- real\n",
			want:    []extracted{{id(3), "real", models.PriorityMedium}},
		},
		{
			name:    "outside section ignored",
			content: "# Intro\n- not a todo\n## TODO list\n- still not\n",
			want:    nil,
		},
		{
			name:    "heading without space",
			content: "##TODO\n- tight\n",
			want:    []extracted{{id(1), "tight", models.PriorityMedium}},
		},
		{
			name:    "crlf",
			content: "## TODO\r\n- windows\r\n",
			want:    []extracted{{id(1), "windows", models.PriorityMedium}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := summarize(Extract(noteID, tt.content, "Title"))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Extract mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtractNWellFormedItems(t *testing.T) {
	for n := 0; n < 20; n++ {
		var sb strings.Builder
		sb.WriteString("## TODO\n")
		for i := 0; i < n; i++ {
			fmt.Fprintf(&sb, "- item %d\n", i)
		}

		todos := Extract(uuid.New(), sb.String(), "N")
		if len(todos) != n {
			t.Fatalf("n=%d: expected %d todos, got %d", n, n, len(todos))
		}
		for i, td := range todos {
			if td.Text != fmt.Sprintf("item %d", i) {
				t.Errorf("n=%d: todo %d out of order: %q", n, i, td.Text)
			}
			if td.Priority != models.PriorityMedium {
				t.Errorf("n=%d: expected medium, got %q", n, td.Priority)
			}
		}
	}
}

func TestExtractFillsNoteFields(t *testing.T) {
	noteID := uuid.New()
	todos := Extract(noteID, "## TODO\n- a\n", "Groceries")

	if len(todos) != 1 {
		t.Fatalf("expected 1 todo, got %d", len(todos))
	}
	td := todos[0]
	if td.NoteID == nil || *td.NoteID != noteID {
		t.Errorf("expected note id %v, got %v", noteID, td.NoteID)
	}
	if td.NoteTitle != "Groceries" {
		t.Errorf("expected note title snapshot, got %q", td.NoteTitle)
	}
	if td.Completed {
		t.Error("expected fresh todo to be open")
	}
}

func TestExtractIdempotent(t *testing.T) {
	noteID := uuid.New()
	content := "# Plan\n\n## TODO\n- [H] a\n- b\n- [L] c\n"
	ignoreID := func(in []extracted) []extracted {
		for i := range in {
			in[i].ID = ""
		}
		return in
	}

	first := summarize(Extract(noteID, content, "Plan"))
	second := summarize(Extract(noteID, content, "Plan"))
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second extraction differs (-first +second):\n%s", diff)
	}

	shifted := summarize(Extract(noteID, "Preface\n\n"+content, "Plan"))
	if diff := cmp.Diff(ignoreID(first), ignoreID(shifted)); diff != "" {
		t.Errorf("shifted extraction differs beyond ids (-first +shifted):\n%s", diff)
	}
}

func TestNoteIDOf(t *testing.T) {
	noteID := uuid.New().String()

	if got := NoteIDOf(ID(noteID, 12)); got != noteID {
		t.Errorf("expected %q, got %q", noteID, got)
	}
	if got := NoteIDOf("plain"); got != "plain" {
		t.Errorf("expected identifier without index to round trip, got %q", got)
	}
}
