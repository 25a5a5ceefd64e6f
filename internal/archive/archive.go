// ABOUTME: Export and import formats for notebook backups.
// ABOUTME: JSON bundles carry todo state; markdown files carry YAML frontmatter.

package archive

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harper/notebook/internal/models"
	"gopkg.in/yaml.v3"
)

const Version = "1.0"

var ErrNoFrontmatter = errors.New("no frontmatter")

// Todo is the exported state of one todo.
type Todo struct {
	ID                string          `json:"id,omitempty"`
	Text              string          `json:"text"`
	Priority          models.Priority `json:"priority"`
	Completed         bool            `json:"completed"`
	CreatedAt         time.Time       `json:"created_at"`
	CompletedAt       *time.Time      `json:"completed_at,omitempty"`
	CompletionComment *string         `json:"completion_comment,omitempty"`
	Tags              []string        `json:"tags,omitempty"`
}

type Note struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Content   string    `json:"content" yaml:"-"`
	Tags      []string  `json:"tags" yaml:"tags,omitempty"`
	CreatedAt time.Time `json:"created_at" yaml:"created"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated"`
	Todos     []Todo    `json:"todos,omitempty" yaml:"-"`
	// Done lists the texts of completed todos in markdown exports.
	Done []string `json:"-" yaml:"done,omitempty"`
}

type Bundle struct {
	ExportedAt time.Time `json:"exported_at"`
	Version    string    `json:"version"`
	Notes      []Note    `json:"notes"`
	Todos      []Todo    `json:"todos,omitempty"`
}

func FromTodo(td *models.Todo) Todo {
	return Todo{
		ID:                td.ID,
		Text:              td.Text,
		Priority:          td.Priority,
		Completed:         td.Completed,
		CreatedAt:         td.CreatedAt,
		CompletedAt:       td.CompletedAt,
		CompletionComment: td.CompletionComment,
		Tags:              td.Tags,
	}
}

func FromNote(note *models.Note, todos []*models.Todo) Note {
	n := Note{
		ID:        note.ID.String(),
		Title:     note.Title,
		Content:   note.Content,
		Tags:      note.Tags,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
	for _, td := range todos {
		n.Todos = append(n.Todos, Todo{
			Text:              td.Text,
			Priority:          td.Priority,
			Completed:         td.Completed,
			CreatedAt:         td.CreatedAt,
			CompletedAt:       td.CompletedAt,
			CompletionComment: td.CompletionComment,
		})
		if td.Completed {
			n.Done = append(n.Done, td.Text)
		}
	}
	return n
}

// Model converts an exported note back to a model. An unparseable id yields
// uuid.Nil so the store assigns a new one.
func (n Note) Model() *models.Note {
	note := &models.Note{
		Title:     n.Title,
		Content:   n.Content,
		Tags:      n.Tags,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
	if id, err := uuid.Parse(n.ID); err == nil {
		note.ID = id
	}
	return note
}

// PriorTodos returns the exported todo state used to seed reconciliation.
// Markdown exports only know which texts were done.
func (n Note) PriorTodos() []*models.Todo {
	var out []*models.Todo
	for _, t := range n.Todos {
		out = append(out, t.Model())
	}
	for _, text := range n.Done {
		out = append(out, &models.Todo{Text: text, Completed: true})
	}
	return out
}

func (t Todo) Model() *models.Todo {
	return &models.Todo{
		ID:                t.ID,
		Text:              t.Text,
		Priority:          t.Priority,
		Completed:         t.Completed,
		CreatedAt:         t.CreatedAt,
		CompletedAt:       t.CompletedAt,
		CompletionComment: t.CompletionComment,
		Tags:              t.Tags,
	}
}

func WriteJSON(w io.Writer, b *Bundle) error {
	if b.Version == "" {
		b.Version = Version
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(b)
}

func ReadJSON(r io.Reader) (*Bundle, error) {
	var b Bundle
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return nil, fmt.Errorf("decode bundle: %w", err)
	}
	return &b, nil
}

// EncodeMarkdown renders a note as a markdown file with YAML frontmatter.
func EncodeMarkdown(n Note) ([]byte, error) {
	frontmatter, err := yaml.Marshal(n)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(frontmatter)
	buf.WriteString("---\n\n")
	buf.WriteString(n.Content)
	return buf.Bytes(), nil
}

// DecodeMarkdown parses a markdown file. Without frontmatter the whole file
// is content and the title is left empty.
func DecodeMarkdown(data []byte) (Note, error) {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")

	header, body, err := splitFrontmatter(text)
	if errors.Is(err, ErrNoFrontmatter) {
		return Note{Content: strings.TrimSpace(text)}, nil
	}
	if err != nil {
		return Note{}, err
	}

	var n Note
	if err := yaml.Unmarshal([]byte(header), &n); err != nil {
		return Note{}, fmt.Errorf("parse frontmatter: %w", err)
	}
	n.Content = strings.TrimSpace(body)
	return n, nil
}

func splitFrontmatter(text string) (string, string, error) {
	rest, ok := strings.CutPrefix(text, "---\n")
	if !ok {
		return "", "", ErrNoFrontmatter
	}
	if after, ok := strings.CutPrefix(rest, "---\n"); ok {
		return "", after, nil
	}
	idx := strings.Index(rest, "\n---\n")
	if idx < 0 {
		return "", "", errors.New("unterminated frontmatter")
	}
	return rest[:idx+1], rest[idx+len("\n---\n"):], nil
}

// FileName returns a filesystem-safe markdown file name for a title.
func FileName(title string) string {
	replacer := strings.NewReplacer(
		"/", "-", "\\", "-", ":", "-", "*", "-",
		"?", "-", "\"", "-", "<", "-", ">", "-", "|", "-",
	)
	name := strings.TrimSpace(replacer.Replace(title))
	if name == "" {
		name = "untitled"
	}
	if r := []rune(name); len(r) > 100 {
		name = string(r[:100])
	}
	return name + ".md"
}
