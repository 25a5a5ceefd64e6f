// ABOUTME: Notebook service coordinating note writes, TODO reconciliation and tag sync.
// ABOUTME: Writes to one note are serialized in-process and each reconcile runs in a transaction.

package notebook

import (
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"sync"
)

var (
	// ErrStandaloneTodo is returned when a note-only operation targets a todo
	// without a note.
	ErrStandaloneTodo = errors.New("todo is not linked to a note")
	// ErrNoteLinkedTodo is returned when a direct update tries to change the
	// text, priority or tags of a todo whose source of truth is its note.
	ErrNoteLinkedTodo = errors.New("todo is linked to a note; edit it through the note")
	// ErrTodoNotApplicable is returned when a todo identifier no longer
	// points at its line in the note.
	ErrTodoNotApplicable = errors.New("todo no longer matches its note line")
	ErrInvalidInput      = errors.New("invalid input")
	ErrNoteExists        = errors.New("note already exists")
)

type Service struct {
	db     *sql.DB
	logger *slog.Logger
	locks  *keyedMutex
}

type Option func(*Service)

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New creates a service over an open database handle. The caller owns the
// handle and closes it on shutdown.
func New(db *sql.DB, opts ...Option) *Service {
	s := &Service{
		db:    db,
		locks: newKeyedMutex(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

// DB exposes the underlying handle for read-only helpers such as export.
func (s *Service) DB() *sql.DB {
	return s.db
}

// keyedMutex hands out one mutex per key and forgets keys nobody holds.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedEntry
}

type keyedEntry struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*keyedEntry)}
}

// Lock blocks until key is free and returns the matching unlock.
func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &keyedEntry{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		k.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
