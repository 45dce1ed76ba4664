package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driven"
)

// Ensure NoteStore implements the interface.
var _ driven.NoteStore = (*NoteStore)(nil)

// NoteStore is an in-memory implementation of driven.NoteStore for
// testing. Tests write note content with SetContent and push change
// events with Emit.
type NoteStore struct {
	mu      sync.Mutex
	notes   map[string]string
	watch   chan domain.NoteChange
	readErr map[string]error
	closed  bool
}

// NewNoteStore creates a new in-memory note store.
func NewNoteStore() *NoteStore {
	return &NoteStore{
		notes:   make(map[string]string),
		readErr: make(map[string]error),
	}
}

// SetContent stores note content without emitting a change event.
func (s *NoteStore) SetContent(noteID, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes[noteID] = content
}

// FailReads makes Read return err for the given note.
func (s *NoteStore) FailReads(noteID string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readErr[noteID] = err
}

// Emit pushes a change event to the active watch channel.
// Blocks until the event is consumed.
func (s *NoteStore) Emit(change domain.NoteChange) {
	s.mu.Lock()
	ch := s.watch
	s.mu.Unlock()
	if ch != nil {
		ch <- change
	}
}

// Read returns the current content of a note.
func (s *NoteStore) Read(_ context.Context, noteID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.readErr[noteID]; err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrContentRead, err)
	}
	content, ok := s.notes[noteID]
	if !ok {
		return "", fmt.Errorf("%w: %s: %w", domain.ErrContentRead, noteID, domain.ErrNotFound)
	}
	return content, nil
}

// Watch returns the change event channel.
func (s *NoteStore) Watch(_ context.Context) (<-chan domain.NoteChange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, domain.ErrWatchClosed
	}
	if s.watch == nil {
		s.watch = make(chan domain.NoteChange)
	}
	return s.watch, nil
}

// Close closes the active watch channel.
func (s *NoteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if s.watch != nil {
		close(s.watch)
		s.watch = nil
	}
	return nil
}
