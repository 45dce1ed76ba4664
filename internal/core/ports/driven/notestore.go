package driven

import (
	"context"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
)

// NoteStore provides access to the user's notes.
// The host's storage is a black box behind this port: it pushes change
// events and serves content on demand.
type NoteStore interface {
	// Read returns the current content of a note.
	// Returns domain.ErrContentRead (wrapped) if the note cannot be
	// read, e.g. it was deleted between the change event and the read.
	Read(ctx context.Context, noteID string) (string, error)

	// Watch delivers a change event whenever a tracked note is
	// modified. The channel is closed when ctx is cancelled or the
	// store is closed. The subscription is explicit: callers own its
	// lifecycle and must drain the channel until it closes.
	Watch(ctx context.Context) (<-chan domain.NoteChange, error)

	// Close releases resources and closes any active watch channel.
	Close() error
}
