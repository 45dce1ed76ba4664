package domain

import "strings"

// ChangeType represents the type of note change.
type ChangeType int

const (
	// ChangeCreated indicates a new note.
	ChangeCreated ChangeType = iota

	// ChangeUpdated indicates a modified note.
	ChangeUpdated

	// ChangeDeleted indicates a removed note.
	ChangeDeleted
)

// NoteChange represents a change event for a tracked note.
// Content is not carried on the event; the monitor reads it on demand
// so a stale event never evaluates stale text.
type NoteChange struct {
	// NoteID identifies the note, typically its path relative to the
	// vault root.
	NoteID string

	// Type is the kind of change.
	Type ChangeType
}

// WordCount returns the number of words in content, where a word is a
// maximal run of non-whitespace characters. Empty or whitespace-only
// content counts zero words.
func WordCount(content string) int {
	return len(strings.Fields(content))
}
