package domain

import "time"

// TriggerReason identifies which signal fired a quiz trigger.
type TriggerReason string

// Available trigger reasons.
const (
	// TriggerReasonInterval means the wall-clock interval elapsed.
	TriggerReasonInterval TriggerReason = "interval"

	// TriggerReasonWordCount means edited-word volume crossed the
	// threshold.
	TriggerReasonWordCount TriggerReason = "word_count"
)

// IsValid returns true if the trigger reason is recognised.
func (r TriggerReason) IsValid() bool {
	switch r {
	case TriggerReasonInterval, TriggerReasonWordCount:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (r TriggerReason) String() string {
	return string(r)
}

// Description returns a human-readable description of the reason.
func (r TriggerReason) Description() string {
	switch r {
	case TriggerReasonInterval:
		return "Interval elapsed"
	case TriggerReasonWordCount:
		return "Word threshold crossed"
	default:
		return unknownDescription
	}
}

// TriggerRecord represents one fired quiz trigger.
type TriggerRecord struct {
	// ID is the unique identifier for the record.
	ID string

	// Reason is the signal that fired the trigger.
	Reason TriggerReason

	// NoteID is the note that crossed the threshold. Empty for
	// interval triggers.
	NoteID string

	// WordCount is the measured word volume at fire time. Zero for
	// interval triggers.
	WordCount int

	// FiredAt is when the trigger fired.
	FiredAt time.Time
}
