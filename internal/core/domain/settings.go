package domain

import "time"

const unknownDescription = "Unknown"

// CountMode defines how edited-word volume is measured against the threshold.
type CountMode string

// Available count modes.
const (
	// CountModeDocument evaluates the changed note's full word count on
	// every change. This matches the historical behaviour; the cooldown
	// setting keeps a large note from refiring on every keystroke.
	CountModeDocument CountMode = "document"

	// CountModeDelta accumulates words added per note since the last
	// trigger and resets the counter when a trigger fires.
	CountModeDelta CountMode = "delta"
)

// IsValid returns true if the count mode is recognised.
func (m CountMode) IsValid() bool {
	switch m {
	case CountModeDocument, CountModeDelta:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m CountMode) String() string {
	return string(m)
}

// Description returns a human-readable description of the mode.
func (m CountMode) Description() string {
	switch m {
	case CountModeDocument:
		return "Document (full note word count per change)"
	case CountModeDelta:
		return "Delta (words added since last quiz)"
	default:
		return unknownDescription
	}
}

// RecallSettings holds all quiz trigger configuration.
type RecallSettings struct {
	// QuizInterval is the wall-clock interval between quizzes, in minutes.
	// Must be positive. Fractional minutes are allowed.
	QuizInterval float64

	// WordThreshold is the edited-word volume that fires an immediate
	// quiz. Must be a positive integer.
	WordThreshold int

	// Repeat controls whether the interval timer rearms itself after
	// firing. When false the timer fires once per explicit arm.
	Repeat bool

	// CountMode selects how edited-word volume is measured.
	CountMode CountMode

	// Cooldown is the minimum gap between word-count triggers, in
	// minutes. Prevents runaway refiring in document mode.
	Cooldown float64

	// QuizCommand is an optional external command to run when a quiz
	// fires. Empty means print a prompt instead.
	QuizCommand string
}

// Default values for RecallSettings.
const (
	DefaultQuizIntervalMinutes = 5.0
	DefaultWordThreshold       = 500
	DefaultCooldownMinutes     = 1.0
)

// DefaultRecallSettings returns settings with sensible defaults.
func DefaultRecallSettings() RecallSettings {
	return RecallSettings{
		QuizInterval:  DefaultQuizIntervalMinutes,
		WordThreshold: DefaultWordThreshold,
		Repeat:        true,
		CountMode:     CountModeDocument,
		Cooldown:      DefaultCooldownMinutes,
	}
}

// IntervalDuration returns the quiz interval as a time.Duration.
func (s RecallSettings) IntervalDuration() time.Duration {
	return minutesToDuration(s.QuizInterval)
}

// CooldownDuration returns the word-count cooldown as a time.Duration.
func (s RecallSettings) CooldownDuration() time.Duration {
	return minutesToDuration(s.Cooldown)
}

// Validate checks that the settings satisfy their invariants.
// Both the interval and the word threshold must be positive.
func (s RecallSettings) Validate() error {
	if s.QuizInterval <= 0 {
		return ErrInvalidInput
	}
	if s.WordThreshold <= 0 {
		return ErrInvalidInput
	}
	if s.Cooldown < 0 {
		return ErrInvalidInput
	}
	if !s.CountMode.IsValid() {
		return ErrInvalidInput
	}
	return nil
}

// AllCountModes returns all available count modes.
func AllCountModes() []CountMode {
	return []CountMode{
		CountModeDocument,
		CountModeDelta,
	}
}

// minutesToDuration converts fractional minutes to a duration.
func minutesToDuration(minutes float64) time.Duration {
	return time.Duration(minutes * float64(time.Minute))
}
