package driving

import "github.com/custodia-labs/recall-cli/internal/core/domain"

// SettingsService manages quiz trigger settings.
type SettingsService interface {
	// Get retrieves current settings, merging persisted values over
	// defaults field by field.
	Get() (*domain.RecallSettings, error)

	// Save persists the full settings set.
	Save(settings *domain.RecallSettings) error

	// SetInterval updates the quiz interval in minutes.
	SetInterval(minutes float64) error

	// SetWordThreshold updates the word-count threshold.
	SetWordThreshold(words int) error

	// SetRepeat updates whether the interval timer rearms after firing.
	SetRepeat(repeat bool) error

	// SetCountMode updates how edited-word volume is measured.
	SetCountMode(mode domain.CountMode) error

	// SetCooldown updates the word-count trigger cooldown in minutes.
	SetCooldown(minutes float64) error

	// SetQuizCommand updates the external quiz command.
	SetQuizCommand(command string) error

	// Validate checks if current settings are valid.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.RecallSettings
}
