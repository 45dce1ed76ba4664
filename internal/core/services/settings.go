package services

import (
	"fmt"
	"math"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driven"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driving"
	"github.com/custodia-labs/recall-cli/internal/logger"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyInterval      = "recall.interval_minutes"
	keyWordThreshold = "recall.word_threshold"
	keyRepeat        = "recall.repeat"
	keyCountMode     = "recall.count_mode"
	keyCooldown      = "recall.cooldown_minutes"
	keyQuizCommand   = "quiz.command"
)

// SettingsService manages quiz trigger settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current settings. Persisted values are merged over
// defaults field by field; a missing or malformed field falls back to
// its default without affecting the others.
func (s *SettingsService) Get() (*domain.RecallSettings, error) {
	defaults := domain.DefaultRecallSettings()

	settings := &domain.RecallSettings{
		QuizInterval:  s.getPositiveFloat(keyInterval, defaults.QuizInterval),
		WordThreshold: s.getPositiveInt(keyWordThreshold, defaults.WordThreshold),
		Repeat:        s.getBool(keyRepeat, defaults.Repeat),
		CountMode:     s.getCountMode(defaults.CountMode),
		Cooldown:      s.getNonNegativeFloat(keyCooldown, defaults.Cooldown),
		QuizCommand:   s.configStore.GetString(keyQuizCommand), // No default - empty means print a prompt
	}

	return settings, nil
}

// Save persists the full settings set.
func (s *SettingsService) Save(settings *domain.RecallSettings) error {
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("validate settings: %w", err)
	}

	if err := s.configStore.Set(keyInterval, settings.QuizInterval); err != nil {
		return fmt.Errorf("save interval: %w", err)
	}
	if err := s.configStore.Set(keyWordThreshold, settings.WordThreshold); err != nil {
		return fmt.Errorf("save word threshold: %w", err)
	}
	if err := s.configStore.Set(keyRepeat, settings.Repeat); err != nil {
		return fmt.Errorf("save repeat: %w", err)
	}
	if err := s.configStore.Set(keyCountMode, settings.CountMode.String()); err != nil {
		return fmt.Errorf("save count mode: %w", err)
	}
	if err := s.configStore.Set(keyCooldown, settings.Cooldown); err != nil {
		return fmt.Errorf("save cooldown: %w", err)
	}
	if err := s.configStore.Set(keyQuizCommand, settings.QuizCommand); err != nil {
		return fmt.Errorf("save quiz command: %w", err)
	}

	return nil
}

// SetInterval updates the quiz interval in minutes.
// Rejects non-positive or non-finite values, leaving the prior value
// unchanged.
func (s *SettingsService) SetInterval(minutes float64) error {
	if minutes <= 0 || math.IsNaN(minutes) || math.IsInf(minutes, 0) {
		return fmt.Errorf("%w: interval must be a positive number of minutes, got %v",
			domain.ErrInvalidInput, minutes)
	}
	return s.persist(keyInterval, minutes)
}

// SetWordThreshold updates the word-count threshold.
// Rejects non-positive values, leaving the prior value unchanged.
func (s *SettingsService) SetWordThreshold(words int) error {
	if words <= 0 {
		return fmt.Errorf("%w: word threshold must be a positive integer, got %d",
			domain.ErrInvalidInput, words)
	}
	return s.persist(keyWordThreshold, words)
}

// SetRepeat updates whether the interval timer rearms after firing.
func (s *SettingsService) SetRepeat(repeat bool) error {
	return s.persist(keyRepeat, repeat)
}

// SetCountMode updates how edited-word volume is measured.
func (s *SettingsService) SetCountMode(mode domain.CountMode) error {
	if !mode.IsValid() {
		return fmt.Errorf("%w: unknown count mode %q", domain.ErrInvalidInput, mode)
	}
	return s.persist(keyCountMode, mode.String())
}

// SetCooldown updates the word-count trigger cooldown in minutes.
// Zero disables the cooldown.
func (s *SettingsService) SetCooldown(minutes float64) error {
	if minutes < 0 || math.IsNaN(minutes) || math.IsInf(minutes, 0) {
		return fmt.Errorf("%w: cooldown must be zero or a positive number of minutes, got %v",
			domain.ErrInvalidInput, minutes)
	}
	return s.persist(keyCooldown, minutes)
}

// SetQuizCommand updates the external quiz command. Empty clears it.
func (s *SettingsService) SetQuizCommand(command string) error {
	return s.persist(keyQuizCommand, command)
}

// Validate checks if current settings are valid.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return settings.Validate()
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.RecallSettings {
	return domain.DefaultRecallSettings()
}

// persist stores a validated value. A save failure is a non-fatal
// warning: the in-memory value remains authoritative until the next
// successful save.
func (s *SettingsService) persist(key string, value any) error {
	if err := s.configStore.Set(key, value); err != nil {
		logger.Warn("settings: failed to persist %s: %v", key, err)
	}
	return nil
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getPositiveFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	val := s.configStore.GetFloat64(key)
	if val <= 0 || math.IsNaN(val) || math.IsInf(val, 0) {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getNonNegativeFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	val := s.configStore.GetFloat64(key)
	if val < 0 || math.IsNaN(val) || math.IsInf(val, 0) {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getPositiveInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getCountMode(defaultVal domain.CountMode) domain.CountMode {
	val := s.configStore.GetString(keyCountMode)
	if val == "" {
		return defaultVal
	}
	mode := domain.CountMode(val)
	if !mode.IsValid() {
		return defaultVal
	}
	return mode
}
