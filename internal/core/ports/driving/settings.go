package driving

import "github.com/rostlab/tmvis/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings with defaults applied.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// Set parses and stores one setting by key.
	// Returns domain.ErrInvalidInput for unknown keys or malformed values.
	Set(key, value string) error

	// Keys returns every settable key in display order.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
