package driving

import "github.com/custodia-labs/kwscope/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// Set parses and stores a single setting by key.
	// Returns domain.ErrNotFound for an unknown key.
	Set(key, value string) error

	// Keys lists the settable keys in display order.
	Keys() []string

	// Validate checks the current settings.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
