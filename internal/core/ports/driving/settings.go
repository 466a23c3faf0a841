package driving

import "github.com/custodia-labs/leasefill/internal/core/domain"

// SettingsService resolves and persists application settings.
type SettingsService interface {
	// Get returns the resolved settings: overrides, then environment,
	// then the config file, then defaults.
	Get() domain.AppSettings

	// Set persists a value to the config file. Keys are the dotted names
	// returned by Keys.
	Set(key, value string) error

	// Keys returns every settable key.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// Describe lists every setting with its resolved value and source.
	Describe() []SettingValue
}

// SettingValue is one resolved setting and where it came from.
type SettingValue struct {
	Key string

	// Value is masked for credentials.
	Value string

	// Source is "override", "env", "file" or "default".
	Source string

	// Env lists the environment variables consulted, if any.
	Env []string
}
