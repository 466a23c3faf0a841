package driven

// ConfigStore holds the settings written by "settings set", keyed by dotted
// names such as "delivery.url". Values are raw; SettingsService parses and
// validates them when resolving.
type ConfigStore interface {
	// Get returns the value stored under key and whether it exists.
	Get(key string) (any, bool)

	// Set stores a value in memory. It is not persisted until Save.
	Set(key string, value any) error

	// Save persists every stored value.
	Save() error
}
