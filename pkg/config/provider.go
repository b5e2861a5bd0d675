package config

// ConfigProvider defines the interface for configuration sources.
type ConfigProvider interface {
	// LoadConfig loads the complete run configuration with defaults applied.
	LoadConfig() (*ConfigData, error)

	Close() error
}
