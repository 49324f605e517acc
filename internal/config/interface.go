package config

const (
	DefaultConfigName      = "vitalstats"
	DefaultConfigDir       = "/etc"
	DefaultEnvPrefix       = "VITALSTATS"
	DefaultInterval        = 2
	DefaultArchiveInterval = 300
	DefaultUnitSystem      = "US"
	DefaultLogLevel        = "info"
	DefaultDatabasePath    = "/var/lib/vitalstats/vitalstats.db"

	// Section holds the metric bindings.
	Section = "vitalstats"
)

// Option defines a configuration option that can be passed to Load
type Option func(*options) error

// options holds internal configuration options
type options struct {
	configPath string
	envPrefix  string
}

// WithConfigFile specifies an explicit configuration file path
func WithConfigFile(path string) Option {
	return func(o *options) error {
		o.configPath = path
		return nil
	}
}

// WithEnvPrefix specifies a custom environment variable prefix
// Default is "VITALSTATS"
func WithEnvPrefix(prefix string) Option {
	return func(o *options) error {
		if prefix == "" {
			return errFactory.WithData(ErrInvalidConfig, "empty environment prefix")
		}
		o.envPrefix = prefix
		return nil
	}
}
