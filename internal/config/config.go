package config

import (
	"os"
	"strings"
	"time"

	"codeberg.org/mutker/vitalstats/internal/logger"
	"codeberg.org/mutker/vitalstats/internal/units"
	"codeberg.org/mutker/vitalstats/internal/vitals"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Database struct {
	Enabled bool
	Path    string
}

type Config struct {
	// Interval and ArchiveInterval are in seconds.
	Interval        int
	ArchiveInterval int
	UnitSystem      units.System
	Algorithm       vitals.Variant
	Sensor          string
	DiskPath        string
	LogLevel        string
	Debug           bool
	Verbose         bool
	Database        Database
	MetricsAddr     string
	// Bindings holds the raw [vitalstats] section keyed by metric name.
	// It is resolved, and rejected if invalid, when the service starts.
	Bindings map[string]any
	// File is the configuration file that was read, if any.
	File string
	// Query names a metric to print once instead of running the daemon.
	// It is only read from the command line.
	Query string
}

func (c *Config) LoopInterval() time.Duration {
	return time.Duration(c.Interval) * time.Second
}

func (c *Config) ArchivePeriod() time.Duration {
	return time.Duration(c.ArchiveInterval) * time.Second
}

// keys maps flag names to configuration keys.
var keys = map[string]string{
	"interval":         "interval",
	"archive-interval": "archive_interval",
	"unit-system":      "unit_system",
	"algorithm":        "algorithm",
	"sensor":           "sensor",
	"disk-path":        "disk_path",
	"log-level":        "log_level",
	"debug":            "debug",
	"verbose":          "verbose",
	"database":         "database.enabled",
	"database-path":    "database.path",
	"metrics-addr":     "metrics_addr",
}

// Flags returns the command line flags understood by Load.
func Flags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.StringP("config", "c", "", "Path to the configuration file")
	fs.Int("interval", DefaultInterval, "Seconds between LOOP packets")
	fs.Int("archive-interval", DefaultArchiveInterval, "Seconds between ARCHIVE records")
	fs.String("unit-system", DefaultUnitSystem, "Unit system of records (US, METRIC, METRICWX)")
	fs.String("algorithm", string(vitals.Aggregate), "CPU normalization (aggregate, per_cpu)")
	fs.String("sensor", vitals.DefaultSensorKey, "Temperature sensor key")
	fs.String("disk-path", vitals.DefaultDiskPath, "Filesystem reported by disk_avail")
	fs.String("log-level", DefaultLogLevel, "Log level (debug, info, warning, error)")
	fs.BoolP("debug", "d", false, "Enable debugging mode")
	fs.BoolP("verbose", "v", false, "Enable verbose logging")
	fs.Bool("database", false, "Store archive records in SQLite")
	fs.String("database-path", DefaultDatabasePath, "Path to the SQLite database")
	fs.String("metrics-addr", "", "Address serving Prometheus metrics, empty to disable")
	fs.StringP("query", "q", "", "Print the current value of one metric and exit")
	return fs
}

// Load reads configuration from defaults, the configuration file,
// environment variables and args, in increasing order of precedence.
func Load(args []string, opts ...Option) (*Config, error) {
	o := &options{envPrefix: DefaultEnvPrefix}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	fs := Flags(DefaultConfigName)
	if err := fs.Parse(args); err != nil {
		return nil, errFactory.Wrap(ErrBindFlags, err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(o.envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlag("config", fs.Lookup("config")); err != nil {
		return nil, errFactory.Wrap(ErrBindFlags, err)
	}
	for flag, key := range keys {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return nil, errFactory.Wrap(ErrBindFlags, err)
		}
	}

	path := o.configPath
	if path == "" {
		path = v.GetString("config")
	}
	if err := readConfig(v, path); err != nil {
		return nil, err
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}

	query, err := fs.GetString("query")
	if err != nil {
		return nil, errFactory.Wrap(ErrBindFlags, err)
	}
	cfg.Query = strings.TrimSpace(query)

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("interval", DefaultInterval)
	v.SetDefault("archive_interval", DefaultArchiveInterval)
	v.SetDefault("unit_system", DefaultUnitSystem)
	v.SetDefault("algorithm", string(vitals.Aggregate))
	v.SetDefault("sensor", vitals.DefaultSensorKey)
	v.SetDefault("disk_path", vitals.DefaultDiskPath)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("database.enabled", false)
	v.SetDefault("database.path", DefaultDatabasePath)
}

func readConfig(v *viper.Viper, path string) error {
	v.SetConfigType("toml")

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return errFactory.Wrap(ErrReadConfig, err)
		}
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.AddConfigPath(DefaultConfigDir)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return errFactory.Wrap(ErrReadConfig, err)
		}
	}

	return nil
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Interval:        v.GetInt("interval"),
		ArchiveInterval: v.GetInt("archive_interval"),
		Sensor:          v.GetString("sensor"),
		DiskPath:        v.GetString("disk_path"),
		LogLevel:        v.GetString("log_level"),
		Debug:           v.GetBool("debug"),
		Verbose:         v.GetBool("verbose"),
		Database: Database{
			Enabled: v.GetBool("database.enabled"),
			Path:    v.GetString("database.path"),
		},
		MetricsAddr: v.GetString("metrics_addr"),
		Bindings:    bindings(v),
		File:        v.ConfigFileUsed(),
	}

	sys, err := units.ParseSystem(strings.TrimSpace(v.GetString("unit_system")))
	if err != nil {
		return nil, errFactory.Wrap(ErrInvalidConfig, err)
	}
	cfg.UnitSystem = sys

	variant, err := vitals.ParseVariant(v.GetString("algorithm"))
	if err != nil {
		return nil, errFactory.Wrap(ErrInvalidConfig, err)
	}
	cfg.Algorithm = variant

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// bindings returns the [vitalstats] section as written. Viper lower cases
// the keys.
func bindings(v *viper.Viper) map[string]any {
	out := map[string]any{}
	raw, ok := v.Get(Section).(map[string]any)
	if !ok {
		return out
	}
	for k, decl := range raw {
		out[k] = decl
	}
	return out
}

// Validate checks the daemon settings. Bindings are checked when the service
// starts.
func (c *Config) Validate() error {
	if c.Interval <= 0 {
		return errFactory.WithData(ErrInvalidConfig, "interval must be positive")
	}
	if c.ArchiveInterval < c.Interval {
		return errFactory.WithData(ErrInvalidConfig, "archive_interval must not be shorter than interval")
	}
	if c.DiskPath == "" {
		return errFactory.WithData(ErrInvalidConfig, "disk_path must not be empty")
	}
	if c.Database.Enabled && c.Database.Path == "" {
		return errFactory.WithData(ErrInvalidConfig, "database.path must be set when the database is enabled")
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}
