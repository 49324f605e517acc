package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"codeberg.org/mutker/vitalstats/internal/config"
	"codeberg.org/mutker/vitalstats/internal/errors"
	"codeberg.org/mutker/vitalstats/internal/units"
	"codeberg.org/mutker/vitalstats/internal/vitals"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vitalstats.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
interval = 5
archive_interval = 60
unit_system = "METRICWX"
algorithm = "per_cpu"
sensor = "coretemp_package_id_0"
disk_path = "/srv"
log_level = "debug"
metrics_addr = ":9105"

[database]
enabled = true
path = "/path/to/vitalstats.db"

[vitalstats]
cpu_load = "loop, archive"
cpu_temp = ["archive"]
mem_avail = ""
`)

	cfg, err := config.Load(nil, config.WithConfigFile(path))
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Interval)
	assert.Equal(t, 5*time.Second, cfg.LoopInterval())
	assert.Equal(t, time.Minute, cfg.ArchivePeriod())
	assert.Equal(t, units.MetricWX, cfg.UnitSystem)
	assert.Equal(t, vitals.PerCPU, cfg.Algorithm)
	assert.Equal(t, "coretemp_package_id_0", cfg.Sensor)
	assert.Equal(t, "/srv", cfg.DiskPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, ":9105", cfg.MetricsAddr)
	assert.True(t, cfg.Database.Enabled)
	assert.Equal(t, "/path/to/vitalstats.db", cfg.Database.Path)
	assert.Equal(t, path, cfg.File)

	assert.Equal(t, map[string]any{
		vitals.CPULoad:  "loop, archive",
		vitals.CPUTemp:  []any{"archive"},
		vitals.MemAvail: "",
	}, cfg.Bindings)
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "")

	cfg, err := config.Load(nil, config.WithConfigFile(path))
	require.NoError(t, err)

	assert.Equal(t, config.DefaultInterval, cfg.Interval)
	assert.Equal(t, config.DefaultArchiveInterval, cfg.ArchiveInterval)
	assert.Equal(t, units.US, cfg.UnitSystem)
	assert.Equal(t, vitals.Aggregate, cfg.Algorithm)
	assert.Equal(t, vitals.DefaultSensorKey, cfg.Sensor)
	assert.Equal(t, vitals.DefaultDiskPath, cfg.DiskPath)
	assert.Equal(t, config.DefaultLogLevel, cfg.LogLevel)
	assert.False(t, cfg.Database.Enabled)
	assert.Empty(t, cfg.MetricsAddr)
	assert.Empty(t, cfg.Bindings)
}

func TestLoadPrecedence(t *testing.T) {
	path := writeConfig(t, `
interval = 5
unit_system = "METRIC"
log_level = "warning"
`)

	t.Run("environment overrides the file", func(t *testing.T) {
		t.Setenv("VITALSTATS_INTERVAL", "10")
		t.Setenv("VITALSTATS_DATABASE_ENABLED", "true")

		cfg, err := config.Load(nil, config.WithConfigFile(path))
		require.NoError(t, err)
		assert.Equal(t, 10, cfg.Interval)
		assert.True(t, cfg.Database.Enabled)
		assert.Equal(t, units.Metric, cfg.UnitSystem)
	})

	t.Run("flags override environment and file", func(t *testing.T) {
		t.Setenv("VITALSTATS_INTERVAL", "10")

		cfg, err := config.Load([]string{"--interval", "3", "--unit-system", "US", "--log-level", "error"},
			config.WithConfigFile(path))
		require.NoError(t, err)
		assert.Equal(t, 3, cfg.Interval)
		assert.Equal(t, units.US, cfg.UnitSystem)
		assert.Equal(t, "error", cfg.LogLevel)
	})

	t.Run("config file from environment", func(t *testing.T) {
		t.Setenv("VITALSTATS_CONFIG", path)

		cfg, err := config.Load(nil)
		require.NoError(t, err)
		assert.Equal(t, path, cfg.File)
		assert.Equal(t, 5, cfg.Interval)
	})

	t.Run("config file from flag", func(t *testing.T) {
		cfg, err := config.Load([]string{"--config", path})
		require.NoError(t, err)
		assert.Equal(t, units.Metric, cfg.UnitSystem)
	})

	t.Run("query is only taken from the command line", func(t *testing.T) {
		t.Setenv("VITALSTATS_QUERY", "cpu_load")

		cfg, err := config.Load(nil, config.WithConfigFile(path))
		require.NoError(t, err)
		assert.Empty(t, cfg.Query)

		cfg, err = config.Load([]string{"--query", " cpu_temp "}, config.WithConfigFile(path))
		require.NoError(t, err)
		assert.Equal(t, "cpu_temp", cfg.Query)
	})

	t.Run("custom environment prefix", func(t *testing.T) {
		t.Setenv("WXHOST_SENSOR", "k10temp")

		cfg, err := config.Load(nil, config.WithConfigFile(path), config.WithEnvPrefix("WXHOST"))
		require.NoError(t, err)
		assert.Equal(t, "k10temp", cfg.Sensor)
	})
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		args    []string
		code    errors.ErrorCode
	}{
		{
			name:    "invalid format",
			content: "This is not a valid TOML file",
			code:    config.ErrReadConfig,
		},
		{
			name:    "invalid log level",
			content: `log_level = "invalid"`,
			code:    config.ErrInvalidLogLevel,
		},
		{
			name:    "unknown unit system",
			content: `unit_system = "IMPERIAL"`,
			code:    config.ErrInvalidConfig,
		},
		{
			name:    "unknown algorithm",
			content: `algorithm = "fastest"`,
			code:    config.ErrInvalidConfig,
		},
		{
			name:    "zero interval",
			content: `interval = 0`,
			code:    config.ErrInvalidConfig,
		},
		{
			name:    "archive interval shorter than loop interval",
			content: "interval = 10\narchive_interval = 5",
			code:    config.ErrInvalidConfig,
		},
		{
			name: "unknown flag",
			args: []string{"--temperature", "80"},
			code: config.ErrBindFlags,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)

			_, err := config.Load(tt.args, config.WithConfigFile(path))

			require.Error(t, err)
			assert.True(t, errors.HasCode(err, tt.code), "got %v", err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(nil, config.WithConfigFile(filepath.Join(t.TempDir(), "missing.toml")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to read config file")
}

func TestBindingsAreNotValidatedAtLoad(t *testing.T) {
	path := writeConfig(t, `
[vitalstats]
cpu_fan = "loop"
`)

	cfg, err := config.Load(nil, config.WithConfigFile(path))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"cpu_fan": "loop"}, cfg.Bindings)
}
