package logger_test

import (
	"bytes"
	"testing"

	"codeberg.org/mutker/vitalstats/internal/errors"
	"codeberg.org/mutker/vitalstats/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want logger.LogLevel
	}{
		{"debug", logger.DebugLevel},
		{" INFO ", logger.InfoLevel},
		{"warning", logger.WarnLevel},
		{"warn", logger.WarnLevel},
		{"error", logger.ErrorLevel},
	}
	for _, tt := range tests {
		got, err := logger.ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := logger.ParseLevel("loud")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrInvalidLogLevel))
}

func TestComponentLogger(t *testing.T) {
	var buf bytes.Buffer
	logger.InitWithWriter(&buf, true)
	logger.SetLogLevel(logger.DebugLevel)
	defer logger.SetLogLevel(logger.WarnLevel)

	log := logger.Get().With("evaluator")
	log.Debug().Str("metric", "cpu_temp").Msg("evaluated")
	log.WarnWithCode(errors.New().WithData(errors.ErrSensorUnavailable, "cpu_temp")).Msg("skipped")

	out := buf.String()
	assert.Contains(t, out, "evaluator")
	assert.Contains(t, out, "cpu_temp")
	assert.Contains(t, out, "sensor_unavailable")
}
