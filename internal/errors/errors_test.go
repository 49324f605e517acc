package errors_test

import (
	"fmt"
	"testing"

	"codeberg.org/mutker/vitalstats/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessage(t *testing.T) {
	errFactory := errors.New()

	t.Run("uses default message for code", func(t *testing.T) {
		err := errFactory.New(errors.ErrUnknownMetric)
		assert.Equal(t, "Unknown metric", err.Error())
		assert.Equal(t, errors.ErrUnknownMetric, err.Code())
	})

	t.Run("includes data", func(t *testing.T) {
		err := errFactory.WithData(errors.ErrUnknownMetric, "not_a_real_metric")
		assert.Equal(t, "Unknown metric: not_a_real_metric", err.Error())
		assert.Equal(t, "not_a_real_metric", err.GetData())
	})

	t.Run("includes wrapped error", func(t *testing.T) {
		cause := fmt.Errorf("no such file")
		err := errFactory.Wrap(errors.ErrSensorUnavailable, cause)
		assert.Equal(t, "Sensor unavailable: no such file", err.Error())
		assert.Same(t, cause, errors.Unwrap(err))
	})

	t.Run("custom message", func(t *testing.T) {
		err := errFactory.WithMessage(errors.ErrInvalidConfig, "bad binding")
		assert.Equal(t, "bad binding", err.Error())
	})

	t.Run("unknown code falls back to code string", func(t *testing.T) {
		assert.Equal(t, "something_else", errors.GetErrorMessage("something_else"))
	})
}

func TestCodeMatching(t *testing.T) {
	errFactory := errors.New()
	inner := errFactory.WithData(errors.ErrSensorUnavailable, "cpu_temp")
	outer := fmt.Errorf("evaluate: %w", inner)

	require.True(t, errors.Is(outer, errFactory.New(errors.ErrSensorUnavailable)))
	assert.False(t, errors.Is(outer, errFactory.New(errors.ErrUnknownMetric)))
	assert.Equal(t, errors.ErrSensorUnavailable, errors.CodeOf(outer))
	assert.True(t, errors.HasCode(outer, errors.ErrSensorUnavailable))
	assert.False(t, errors.HasCode(nil, errors.ErrSensorUnavailable))
	assert.Equal(t, errors.ErrorCode(""), errors.CodeOf(fmt.Errorf("plain")))
}
