package evaluator

import "codeberg.org/mutker/vitalstats/internal/errors"

const (
	ErrUnknownMetric         = errors.ErrUnknownMetric
	ErrUnknownType           = errors.ErrUnknownType
	ErrSensorUnavailable     = errors.ErrSensorUnavailable
	ErrConversionUnavailable = errors.ErrConversionUnavailable
)

var errFactory = errors.New()
