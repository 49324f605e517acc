package vitals

import "codeberg.org/mutker/vitalstats/internal/errors"

const (
	ErrUnknownMetric     = errors.ErrUnknownMetric
	ErrSensorUnavailable = errors.ErrSensorUnavailable
	ErrDuplicateMetric   = errors.ErrorCode("vitals_duplicate_metric")
	ErrInvalidDefinition = errors.ErrorCode("vitals_invalid_definition")
	ErrInvalidVariant    = errors.ErrorCode("vitals_invalid_variant")
)

var errFactory = errors.New()
