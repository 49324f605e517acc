package units

import "codeberg.org/mutker/vitalstats/internal/errors"

const (
	ErrConversionUnavailable = errors.ErrConversionUnavailable
	ErrUnknownSystem         = errors.ErrorCode("units_unknown_system")
	ErrInvalidFactor         = errors.ErrorCode("units_invalid_factor")
)
