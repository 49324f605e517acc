package binding

import "codeberg.org/mutker/vitalstats/internal/errors"

const (
	ErrInvalidConfig  = errors.ErrInvalidConfig
	ErrUnknownMetric  = errors.ErrUnknownMetric
	ErrUnknownContext = errors.ErrorCode("binding_unknown_context")
	ErrInvalidLabel   = errors.ErrorCode("binding_invalid_label")
	ErrDuplicateKey   = errors.ErrorCode("binding_duplicate_key")
)

var errFactory = errors.New()
