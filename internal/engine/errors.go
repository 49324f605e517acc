package engine

import "codeberg.org/mutker/vitalstats/internal/errors"

const (
	ErrInvalidInterval = errors.ErrorCode("engine_invalid_interval")
	ErrStoreRecord     = errors.ErrorCode("engine_store_record_failed")
)

var errFactory = errors.New()
