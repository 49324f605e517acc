package service

import "codeberg.org/mutker/vitalstats/internal/errors"

const (
	ErrInvalidConfig = errors.ErrInvalidConfig
	ErrUnknownType   = errors.ErrUnknownType
	ErrInvalidState  = errors.ErrInvalidState
)

var errFactory = errors.New()
