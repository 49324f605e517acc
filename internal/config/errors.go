package config

import "codeberg.org/mutker/vitalstats/internal/errors"

const (
	ErrInvalidConfig   = errors.ErrInvalidConfig
	ErrBindFlags       = errors.ErrBindFlags
	ErrReadConfig      = errors.ErrReadConfig
	ErrInvalidLogLevel = errors.ErrInvalidLogLevel
)

var errFactory = errors.New()
