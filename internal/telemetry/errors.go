package telemetry

import "codeberg.org/mutker/vitalstats/internal/errors"

const (
	// Configuration Errors
	ErrInvalidConfig = errors.ErrorCode("telemetry_invalid_config")
	ErrInvalidAddr   = errors.ErrorCode("telemetry_invalid_addr")

	// Server Errors
	ErrServe           = errors.ErrorCode("telemetry_serve_failed")
	ErrServiceShutdown = errors.ErrorCode("telemetry_service_shutdown_failed")
)
