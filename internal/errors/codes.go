package errors

// Common error codes
const (
	// System errors
	ErrInternal       ErrorCode = "internal_error"
	ErrAlreadyRunning ErrorCode = "already_running"

	// Configuration errors
	ErrInvalidConfig ErrorCode = "invalid_configuration"
	ErrBindFlags     ErrorCode = "bind_flags_failed"
	ErrReadConfig    ErrorCode = "read_config_failed"

	// Logging errors
	ErrInvalidLogLevel ErrorCode = "invalid_log_level"

	// Initialization errors
	ErrInitFailed     ErrorCode = "initialization_failed"
	ErrShutdownFailed ErrorCode = "shutdown_failed"

	// Evaluation errors
	ErrUnknownMetric         ErrorCode = "unknown_metric"
	ErrUnknownType           ErrorCode = "unknown_type"
	ErrSensorUnavailable     ErrorCode = "sensor_unavailable"
	ErrConversionUnavailable ErrorCode = "conversion_unavailable"

	// Application errors
	ErrInitApp      ErrorCode = "init_app_failed"
	ErrMainLoop     ErrorCode = "main_loop_failed"
	ErrInvalidState ErrorCode = "invalid_state"

	// Operation errors
	ErrTimeout ErrorCode = "operation_timeout"
)

// Common error messages
var errorMessages = map[ErrorCode]string{
	ErrInternal:              "Internal error occurred",
	ErrAlreadyRunning:        "Another instance is already running",
	ErrInvalidConfig:         "Invalid configuration",
	ErrBindFlags:             "Failed to bind flags",
	ErrReadConfig:            "Failed to read config file",
	ErrInvalidLogLevel:       "Invalid log level",
	ErrInitFailed:            "Initialization failed",
	ErrShutdownFailed:        "Shutdown failed",
	ErrUnknownMetric:         "Unknown metric",
	ErrUnknownType:           "Unknown observation type",
	ErrSensorUnavailable:     "Sensor unavailable",
	ErrConversionUnavailable: "Conversion unavailable",
	ErrInitApp:               "Failed to initialize application",
	ErrMainLoop:              "Error in main loop",
	ErrInvalidState:          "Invalid state transition",
	ErrTimeout:               "Operation timed out",
}

// GetErrorMessage returns the message for a given error code
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}

	return string(code)
}
