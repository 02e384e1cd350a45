package config

import "errors"

// Validation errors returned when required configuration groups are
// incomplete or invalid.
var (
	// ErrInvalidEndpointConfigs indicates a missing, unknown, or malformed
	// endpoint (for example, a profile without an API URL).
	ErrInvalidEndpointConfigs = errors.New("invalid endpoint configuration")
	// ErrInvalidSyncConfigs indicates invalid timeouts, delays, or reconnect
	// budget.
	ErrInvalidSyncConfigs = errors.New("invalid sync configuration")
	// ErrInvalidServerConfigs indicates invalid backend listen settings.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidStorageConfigs indicates invalid backend storage settings
	// (for example, empty DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
)
