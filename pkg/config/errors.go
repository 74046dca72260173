package config

import "errors"

// Configuration errors. Validate wraps these so callers can use errors.Is.
var (
	// ErrConfigNotFound is returned when the configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrInvalidConfig wraps field-level validation failures.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNoSource is returned when neither a validator command nor a results
	// manifest is configured.
	ErrNoSource = errors.New("no validation source: set a validator command (--exec) or a results manifest (--manifest)")

	// ErrConflictingSources is returned when both a validator command and a
	// results manifest are configured.
	ErrConflictingSources = errors.New("conflicting validation sources: --exec and --manifest cannot be used together")
)
