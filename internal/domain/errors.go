package domain

import "errors"

// Remote storage errors
var (
	// ErrCredential indicates a missing or unusable access credential
	ErrCredential = errors.New("missing or invalid credential")

	// ErrRemoteUnavailable indicates a transport or remote-API failure
	// during a list/create/upload call
	ErrRemoteUnavailable = errors.New("remote storage unavailable")

	// ErrNotFound indicates the requested resource does not exist.
	// Soft by convention: the child scanner maps it to an empty result.
	ErrNotFound = errors.New("resource not found")

	// ErrAlreadyExists indicates the resource already exists
	ErrAlreadyExists = errors.New("resource already exists")

	// ErrPermissionDenied indicates insufficient permissions
	ErrPermissionDenied = errors.New("permission denied")
)

// Path resolution errors
var (
	// ErrMalformedPath indicates an empty path or all-blank segments
	ErrMalformedPath = errors.New("malformed folder path")
)

// Config errors
var (
	// ErrConfigNotFound indicates config file not found
	ErrConfigNotFound = errors.New("config file not found")

	// ErrConfigInvalid indicates config file is malformed
	ErrConfigInvalid = errors.New("invalid config")
)
