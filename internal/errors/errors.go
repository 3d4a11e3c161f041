// Package errors defines domain-level errors used throughout the application.
// These errors represent business logic failures and are mapped to appropriate HTTP status codes at the API boundary.
//
// Unmapped errors returned from API endpoints default to HTTP 500 Internal Server Error,
// so new errors added here should also be added to mapError (internal/api/server.go).
package errors

import (
	"errors"
)

var (
	// ErrEntryNotFound indicates that no aggregated entry matched the requested name (and scope, when given).
	// Recommended to map to HTTP 404 Not Found.
	ErrEntryNotFound = errors.New("server entry not found")

	// ErrAmbiguousEntry indicates that a name matched entries in more than one scope
	// and the caller did not disambiguate.
	ErrAmbiguousEntry = errors.New("server entry name is ambiguous across scopes")

	// ErrManagedImmutable indicates an attempt to toggle an entry owned by the
	// administrator-managed source. Managed entries are always enabled and never mutated.
	ErrManagedImmutable = errors.New("managed server entries cannot be toggled")

	// ErrWriteFailed indicates that persisting a toggle mutation failed.
	// A failed toggle write is silent data loss if swallowed, so it always propagates.
	ErrWriteFailed = errors.New("failed to write configuration source")

	// ErrHealthNotTracked indicates that no health result exists for the specified entry.
	// Recommended to map to HTTP 404 Not Found.
	ErrHealthNotTracked = errors.New("entry health is not being tracked")

	// ErrSettingsLoadFailed indicates the tool's own settings file could not be loaded.
	ErrSettingsLoadFailed = errors.New("failed to load settings")
)
