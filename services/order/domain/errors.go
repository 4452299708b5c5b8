package domain

import "errors"

// Sentinel errors for the order domain. Use errors.Is() to check these.
var (
	// ErrOrderNotFound indicates the requested order does not exist.
	ErrOrderNotFound = errors.New("order not found")

	// ErrOrderExists indicates a save collided with an existing order id.
	// Callers generate ids and are responsible for their uniqueness.
	ErrOrderExists = errors.New("order already exists")

	// ErrInvalidOrder indicates the order violates domain constraints
	// (invalid UUID, no products, negative price or quantity).
	ErrInvalidOrder = errors.New("invalid order")

	// ErrPersistence indicates the backend rejected a write or was
	// unreachable on the primary path. Surfaced to the caller; never
	// retried automatically.
	ErrPersistence = errors.New("persistence failure")

	// ErrBackendUnavailable indicates the configured storage backend is
	// unknown or cannot be opened. Raised at startup, not at runtime.
	ErrBackendUnavailable = errors.New("storage backend unavailable")
)
