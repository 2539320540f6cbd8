package domain

import "errors"

var (
	// ErrInvalidKind means a reaction kind outside the deployment's fixed set.
	ErrInvalidKind = errors.New("invalid reaction kind")
	// ErrInvalidIntent means an intent other than add or remove.
	ErrInvalidIntent = errors.New("invalid reaction intent")
	// ErrItemNotFound means the item id has no backing content document.
	// Distinct from "record has zero counts", which is not an error.
	ErrItemNotFound = errors.New("content item not found")
	// ErrStoreUnavailable wraps transient failures of the backing stores.
	// Callers must not assume counts changed.
	ErrStoreUnavailable = errors.New("reaction store unavailable")
	// ErrWriteTokenMissing means no write credential is configured. Mutations
	// fail fast and never partially write.
	ErrWriteTokenMissing = errors.New("content write token not configured")
	// ErrAlreadyInFlight is the single-flight guard: a mutation for this item
	// is still outstanding and the new one was dropped, not queued.
	ErrAlreadyInFlight = errors.New("reaction request already in flight")
)
