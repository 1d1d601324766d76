// Package apperrors holds the error kinds shared by the durable store, the
// cache sync engine and the HTTP layer.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidIdentifier is returned when an id is neither a legacy UUID nor a durable id.
	ErrInvalidIdentifier = errors.New("invalid identifier format")

	// ErrNotFound is returned when a well-formed id has no matching record.
	ErrNotFound = errors.New("record not found")

	// ErrStoreUnavailable is returned when a store handle is used before it is connected.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrCacheMiss is returned by every cache backend for an absent key or member.
	ErrCacheMiss = errors.New("key not found")
)

// SyncError wraps any failure raised while populating the cache from the durable store.
type SyncError struct {
	// Procedure is the sync procedure that failed, e.g. "artwork_details".
	Procedure string
	// EntityID is the record being processed when the failure happened, if any.
	EntityID string
	Err      error
}

func (e *SyncError) Error() string {
	if e.EntityID == "" {
		return fmt.Sprintf("%s sync failed: %v", e.Procedure, e.Err)
	}
	return fmt.Sprintf("%s sync failed for %s: %v", e.Procedure, e.EntityID, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

// NewSyncError wraps err for the given procedure and entity.
func NewSyncError(procedure, entityID string, err error) *SyncError {
	return &SyncError{Procedure: procedure, EntityID: entityID, Err: err}
}

// InvalidIdentifier annotates ErrInvalidIdentifier with the entity kind and id.
func InvalidIdentifier(entity, id string) error {
	return fmt.Errorf("invalid %s ID format %q: %w", entity, id, ErrInvalidIdentifier)
}

// NotFound annotates ErrNotFound with the entity kind and id.
func NotFound(entity, id string) error {
	return fmt.Errorf("%s %s: %w", entity, id, ErrNotFound)
}

// IsSyncError reports whether err carries a *SyncError.
func IsSyncError(err error) bool {
	var syncErr *SyncError
	return errors.As(err, &syncErr)
}
