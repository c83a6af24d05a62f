package models

import (
	"errors"
	"fmt"
)

// Structured errors shared by the storage and app layers. Handlers map
// each of these to a distinct HTTP status.
var (
	// ErrNotFound indicates the entity never existed (or is not visible
	// to the caller).
	ErrNotFound = errors.New("not found")
	// ErrGone indicates a soft-deleted wishlist; distinct from ErrNotFound
	// so callers can render different messaging.
	ErrGone = errors.New("gone")
	// ErrConflict indicates a lost reservation race or an invariant that
	// would be violated by the requested mutation.
	ErrConflict = errors.New("conflict")
	// ErrForbidden indicates an identity mismatch on cancel or edit.
	ErrForbidden = errors.New("forbidden")
	// ErrExpiredToken indicates a recovery token past its TTL.
	ErrExpiredToken = errors.New("recovery token expired")
	// ErrInvalidToken indicates an unknown or already consumed recovery token.
	ErrInvalidToken = errors.New("recovery token invalid")
	// ErrRateLimited indicates the caller exceeded the request budget.
	ErrRateLimited = errors.New("rate limited")
	// ErrNotFundable indicates a contribution attempt on an item without a
	// price.
	ErrNotFundable = errors.New("item has no price")
)

// ExceedsRemainingError is returned when a contribution would push the
// active total past the item price. Remaining carries the amount still
// collectible so the client can retry with a corrected value.
type ExceedsRemainingError struct {
	Remaining int
}

func (e *ExceedsRemainingError) Error() string {
	return fmt.Sprintf("contribution exceeds remaining amount: %d left", e.Remaining)
}
