// Package errors holds the typed failures of the dreamdwell catalog. Every
// type answers errors.Is for its sentinel, so callers branch on kind without
// type assertions.
package errors

import "errors"

// Re-exports of the standard helpers, so one import serves both.
var (
	New    = errors.New
	Is     = errors.Is
	As     = errors.As
	Join   = errors.Join
	Unwrap = errors.Unwrap
)

// Sentinels matched by the typed errors below.
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrRemote           = errors.New("remote error")
	ErrIndexOutOfRange  = errors.New("index out of range")
	ErrRateLimited      = errors.New("rate limited")
	ErrUnavailable      = errors.New("remote unavailable")
	ErrSubmitInProgress = errors.New("submit in progress")
	ErrSignInRequired   = errors.New("sign in required")
	ErrNotFound         = errors.New("not found")
)

// IsValidationError reports a local field check failure.
func IsValidationError(err error) bool { return errors.Is(err, ErrInvalidInput) }

// IsRemote reports a failure talking to the property API.
func IsRemote(err error) bool { return errors.Is(err, ErrRemote) }

// IsIndexOutOfRange reports a position outside a catalog or image list.
func IsIndexOutOfRange(err error) bool { return errors.Is(err, ErrIndexOutOfRange) }

// IsRateLimited reports a 429 from the property API.
func IsRateLimited(err error) bool { return errors.Is(err, ErrRateLimited) }
