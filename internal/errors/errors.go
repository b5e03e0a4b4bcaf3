package errors

import "errors"

var (
	ErrCheckoutRejected = errors.New("checkout rejected")
	ErrSessionActive    = errors.New("checkout session is active")
	ErrNoSession        = errors.New("no active checkout session")
	ErrFetchFailed      = errors.New("schedule fetch failed")
	ErrFetchPending     = errors.New("schedule fetch is not finished")
	ErrCacheMiss        = errors.New("cache miss")
)
