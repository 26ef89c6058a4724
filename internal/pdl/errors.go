package pdl

import (
	"errors"
	"fmt"
	"time"
)

// ErrRateLimitExceeded is matched by errors.Is when the retry ceiling was hit.
var ErrRateLimitExceeded = errors.New("person search rate limit exceeded")

// RateLimitError is returned after every attempt was rate limited.
type RateLimitError struct {
	Attempts  int
	LastDelay time.Duration
	Message   string
}

func (e *RateLimitError) Error() string {
	msg := fmt.Sprintf("%s after %d attempts", ErrRateLimitExceeded, e.Attempts)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

func (e *RateLimitError) Is(target error) bool {
	return target == ErrRateLimitExceeded
}

// FatalError is a non-retryable provider failure: bad credentials, a rejected
// query, or a response that cannot be decoded.
type FatalError struct {
	StatusCode int
	Type       string
	Message    string
	Cause      error
}

func (e *FatalError) Error() string {
	msg := fmt.Sprintf("person search failed with status %d", e.StatusCode)
	if e.Type != "" {
		msg += " (" + e.Type + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *FatalError) Unwrap() error {
	return e.Cause
}
