package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a search failed.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindNotFound   ErrorKind = "not_found"
	KindRateLimit  ErrorKind = "rate_limit"
	KindFetch      ErrorKind = "fetch"
	KindTransport  ErrorKind = "transport"
)

// Sentinel errors, one per kind. A *SearchError matches its kind's sentinel with errors.Is.
var (
	ErrValidation = errors.New("invalid input")
	ErrNotFound   = errors.New("user not found")
	ErrRateLimit  = errors.New("rate limit exceeded")
	ErrFetch      = errors.New("failed to fetch")
	ErrTransport  = errors.New("transport failure")
)

// User-facing messages.
const (
	MsgEmptyUsername   = "Please enter a GitHub username"
	MsgNotFound        = "User not found. Please check the username and try again."
	MsgRateLimit       = "Rate limit exceeded. Please try again later."
	MsgTransport       = "Failed to fetch user data. Please check your connection and try again."
	resourceProfile    = "user profile"
	resourceRepository = "repositories"
)

// SearchError is the single terminal error of a failed search.
type SearchError struct {
	Kind ErrorKind
	// Message is the human-readable sentence shown to the user.
	Message string
	// StatusCode is the HTTP status of the failed call, 0 when there was no response.
	StatusCode int
	// Token is the sequence token of the search that failed, 0 if none was assigned.
	Token uint64
	Err   error
}

func (e *SearchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *SearchError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind.
func (e *SearchError) Is(target error) bool {
	return target == sentinelFor(e.Kind)
}

func sentinelFor(kind ErrorKind) error {
	switch kind {
	case KindValidation:
		return ErrValidation
	case KindNotFound:
		return ErrNotFound
	case KindRateLimit:
		return ErrRateLimit
	case KindFetch:
		return ErrFetch
	case KindTransport:
		return ErrTransport
	}
	return nil
}

// NewValidationError is returned for input rejected before any network call.
func NewValidationError(msg string) *SearchError {
	return &SearchError{Kind: KindValidation, Message: msg}
}

// NewNotFoundError is returned when the profile lookup answers 404.
func NewNotFoundError(err error) *SearchError {
	return &SearchError{Kind: KindNotFound, Message: MsgNotFound, StatusCode: 404, Err: err}
}

// NewRateLimitError is returned when the API answers 403.
func NewRateLimitError(err error) *SearchError {
	return &SearchError{Kind: KindRateLimit, Message: MsgRateLimit, StatusCode: 403, Err: err}
}

// NewProfileFetchError is returned for any other non-success status of the profile call.
func NewProfileFetchError(status int, err error) *SearchError {
	return newFetchError(resourceProfile, status, err)
}

// NewRepositoriesFetchError is returned for any other non-success status of the repositories call.
func NewRepositoriesFetchError(status int, err error) *SearchError {
	return newFetchError(resourceRepository, status, err)
}

func newFetchError(resource string, status int, err error) *SearchError {
	return &SearchError{
		Kind:       KindFetch,
		Message:    fmt.Sprintf("Failed to fetch %s (%d)", resource, status),
		StatusCode: status,
		Err:        err,
	}
}

// NewTransportError is returned when no response was received at all.
func NewTransportError(err error) *SearchError {
	return &SearchError{Kind: KindTransport, Message: MsgTransport, Err: err}
}

// KindOf returns the kind of err, or "" if err is not a *SearchError.
func KindOf(err error) ErrorKind {
	var se *SearchError
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}

// UserMessage returns the sentence to show for err.
func UserMessage(err error) string {
	var se *SearchError
	if errors.As(err, &se) {
		return se.Message
	}
	return MsgTransport
}
