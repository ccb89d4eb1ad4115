package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so callers can branch on it programmatically
// instead of matching on message text.
type Kind int

const (
	// KindTransient covers network failures, timeouts and malformed
	// responses. Safe to retry with backoff.
	KindTransient Kind = iota
	// KindAuthRequired means the operation needs a delegated credential the
	// caller does not have. Surfaced to the operator with a reconnect
	// action, never retried automatically.
	KindAuthRequired
	// KindReauthRequired means the provider rejected the refresh token. The
	// stored credential has been purged; the operator must reconnect.
	KindReauthRequired
	// KindNoCredential means no credential is stored at all.
	KindNoCredential
	// KindNotFound means the resource locator does not resolve anywhere.
	KindNotFound
	// KindConflict means the resource is already tracked.
	KindConflict
	// KindInvalid means the caller's input cannot be processed. Never
	// retried; the request itself has to change.
	KindInvalid
)

func (k Kind) String() string {
	switch k {
	case KindTransient:
		return "transient"
	case KindAuthRequired:
		return "auth_required"
	case KindReauthRequired:
		return "reauth_required"
	case KindNoCredential:
		return "no_credential"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindInvalid:
		return "invalid"
	}
	return "unknown"
}

// Error is a classified failure. It wraps an optional cause for logging
// while keeping the Kind available through the whole call chain.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New creates a classified error without a cause.
func New(kind Kind, message string) error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates a classified error around a cause.
func Wrap(kind Kind, message string, err error) error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Newf creates a classified error with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the classification from err. Unclassified errors are
// treated as transient so nothing upstream ever mutates credential state
// because of an unknown failure.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindTransient
}

// IsKind reports whether err carries the given classification.
func IsKind(err error, kind Kind) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind == kind
	}
	return false
}

// NeedsReconnect reports whether err should send the operator to the
// reconnect flow rather than be retried.
func NeedsReconnect(err error) bool {
	switch KindOf(err) {
	case KindAuthRequired, KindReauthRequired, KindNoCredential:
		return true
	}
	return false
}
