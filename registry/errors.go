package registry

import "errors"

// Kind is a stable category for programmatic error handling.
//
// Callers should branch on Kind rather than matching error strings; Error()
// text is for humans and may evolve.
type Kind string

const (
	// KindValidation marks malformed input: zero digest length, reserved or
	// zero-sentinel categories, out-of-range proofs.
	KindValidation Kind = "Validation"

	// KindAuthorization marks a proof that does not derive to the claimed
	// identity, or a caller that is not the recognized delegate or subject.
	KindAuthorization Kind = "Authorization"

	// KindPermission marks missing deployer/subject standing for category
	// management, or writes into an unapproved category.
	KindPermission Kind = "Permission"

	// KindNotFound marks operations targeting an absent entry.
	KindNotFound Kind = "NotFound"

	// KindSentinelLock marks an attempt to narrow delegation away from the
	// public-write sentinel.
	KindSentinelLock Kind = "SentinelLock"
)

// Error is the registry's structured error type. Every operation failure is
// detected before any state mutation; an Error never accompanies a partial
// write.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func newError(kind Kind, msg string) error {
	return &Error{Kind: kind, Message: msg}
}

func wrapError(kind Kind, msg string, cause error) error {
	if cause == nil {
		return newError(kind, msg)
	}
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// IsKind reports whether err is (or wraps) a *Error with the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// KindOf returns the Kind of a structured registry error, or "" if err is
// not one.
func KindOf(err error) Kind {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.Kind
}
