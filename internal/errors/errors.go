package errors

import (
	"fmt"
)

// Kind categorizes a failure so front ends can render it without
// re-deriving the cause.
type Kind int

const (
	// KindValidation - input rejected before any network call
	KindValidation Kind = iota
	// KindRepoNotFound - repository does not exist or root listing failed
	KindRepoNotFound
	// KindAccessDenied - repository is private or credentials lack access
	KindAccessDenied
	// KindRateLimited - the hosting API signalled quota exhaustion
	KindRateLimited
	// KindReadmeMissing - README fetch returned 404; recoverable
	KindReadmeMissing
	// KindLLMAuth - no credential available for the completion API
	KindLLMAuth
	// KindLLMResponse - LLM output contained no parseable JSON object
	KindLLMResponse
	// KindExternal - any other external service failure
	KindExternal
	// KindConfig - missing or invalid configuration
	KindConfig
	// KindInternal - unexpected internal state
	KindInternal
)

// Error is a structured error with a kind, a message, an optional cause,
// and an optional raw payload for diagnostic display (e.g. the unparseable
// LLM response text).
type Error struct {
	Kind    Kind
	Message string
	Cause   error
	Raw     string
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches errors by kind so callers can use errors.Is with a bare
// kind sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// WithRaw attaches a raw payload to the error.
func (e *Error) WithRaw(raw string) *Error {
	e.Raw = raw
	return e
}

func kindString(k Kind) string {
	switch k {
	case KindValidation:
		return "VALIDATION"
	case KindRepoNotFound:
		return "REPO_NOT_FOUND"
	case KindAccessDenied:
		return "ACCESS_DENIED"
	case KindRateLimited:
		return "RATE_LIMITED"
	case KindReadmeMissing:
		return "README_MISSING"
	case KindLLMAuth:
		return "LLM_AUTH"
	case KindLLMResponse:
		return "LLM_RESPONSE"
	case KindExternal:
		return "EXTERNAL"
	case KindConfig:
		return "CONFIG"
	case KindInternal:
		return "INTERNAL"
	default:
		return "UNKNOWN"
	}
}

// DetailedString renders the error with its kind tag and raw payload,
// suitable for verbose CLI output.
func (e *Error) DetailedString() string {
	s := fmt.Sprintf("[%s] %s", kindString(e.Kind), e.Message)
	if e.Cause != nil {
		s += fmt.Sprintf("\nCaused by: %v", e.Cause)
	}
	if e.Raw != "" {
		s += fmt.Sprintf("\nRaw payload:\n%s", e.Raw)
	}
	return s
}

// New creates a new error with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates a new error with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an existing error with a kind and message. Returns nil when
// err is nil.
func Wrap(err error, kind Kind, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Message: message, Cause: err}
}

// Wrapf wraps an existing error with a formatted message.
func Wrapf(err error, kind Kind, format string, args ...interface{}) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: err}
}

// Convenience constructors for common kinds.

// ValidationErrorf creates a validation error with formatting.
func ValidationErrorf(format string, args ...interface{}) *Error {
	return Newf(KindValidation, format, args...)
}

// ConfigError creates a configuration error.
func ConfigError(message string) *Error {
	return New(KindConfig, message)
}

// GetKind returns the kind of an error, or KindInternal for foreign errors.
func GetKind(err error) Kind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return KindInternal
}

// GetRaw returns the raw payload attached to an error, if any.
func GetRaw(err error) string {
	if e, ok := err.(*Error); ok {
		return e.Raw
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}
