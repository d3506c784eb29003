// Package errors provides the closed error taxonomy shared by the exploration primitives.
package errors

import (
	"errors"
	"fmt"
	"io/fs"
)

// Kind classifies the outcome of an exploration operation.
type Kind int

const (
	// KindOK marks a successful result carrying data.
	KindOK Kind = iota
	// KindNotFound marks a target path that does not exist.
	KindNotFound
	// KindTooLarge marks a file above the operation's size ceiling.
	KindTooLarge
	// KindInvalidPattern marks a keyword, regex or glob that cannot be used.
	KindInvalidPattern
	// KindAccessError marks any other filesystem or I/O failure.
	KindAccessError
	// KindNoResult marks a successful operation that found nothing.
	KindNoResult
)

var kindNames = map[Kind]string{
	KindOK:             "ok",
	KindNotFound:       "not_found",
	KindTooLarge:       "too_large",
	KindInvalidPattern: "invalid_pattern",
	KindAccessError:    "access_error",
	KindNoResult:       "no_result",
}

// String returns the snake_case name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// IsError reports whether the kind represents a failure rather than a completed operation.
func (k Kind) IsError() bool {
	return k != KindOK && k != KindNoResult
}

// Error is a classified failure.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound creates a KindNotFound error.
func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// TooLarge creates a KindTooLarge error.
func TooLarge(format string, args ...any) error {
	return &Error{Kind: KindTooLarge, Message: fmt.Sprintf(format, args...)}
}

// InvalidPattern creates a KindInvalidPattern error wrapping the underlying syntax error, if any.
func InvalidPattern(cause error, format string, args ...any) error {
	return &Error{Kind: KindInvalidPattern, Message: fmt.Sprintf(format, args...), Err: cause}
}

// Access creates a KindAccessError error wrapping cause.
func Access(cause error, format string, args ...any) error {
	return &Error{Kind: KindAccessError, Message: fmt.Sprintf(format, args...), Err: cause}
}

// FromFS classifies a filesystem error for path.
func FromFS(err error, path string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return &Error{Kind: KindNotFound, Message: fmt.Sprintf("path not found: %s", path)}
	}
	if errors.Is(err, fs.ErrPermission) {
		return Access(fs.ErrPermission, "cannot access %s", path)
	}
	return Access(unwrapPathError(err), "cannot access %s", path)
}

// KindOf classifies err. A nil error is KindOK; an unclassified error is KindAccessError.
func KindOf(err error) Kind {
	if err == nil {
		return KindOK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	if errors.Is(err, fs.ErrNotExist) {
		return KindNotFound
	}
	return KindAccessError
}

// Wrap creates a new error by wrapping an existing error with additional context.
func Wrap(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", msg, err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// unwrapPathError drops the *fs.PathError layer so the path is not repeated in messages.
func unwrapPathError(err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}
