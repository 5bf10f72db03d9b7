package tool

import (
	"errors"
	"fmt"
)

// Sentinel errors for classification with errors.Is.
var (
	// ErrUserFacing matches every *UserError.
	ErrUserFacing = errors.New("user-facing failure")

	// ErrInternal matches every *InternalFault.
	ErrInternal = errors.New("internal fault")
)

// UserError is a failure whose message is meant to be shown verbatim to the
// calling agent or user.
type UserError struct {
	// Message is the text surfaced to the host.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

// NewUserError builds a UserError from a format string.
func NewUserError(format string, args ...any) *UserError {
	return &UserError{Message: fmt.Sprintf(format, args...)}
}

// Error returns the user-facing message.
func (e *UserError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *UserError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrUserFacing.
func (e *UserError) Is(target error) bool {
	return target == ErrUserFacing
}

// InternalFault marks an unexpected error: a broken contract with a remote
// service, a transport failure, or a bug.
type InternalFault struct {
	Err error
}

// Internal wraps err as an internal fault. A nil err stays nil.
func Internal(err error) error {
	if err == nil {
		return nil
	}
	return &InternalFault{Err: err}
}

// Error returns the underlying error's message.
func (e *InternalFault) Error() string {
	if e.Err == nil {
		return ErrInternal.Error()
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *InternalFault) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrInternal.
func (e *InternalFault) Is(target error) bool {
	return target == ErrInternal
}

// AsUserError applies the handler-boundary policy to err.
//
// A UserError anywhere in the chain is returned unchanged. Any other error is
// classified as an internal fault and wrapped in a UserError whose message is
// "<prefix>: <err>".
func AsUserError(err error, prefix string) *UserError {
	if err == nil {
		return nil
	}
	var ue *UserError
	if errors.As(err, &ue) {
		return ue
	}
	if !errors.Is(err, ErrInternal) {
		err = Internal(err)
	}
	return &UserError{
		Message: fmt.Sprintf("%s: %s", prefix, err.Error()),
		Err:     err,
	}
}
