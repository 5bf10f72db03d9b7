package tool

import (
	"encoding/json"
	"fmt"
)

// Result is the outcome of a single invocation.
// Exactly one of a success payload or Err is meaningful.
type Result struct {
	// Payload is the decoded success value.
	Payload any

	// Text is Payload serialized as JSON.
	Text string

	// Err is non-nil when the invocation failed.
	Err error
}

// Success builds a successful result, serializing payload as JSON.
// A payload that cannot be serialized yields an internal-fault failure.
func Success(payload any) Result {
	data, err := json.Marshal(payload)
	if err != nil {
		return Failure(Internal(fmt.Errorf("encoding result: %w", err)))
	}
	return Result{Payload: payload, Text: string(data)}
}

// Failure builds a failed result.
func Failure(err error) Result {
	if err == nil {
		err = &InternalFault{}
	}
	return Result{Err: err}
}

// OK reports whether the invocation succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// UserError returns the failure as a *UserError, or nil on success.
// Failures that are not already user-facing are reported as internal faults.
func (r Result) UserError() *UserError {
	return AsUserError(r.Err, "internal error")
}
