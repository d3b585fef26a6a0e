package common

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Common application errors
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	// ErrPrecondition marks an action unavailable in the session's current mode.
	// It is recoverable: the session stays where it is and the operator is told why.
	ErrPrecondition = errors.New("workflow precondition failed")
	// ErrExternal marks a failure of an external collaborator (photo URL
	// resolution, spreadsheet export). Session state is preserved for retry.
	ErrExternal = errors.New("external collaborator failed")
	ErrInternal = errors.New("internal error")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// gRPC error helpers
func InvalidArgumentError(message string) error {
	return status.Error(codes.InvalidArgument, message)
}

func FailedPreconditionError(message string) error {
	return status.Error(codes.FailedPrecondition, message)
}

func UnavailableError(message string) error {
	return status.Error(codes.Unavailable, message)
}

func InternalError(message string) error {
	return status.Error(codes.Internal, message)
}

// ToStatusError maps core error classes onto gRPC status codes for the serving
// surface. Unknown errors map to Internal.
func ToStatusError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrInvalidInput):
		return InvalidArgumentError(err.Error())
	case errors.Is(err, ErrPrecondition):
		return FailedPreconditionError(err.Error())
	case errors.Is(err, ErrExternal):
		return UnavailableError(err.Error())
	default:
		return InternalError(err.Error())
	}
}
