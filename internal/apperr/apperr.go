// Package apperr carries the error taxonomy shared by the services and both
// transports.
package apperr

import (
	"errors"
	"net/http"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Domain is the reason domain attached to gRPC error details.
const Domain = "mbg-health.checkpoint"

// Code is a machine-readable error code.
type Code string

const (
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeNotFound     Code = "NOT_FOUND"
	CodeConflict     Code = "CONFLICT_OR_RACE"
	CodeInternal     Code = "INTERNAL"
)

// HTTPStatus maps the code to the status written by the JSON API.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeInvalidInput:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// GRPCCode maps the code to a gRPC status code.
func (c Code) GRPCCode() codes.Code {
	switch c {
	case CodeInvalidInput:
		return codes.InvalidArgument
	case CodeNotFound:
		return codes.NotFound
	case CodeConflict:
		return codes.Aborted
	default:
		return codes.Internal
	}
}

// Error is the domain error returned by services.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil && e.Code == CodeInternal {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

func InvalidInput(message string) *Error { return New(CodeInvalidInput, message) }

func NotFound(message string) *Error { return New(CodeNotFound, message) }

// Conflict reports a lost race on a single record. Callers may retry.
func Conflict(message string, cause error) *Error { return Wrap(CodeConflict, message, cause) }

func Internal(message string, cause error) *Error { return Wrap(CodeInternal, message, cause) }

// CodeOf returns the code of the first *Error in err's chain, or
// CodeInternal for anything unclassified.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// MessageOf returns the client-facing message for err. Internal causes are
// never exposed.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Code == CodeInternal {
			return "unexpected server error"
		}
		return e.Message
	}
	return "unexpected server error"
}

func Retryable(err error) bool {
	return CodeOf(err) == CodeConflict
}

// ToGRPCStatus converts err to a gRPC status error carrying an ErrorInfo
// detail with the domain code as reason.
func ToGRPCStatus(err error) error {
	if err == nil {
		return nil
	}
	code := CodeOf(err)
	st := status.New(code.GRPCCode(), MessageOf(err))
	withDetails, derr := st.WithDetails(&errdetails.ErrorInfo{
		Reason: string(code),
		Domain: Domain,
	})
	if derr != nil {
		return st.Err()
	}
	return withDetails.Err()
}
