package protocol

import (
	"fmt"

	smithygo "github.com/aws/smithy-go"
)

// APIError adapts a generated service error into smithy-go's APIError
// interface, so the transport layer and any smithy-go middleware a caller
// wires in can treat modeled errors uniformly regardless of protocol.
type APIError struct {
	Code      string
	Message   string
	Retryable bool
}

var _ smithygo.APIError = (*APIError)(nil)

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) ErrorCode() string    { return e.Code }
func (e *APIError) ErrorMessage() string { return e.Message }

func (e *APIError) ErrorFault() smithygo.ErrorFault {
	if e.Retryable {
		return smithygo.FaultServer
	}
	return smithygo.FaultClient
}

// NewAPIError builds an APIError from a matched error shape's wire fields.
func NewAPIError(code, message string, retryable bool) *APIError {
	return &APIError{Code: code, Message: message, Retryable: retryable}
}

// AsGeneric converts to smithy-go's GenericAPIError, for callers that only
// have the smithy-go interface in scope and need a concrete value to wrap.
func (e *APIError) AsGeneric() *smithygo.GenericAPIError {
	fault := smithygo.FaultClient
	if e.Retryable {
		fault = smithygo.FaultServer
	}
	return &smithygo.GenericAPIError{Code: e.Code, Message: e.Message, Fault: fault}
}
