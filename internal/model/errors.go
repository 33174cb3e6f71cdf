package model

import (
	"fmt"
)

// ErrorCode identifies the kind of failure reported by a component
type ErrorCode string

const (
	CodeNotInitialized         ErrorCode = "NOT_INITIALIZED"
	CodeInvalidInput           ErrorCode = "INVALID_INPUT"
	CodeInvalidConfiguration   ErrorCode = "INVALID_CONFIGURATION"
	CodeRegistryNotInitialized ErrorCode = "REGISTRY_NOT_INITIALIZED"
	CodeDuplicateComponent     ErrorCode = "DUPLICATE_COMPONENT"
	CodeComponentNotFound      ErrorCode = "COMPONENT_NOT_FOUND"
	CodeOperationFailed        ErrorCode = "OPERATION_FAILED"
	CodeTransactionNotFound    ErrorCode = "TRANSACTION_NOT_FOUND"
	CodeInvalidTransition      ErrorCode = "INVALID_TRANSITION"
)

// Error is the error value returned by every guarded operation.
// Two errors match under errors.Is when their codes are equal.
type Error struct {
	Code      ErrorCode
	Component string
	Message   string
	Err       error
}

var (
	ErrNotInitialized         = &Error{Code: CodeNotInitialized, Message: "not initialized"}
	ErrInvalidInput           = &Error{Code: CodeInvalidInput, Message: "invalid input"}
	ErrInvalidConfiguration   = &Error{Code: CodeInvalidConfiguration, Message: "invalid configuration"}
	ErrRegistryNotInitialized = &Error{Code: CodeRegistryNotInitialized, Message: "registry not initialized"}
	ErrDuplicateComponent     = &Error{Code: CodeDuplicateComponent, Message: "duplicate component"}
	ErrComponentNotFound      = &Error{Code: CodeComponentNotFound, Message: "component not found"}
	ErrOperationFailed        = &Error{Code: CodeOperationFailed, Message: "operation failed"}
	ErrTransactionNotFound    = &Error{Code: CodeTransactionNotFound, Message: "transaction not found"}
	ErrInvalidTransition      = &Error{Code: CodeInvalidTransition, Message: "invalid status transition"}
)

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := e.Message
	if msg == "" {
		msg = string(e.Code)
	}
	if e.Component != "" {
		msg = e.Component + ": " + msg
	}
	if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on the error code only, so callers can compare against the
// package sentinels regardless of component or message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

func newError(code ErrorCode, component, format string, args ...any) *Error {
	return &Error{
		Code:      code,
		Component: component,
		Message:   fmt.Sprintf(format, args...),
	}
}

// NotInitialized reports a guarded operation invoked outside the ready window
func NotInitialized(component string) *Error {
	return newError(CodeNotInitialized, component, "not initialized")
}

// InvalidInput reports an absent or structurally invalid argument
func InvalidInput(component, format string, args ...any) *Error {
	return newError(CodeInvalidInput, component, "invalid input: "+format, args...)
}

// InvalidConfiguration reports a configuration missing required fields
func InvalidConfiguration(format string, args ...any) *Error {
	return newError(CodeInvalidConfiguration, "registry", "invalid configuration: "+format, args...)
}

// RegistryNotInitialized reports registry use before Initialize
func RegistryNotInitialized() *Error {
	return newError(CodeRegistryNotInitialized, "registry", "registry not initialized")
}

// DuplicateComponent reports a second registration under an existing name
func DuplicateComponent(name string) *Error {
	return newError(CodeDuplicateComponent, "registry", "duplicate component %q", name)
}

// ComponentNotFound reports a lookup of an unknown component name
func ComponentNotFound(name string) *Error {
	return newError(CodeComponentNotFound, "registry", "component %q not found", name)
}

// OperationFailed reports a failed domain or lifecycle operation of component
func OperationFailed(component string, err error, format string, args ...any) *Error {
	e := newError(CodeOperationFailed, component, format, args...)
	e.Err = err
	return e
}

// TransactionNotFound reports an unknown ledger id
func TransactionNotFound(component, id string) *Error {
	return newError(CodeTransactionNotFound, component, "transaction %q not found", id)
}

// InvalidTransition reports a status change that would move a transaction backwards
func InvalidTransition(component, id string, from, to TransactionStatus) *Error {
	return newError(CodeInvalidTransition, component, "transaction %q cannot move from %s to %s", id, from, to)
}
