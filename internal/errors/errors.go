package errors

import "fmt"

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

func IsNotFoundError(err error) (*NotFoundError, bool) {
	if nfe, ok := err.(*NotFoundError); ok {
		return nfe, true
	}
	return nil, false
}

// InvalidStatusError reports a status string outside the 4-value enum.
type InvalidStatusError struct {
	Message string
}

func (e *InvalidStatusError) Error() string {
	return e.Message
}

func NewInvalidStatusError(message string) *InvalidStatusError {
	return &InvalidStatusError{Message: message}
}

func IsInvalidStatusError(err error) (*InvalidStatusError, bool) {
	if ise, ok := err.(*InvalidStatusError); ok {
		return ise, true
	}
	return nil, false
}

// TokenExhaustedError means the bounded unique-token retry budget ran out.
// The duplicate-key-at-commit case counts against the same budget.
type TokenExhaustedError struct {
	Message string
}

func (e *TokenExhaustedError) Error() string {
	return e.Message
}

func NewTokenExhaustedError(message string) *TokenExhaustedError {
	return &TokenExhaustedError{Message: message}
}

func IsTokenExhaustedError(err error) (*TokenExhaustedError, bool) {
	if tee, ok := err.(*TokenExhaustedError); ok {
		return tee, true
	}
	return nil, false
}

type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Message string
	Details []ValidationDetail
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string, details ...ValidationDetail) *ValidationError {
	return &ValidationError{
		Message: message,
		Details: details,
	}
}

func IsValidationError(err error) (*ValidationError, bool) {
	if ve, ok := err.(*ValidationError); ok {
		return ve, true
	}
	return nil, false
}

type InternalError struct {
	Message string
	Cause   error
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}

func NewInternalError(message string, cause error) *InternalError {
	return &InternalError{
		Message: message,
		Cause:   cause,
	}
}
