package domain

import "fmt"

// DomainError represents a domain-specific error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new DomainError
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     nil,
	}
}

// NewDomainErrorWithCause creates a new DomainError with an underlying cause
func NewDomainErrorWithCause(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain error codes
const (
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeUpstream      = "UPSTREAM_ERROR"
	ErrCodeParse         = "PARSE_ERROR"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// Validation errors
var (
	ErrAgeOutOfRange  = NewDomainError(ErrCodeValidation, fmt.Sprintf("age_months must be between %d and %d", MinAgeMonths, MaxAgeMonths))
	ErrMissingAge     = NewDomainError(ErrCodeValidation, "age_months is required")
	ErrMissingDomain  = NewDomainError(ErrCodeValidation, "domain is required")
	ErrMissingMessage = NewDomainError(ErrCodeValidation, "message is required")
)

// Knowledge upload errors
var (
	ErrInvalidKnowledgeFile = NewDomainError(ErrCodeValidation, "knowledge file must be .txt or .md")
	ErrKnowledgeNotText     = NewDomainError(ErrCodeValidation, "knowledge content must be valid UTF-8 text")
)

// Completion errors
var (
	ErrCompletionEmpty      = NewDomainError(ErrCodeUpstream, "completion returned no choices")
	ErrUnparsableCompletion = NewDomainError(ErrCodeParse, "generation failed: unparsable model output")
)
