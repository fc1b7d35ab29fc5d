package llm

import "fmt"

// ServiceError represents an error from the generative text service client.
type ServiceError struct {
	// Type categorizes the error
	Type string

	// Message is a human-readable error message
	Message string

	// Code is the HTTP status code (if applicable)
	Code int

	// Err is the underlying error
	Err error
}

// Error types.
const (
	ErrorTypeNetwork    = "network"
	ErrorTypeAPI        = "api"
	ErrorTypeValidation = "validation"
	ErrorTypeParse      = "parse"
)

func (e *ServiceError) Error() string {
	if e.Code > 0 {
		return fmt.Sprintf("generation service %s error (code %d): %s", e.Type, e.Code, e.Message)
	}
	return fmt.Sprintf("generation service %s error: %s", e.Type, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewNetworkError creates a network error.
func NewNetworkError(err error) *ServiceError {
	return &ServiceError{
		Type:    ErrorTypeNetwork,
		Message: "failed to reach the generation service",
		Err:     err,
	}
}

// NewAPIError creates an API error with status code.
func NewAPIError(code int, message string) *ServiceError {
	return &ServiceError{
		Type:    ErrorTypeAPI,
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a validation error.
func NewValidationError(message string, err error) *ServiceError {
	return &ServiceError{
		Type:    ErrorTypeValidation,
		Message: fmt.Sprintf("output validation failed: %s", message),
		Err:     err,
	}
}

// NewParseError creates a parse error carrying the offending content.
func NewParseError(content string, err error) *ServiceError {
	return &ServiceError{
		Type:    ErrorTypeParse,
		Message: fmt.Sprintf("failed to parse service output: %s", content),
		Err:     err,
	}
}
