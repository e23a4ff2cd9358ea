package llm

import "fmt"

// APIError is returned for non-2xx responses from the generation backend.
type APIError struct {
	StatusCode int
	Type       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("llm: backend returned %d (%s): %s", e.StatusCode, e.Type, e.Message)
	}
	return fmt.Sprintf("llm: backend returned %d: %s", e.StatusCode, e.Message)
}

func newAPIError(status int, errType, message string) *APIError {
	return &APIError{StatusCode: status, Type: errType, Message: message}
}
