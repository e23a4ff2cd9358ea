package topology

import "fmt"

// APIError is returned for non-2xx responses from a topology collector.
type APIError struct {
	Operation  string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: collector returned %d: %s", e.Operation, e.StatusCode, e.Message)
}

func newAPIError(operation string, status int, message string) *APIError {
	return &APIError{Operation: operation, StatusCode: status, Message: message}
}
