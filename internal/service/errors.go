package service

import "fmt"

// TransportMessage is shown when a call fails without a server response.
const TransportMessage = "network error"

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	// Message is the server's message field, or a generic fallback.
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError builds an APIError, falling back to a generic message when
// the server sent none.
func NewAPIError(status int, message string) *APIError {
	if message == "" {
		message = fmt.Sprintf("request failed with status code %d", status)
	}
	return &APIError{StatusCode: status, Message: message}
}

// TransportError is a failure to reach the server or read its response.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return TransportMessage
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
