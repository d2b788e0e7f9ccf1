package errors

import (
	"fmt"
	"net/http"
)

// RemoteError is a transport failure or a non-2xx answer from the property
// API. StatusCode is zero when no response arrived.
type RemoteError struct {
	Operation  string
	Endpoint   string
	StatusCode int
	Message    string
	Err        error
}

// NewRemoteError describes a non-success status.
func NewRemoteError(operation, endpoint string, statusCode int, message string) *RemoteError {
	return &RemoteError{Operation: operation, Endpoint: endpoint, StatusCode: statusCode, Message: message}
}

// WrapRemote describes a request that never got an answer. nil stays nil.
func WrapRemote(operation, endpoint string, err error) error {
	if err == nil {
		return nil
	}
	return &RemoteError{Operation: operation, Endpoint: endpoint, Message: err.Error(), Err: err}
}

func (e *RemoteError) Error() string {
	head := "remote " + e.Operation + " " + e.Endpoint + " failed"
	if e.StatusCode != 0 {
		head += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	return head + ": " + e.Message
}

func (e *RemoteError) Unwrap() error { return e.Err }

// Is matches ErrRemote always, and the status sentinels by code.
func (e *RemoteError) Is(target error) bool {
	switch target {
	case ErrRemote:
		return true
	case ErrRateLimited:
		return e.StatusCode == http.StatusTooManyRequests
	case ErrUnavailable:
		return e.StatusCode >= http.StatusInternalServerError
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	default:
		return false
	}
}
