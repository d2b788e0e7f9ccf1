// Package response provides the JSON envelope used by every endpoint of the
// catalog server: a data field on success and an error field on failure.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/dreamdwell/dreamdwell/pkg/errors"
)

// Code is the machine readable error kind in an envelope.
type Code string

// Error codes the server emits.
const (
	CodeBadRequest   Code = "BAD_REQUEST"
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeNotFound     Code = "NOT_FOUND"
	CodeRateLimited  Code = "RATE_LIMITED"
	CodeInternal     Code = "INTERNAL_ERROR"
	CodeBadGateway   Code = "BAD_GATEWAY"
	CodeUnavailable  Code = "SERVICE_UNAVAILABLE"
)

var codes = map[Code]struct {
	status  int
	message string
}{
	CodeBadRequest:   {http.StatusBadRequest, "Bad request"},
	CodeUnauthorized: {http.StatusUnauthorized, "Unauthorized"},
	CodeNotFound:     {http.StatusNotFound, "Not found"},
	CodeRateLimited:  {http.StatusTooManyRequests, "Rate limit exceeded"},
	CodeInternal:     {http.StatusInternalServerError, "Internal server error"},
	CodeBadGateway:   {http.StatusBadGateway, "Property API request failed"},
	CodeUnavailable:  {http.StatusServiceUnavailable, "Service unavailable"},
}

// Status is the HTTP status written for c.
func (c Code) Status() int {
	if k, ok := codes[c]; ok {
		return k.status
	}
	return http.StatusInternalServerError
}

// Response is the envelope every endpoint writes.
type Response struct {
	Data  any    `json:"data"`
	Error *Error `json:"error"`
}

// Error is the failure half of the envelope.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Fail builds a failure envelope. An empty message takes the code's default.
func Fail(code Code, message, details string) Response {
	if message == "" {
		message = codes[code].message
	}
	return Response{Error: &Error{Code: code, Message: message, Details: details}}
}

// JSON writes resp with status.
func JSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// OK writes data with 200.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, Response{Data: data})
}

// Abort writes a failure envelope with the status that belongs to code.
func Abort(w http.ResponseWriter, code Code, message, details string) {
	JSON(w, code.Status(), Fail(code, message, details))
}

// FromError classifies err and writes the matching failure. Errors outside
// the known kinds are reported as internal without their text.
func FromError(w http.ResponseWriter, err error) {
	code := classify(err)
	if code == CodeInternal {
		Abort(w, code, "", "An unexpected error occurred")
		return
	}
	Abort(w, code, err.Error(), "")
}

func classify(err error) Code {
	switch {
	case errors.IsValidationError(err):
		return CodeBadRequest
	case errors.IsIndexOutOfRange(err), errors.Is(err, errors.ErrNotFound):
		return CodeNotFound
	case errors.IsRateLimited(err):
		return CodeRateLimited
	case errors.Is(err, errors.ErrSignInRequired):
		return CodeUnauthorized
	case errors.IsRemote(err):
		return CodeBadGateway
	default:
		return CodeInternal
	}
}
