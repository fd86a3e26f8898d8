package apierror

import (
	"fmt"
	"net/http"
)

// ErrorResponse abstracts all API error responses to the user.
//
// This interface does not implement `error`, since its only purpose
// is to be used for API responses and not for logging circumstances.
//
// In general, the whole ErrorResponse can be sent for serialization.
type ErrorResponse interface {
	// Code is the HTTP status code to be returned.
	Code() int
}

// APIError is serialized as {message, error, code?}.
type APIError struct {
	Message string `json:"message"`
	Kind    string `json:"error"`
	// HTTPCode is only echoed in the body by the framework-level error handler.
	HTTPCode int `json:"code,omitempty"`
	Status   int `json:"-"`
}

func (a *APIError) Code() int {
	return a.Status
}

const (
	KindBadRequest       = "Bad Request"
	KindUnauthorized     = "Unauthorized"
	KindForbidden        = "Forbidden"
	KindNotFound         = "Not Found"
	KindMethodNotAllowed = "Method Not Allowed"
	KindInternal         = "Internal Server Error"
)

var (
	MalformedJSONError  = NewBadRequest("Malformed JSON body")
	NoDataError         = NewBadRequest("No data provided")
	NoValidFieldsError  = NewBadRequest("No valid fields to update")
	InternalServerError = NewSimple(http.StatusInternalServerError, KindInternal, "An unexpected error occurred")

	/*
	 * Used for authentications
	 */

	// UnauthorizedError covers a missing token, a rejected token and a token
	// whose subject has no user row. They share one message on purpose.
	UnauthorizedError  = NewSimple(http.StatusUnauthorized, KindUnauthorized, "Invalid or missing authentication token")
	AdminRequiredError = NewSimple(http.StatusForbidden, KindForbidden, "Admin privileges required")
	OwnerRequiredError = NewSimple(http.StatusForbidden, KindForbidden, "Owner privileges required")

	/*
	 * Used for uploads
	 */
	MissingUploadFileError = NewBadRequest("A file is required in the 'file' form field")
	InvalidUploadTypeError = NewBadRequest("File must be a png, jpg, jpeg, webp or gif image")
	UploadTooLargeError    = NewSimple(http.StatusRequestEntityTooLarge, "Request Entity Too Large", "File exceeds the maximum upload size")
)

func NewSimple(status int, kind, msg string, args ...any) *APIError {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &APIError{Status: status, Kind: kind, Message: msg}
}

func NewBadRequest(msg string, args ...any) *APIError {
	return NewSimple(http.StatusBadRequest, KindBadRequest, msg, args...)
}

func NewNotFound(msg string, args ...any) *APIError {
	return NewSimple(http.StatusNotFound, KindNotFound, msg, args...)
}

// NewServerError reports a store failure. The message must never carry the
// underlying error text, log that instead.
func NewServerError(msg string, args ...any) *APIError {
	return NewSimple(http.StatusInternalServerError, KindInternal, msg, args...)
}

// NewHTTPError builds the envelope for framework-level errors, echoing the
// status code in the body.
func NewHTTPError(status int, msg string) *APIError {
	kind := http.StatusText(status)
	if kind == "" {
		kind = KindInternal
	}
	if msg == "" {
		msg = kind
	}
	return &APIError{Status: status, Kind: kind, Message: msg, HTTPCode: status}
}

func NewLimitRangeError(min, max int) *APIError {
	return NewBadRequest("limit must be between %d and %d", min, max)
}
