package failure

import (
	"errors"
	"net/http"
	"strings"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var InvalidIDParam = &Failure{Code: http.StatusBadRequest, Message: "invalid id parameter"}
var MissingFileError = &Failure{Code: http.StatusBadRequest, Message: "image file is required"}
var PayloadTooLarge = &Failure{Code: http.StatusRequestEntityTooLarge, Message: "request body too large"}
var InvalidBody = &Failure{Code: http.StatusBadRequest, Message: "request body must be valid JSON"}
var InvalidForm = &Failure{Code: http.StatusBadRequest, Message: "invalid multipart form"}

// Error returns the error code and message in a formatted string.
func (e *Failure) Error() string {
	return e.Message
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
	}
}

// Validation joins every violated rule into a single bad request. It returns nil for an empty list.
func Validation(messages []string) error {
	if len(messages) == 0 {
		return nil
	}

	return &Failure{
		Code:    http.StatusBadRequest,
		Message: strings.Join(messages, ", "),
	}
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Message: msg,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
		}
	}

	return nil
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Message: entityName,
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: message,
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// IsDomain reports whether err carries a Failure raised on purpose by domain code.
func IsDomain(err error) bool {
	var fail *Failure

	return errors.As(err, &fail) && fail.Code < http.StatusInternalServerError
}
