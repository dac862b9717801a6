package response

import (
	"encoding/json"
	"giftlist/shared/constant"
	"giftlist/shared/failure"
	"giftlist/shared/logger"
	"maps"
	"net/http"
)

const (
	keySuccess = "success"
	keyMessage = "message"
)

// Envelope is the body every endpoint answers with. Payload fields sit next to it at the top level.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// WithMessage sends an envelope without payload. Success follows the status code.
func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Envelope{Success: code < http.StatusBadRequest, Message: message})
}

// WithData sends the envelope with value stored under key, e.g. {"success":true,"gift":{...}}.
func WithData(writer http.ResponseWriter, code int, message, key string, value any) {
	WithFields(writer, code, message, map[string]any{key: value})
}

// WithFields sends the envelope merged with fields.
func WithFields(writer http.ResponseWriter, code int, message string, fields map[string]any) {
	payload := make(map[string]any, len(fields)+2) //nolint:mnd
	maps.Copy(payload, fields)

	payload[keySuccess] = code < http.StatusBadRequest
	if message != constant.Empty {
		payload[keyMessage] = message
	}

	response(writer, code, payload)
}

// WithError sends a failure raised by domain code as is. Anything else is logged and answered
// with a generic internal error so no internal detail leaks.
func WithError(writer http.ResponseWriter, err error) {
	if failure.IsDomain(err) {
		WithMessage(writer, failure.GetCode(err), err.Error())

		return
	}

	logger.ErrorWithStack(err)

	WithMessage(writer, http.StatusInternalServerError, constant.ResponseErrorInternal)
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

// WithUnhealthy sends a default response for when the server is unhealthy
func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func response(writer http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)
	_, err = writer.Write(response)

	if err != nil {
		logger.ErrorWithStack(err)
	}
}
