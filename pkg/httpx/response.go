// Package httpx holds the JSON response helpers shared by the storefront handlers.
package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tair/crumbly/pkg/apperror"
	"github.com/tair/crumbly/pkg/database"
	"github.com/tair/crumbly/pkg/logger"
)

const (
	StatusSuccess = "Success"

	messageTimeout  = "The request took too long, please try again."
	messageInternal = "Something went wrong, please try again later."
)

// ListResponse is the body of listing endpoints
type ListResponse struct {
	Success bool        `json:"success"`
	Result  interface{} `json:"Result"`
}

// MessageResponse is the body of mutation endpoints
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// StatusResponse is the body of count and auth endpoints
type StatusResponse struct {
	Status  string      `json:"Status"`
	Message string      `json:"message,omitempty"`
	Result  interface{} `json:"Result,omitempty"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"Status"`
	Message string `json:"message"`
}

// HandlerFunc returns the status and payload of a successful request, or an error
type HandlerFunc func(w http.ResponseWriter, r *http.Request) (int, interface{}, error)

// Handle adapts a HandlerFunc so that every request produces exactly one response
func Handle(fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, payload, err := fn(w, r)
		if err != nil {
			RespondError(w, r, err)
			return
		}
		RespondJSON(w, status, payload)
	}
}

// RespondJSON writes payload as JSON with the given status
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to encode response")
	}
}

// RespondError classifies err and writes the matching error body.
// Internal failures are logged and replaced by a generic message.
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := Classify(err)
	if status >= http.StatusInternalServerError {
		logger.Error(r.Context()).
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Msg("Request failed")
	}
	RespondJSON(w, status, body)
}

// Classify maps an error onto a status code and client-safe body
func Classify(err error) (int, ErrorResponse) {
	if appErr, ok := apperror.As(err); ok {
		message := appErr.Message
		status := appErr.HTTPStatus()
		if status >= http.StatusInternalServerError && appErr.Kind == apperror.KindInternal {
			message = messageInternal
		}
		return status, ErrorResponse{Status: appErr.StatusLabel(), Message: message}
	}
	if errors.Is(err, database.ErrTimeout) {
		return http.StatusGatewayTimeout, ErrorResponse{Status: apperror.LabelError, Message: messageTimeout}
	}
	return http.StatusInternalServerError, ErrorResponse{Status: apperror.LabelError, Message: messageInternal}
}

// DecodeJSON decodes the request body into dst
func DecodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.Validation("Invalid request body").Wrap(err)
	}
	return nil
}
