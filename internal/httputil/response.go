// Package httputil provides HTTP utility functions for request and response handling.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/utenadev/gca4g/internal/errors"
)

// FailureResponse is the uniform failure payload of the message boundary.
type FailureResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
}

// Classify maps an error to an HTTP status code and a stable error code.
func Classify(err error) (int, string) {
	var apiErr *apperrors.APIError

	switch {
	case apperrors.Is(err, apperrors.ErrInvalidInput):
		return http.StatusUnprocessableEntity, "invalid_input"
	case apperrors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case apperrors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case apperrors.Is(err, apperrors.ErrTimeout):
		return http.StatusGatewayTimeout, "timeout"
	case apperrors.Is(err, apperrors.ErrIntegrity):
		return http.StatusUnprocessableEntity, "decryption_failed"
	case apperrors.Is(err, apperrors.ErrMalformed):
		return http.StatusBadGateway, "malformed_response"
	case apperrors.As(err, &apiErr):
		return http.StatusBadGateway, "api_error"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// HandleErrorGin writes a failure payload for err using Gin.
// The message is returned verbatim so the caller can show it to the user.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	statusCode, code := Classify(err)

	// Log the full error details (including wrapped errors)
	if logger != nil {
		logger.Error("request failed",
			slog.Int("status_code", statusCode),
			slog.String("error_code", code),
			slog.Any("error", err),
		)
	}

	c.JSON(statusCode, FailureResponse{Error: err.Error(), Code: code})
}

// HandleBadRequestGin writes a 400 Bad Request failure payload for malformed JSON using Gin.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}

	c.JSON(http.StatusBadRequest, FailureResponse{Error: err.Error(), Code: "bad_request"})
}

// Success writes payload with success set to true.
func Success(c *gin.Context, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}
