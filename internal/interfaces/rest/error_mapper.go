package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/DanielPopoola/ficmart-checkout/internal/domain"
)

type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ToHTTPStatus maps domain error codes to HTTP statuses.
func ToHTTPStatus(err error) int {
	var domainErr *domain.DomainError
	if !errors.As(err, &domainErr) {
		return http.StatusInternalServerError
	}

	switch domainErr.Code {
	case domain.ErrCodeValidation:
		return http.StatusBadRequest
	case domain.ErrCodeProductNotFound:
		return http.StatusNotFound
	case domain.ErrCodeInsufficientStock:
		return http.StatusConflict
	case domain.ErrCodePermissionDenied:
		return http.StatusForbidden
	case domain.ErrCodePaymentDeclined:
		return http.StatusPaymentRequired
	case domain.ErrCodeCheckoutCancelled:
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

// WriteError maps an error to the JSON error envelope.
func WriteError(w http.ResponseWriter, err error, logger *slog.Logger) {
	code := "INTERNAL_ERROR"
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		code = domainErr.Code
	}

	response := ErrorResponse{
		Success: false,
		Error: ErrorDetail{
			Code:    code,
			Message: err.Error(),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(ToHTTPStatus(err))
	if encodeErr := json.NewEncoder(w).Encode(response); encodeErr != nil {
		logger.Error("failed to encode error response", "error", encodeErr)
	}
}
