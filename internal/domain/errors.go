package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business logic error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

const (
	ErrCodeValidation         = "VALIDATION_FAILED"
	ErrCodeProductNotFound    = "PRODUCT_NOT_FOUND"
	ErrCodeInsufficientStock  = "INSUFFICIENT_STOCK"
	ErrCodePermissionDenied   = "PERMISSION_DENIED"
	ErrCodePaymentDeclined    = "PAYMENT_DECLINED"
	ErrCodeCheckoutCancelled  = "CHECKOUT_CANCELLED"
	ErrCodeNotificationFailed = "NOTIFICATION_FAILED"
)

func NewValidationError(message string) *DomainError {
	return &DomainError{
		Code:    ErrCodeValidation,
		Message: message,
	}
}

func NewProductNotFoundError(productID string) *DomainError {
	return &DomainError{
		Code:    ErrCodeProductNotFound,
		Message: fmt.Sprintf("product %s does not exist", productID),
	}
}

func NewInsufficientStockError(productID string, qty int64) *DomainError {
	return &DomainError{
		Code:    ErrCodeInsufficientStock,
		Message: fmt.Sprintf("insufficient stock for %s (requested %d)", productID, qty),
	}
}

func NewPermissionDeniedError(permission string) *DomainError {
	return &DomainError{
		Code:    ErrCodePermissionDenied,
		Message: fmt.Sprintf("missing permission %s", permission),
	}
}

func NewPaymentDeclinedError(err error) *DomainError {
	return &DomainError{
		Code:    ErrCodePaymentDeclined,
		Message: "payment was declined by the processor",
		Err:     err,
	}
}

func NewCheckoutCancelledError(err error) *DomainError {
	return &DomainError{
		Code:    ErrCodeCheckoutCancelled,
		Message: "checkout was cancelled",
		Err:     err,
	}
}

func NewNotificationFailedError(err error) *DomainError {
	return &DomainError{
		Code:    ErrCodeNotificationFailed,
		Message: "confirmation notification failed",
		Err:     err,
	}
}

// IsErrorCode checks if an error is a DomainError with a specific code
func IsErrorCode(err error, code string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}
