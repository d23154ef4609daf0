package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrNotFound       = &AppError{Code: http.StatusNotFound, Message: "Resource not found"}
	ErrUnauthorized   = &AppError{Code: http.StatusUnauthorized, Message: "Unauthorized"}
	ErrForbidden      = &AppError{Code: http.StatusForbidden, Message: "Forbidden"}
	ErrBadRequest     = &AppError{Code: http.StatusBadRequest, Message: "Bad request"}
	ErrInternalServer = &AppError{Code: http.StatusInternalServerError, Message: "Internal server error"}
	ErrConflict       = &AppError{Code: http.StatusConflict, Message: "Resource already exists"}
	ErrEmptyCart      = &AppError{Code: http.StatusUnprocessableEntity, Message: "Cart has no lines"}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: resource + " not found",
	}
}

// NewConflictError creates a conflict error with a custom message
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// NewInvalidDiscountCode reports an unrecognized discount code.
func NewInvalidDiscountCode(code string) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: fmt.Sprintf("Unknown discount code %q", code),
	}
}

// NewNegativeLineError reports a cart line with a negative price or quantity.
func NewNegativeLineError(field string, index int) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors: []FieldError{
			{Field: fmt.Sprintf("lines[%d].%s", index, field), Message: field + " must not be negative"},
		},
	}
}

// NewUnknownItem reports a missing inventory item.
func NewUnknownItem(itemID string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: fmt.Sprintf("Inventory item %s not found", itemID),
	}
}

// NewReportAlreadyFinalized reports an attempt to mutate a finalized daily report.
func NewReportAlreadyFinalized(date string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Message: fmt.Sprintf("Daily report for %s is already finalized", date),
	}
}

// DeductionLine identifies one recipe-line deduction within a settlement.
type DeductionLine struct {
	InventoryItemID string `json:"inventory_item_id"`
	Quantity        string `json:"quantity"`
	Reason          string `json:"reason,omitempty"`
}

// PartialDeductionError is returned when a sale settled but one or more
// inventory deductions failed. The transaction record stays durable; the
// failed lines are reported for manual reconciliation, never rolled back.
type PartialDeductionError struct {
	TransactionID string          `json:"transaction_id"`
	Applied       []DeductionLine `json:"applied"`
	Failed        []DeductionLine `json:"failed"`
}

func (e *PartialDeductionError) Error() string {
	return fmt.Sprintf("sale %s settled with %d of %d inventory deductions applied",
		e.TransactionID, len(e.Applied), len(e.Applied)+len(e.Failed))
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}
