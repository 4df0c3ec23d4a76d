// Package errors provides custom error types for the Kakeibo API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid passphrase", StatusCode: http.StatusUnauthorized}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Validation errors. Always detected before any write.
var (
	ErrInvalidMonth  = &AppError{Code: "INVALID_MONTH", Message: "Month must be a first-of-month date in YYYY-MM-01 format", StatusCode: http.StatusBadRequest}
	ErrInvalidTarget = &AppError{Code: "INVALID_TARGET", Message: "Exactly one of category_id or savings_goal_id must be provided", StatusCode: http.StatusBadRequest}
	ErrInvalidAmount = &AppError{Code: "INVALID_AMOUNT", Message: "Amount must be a positive integer", StatusCode: http.StatusBadRequest}
	ErrInvalidNote   = &AppError{Code: "INVALID_NOTE", Message: "Note must be 500 characters or fewer", StatusCode: http.StatusBadRequest}
)

// Target errors.
var (
	ErrTargetNotFound      = &AppError{Code: "TARGET_NOT_FOUND", Message: "Budget target not found", StatusCode: http.StatusNotFound}
	ErrTargetNotBudgetable = &AppError{Code: "TARGET_NOT_BUDGETABLE", Message: "Only expense categories can be budgeted", StatusCode: http.StatusConflict}
)

// Budget errors.
var (
	ErrBudgetNotFound  = &AppError{Code: "BUDGET_NOT_FOUND", Message: "Budget not found", StatusCode: http.StatusNotFound}
	ErrDuplicateBudget = &AppError{Code: "DUPLICATE_BUDGET", Message: "A budget for this target already exists in this month", StatusCode: http.StatusConflict}
)

// Copy preconditions. Checked before any storage access.
var (
	ErrSameMonth        = &AppError{Code: "SAME_MONTH", Message: "Source and destination months must differ", StatusCode: http.StatusBadRequest}
	ErrEmptySourceMonth = &AppError{Code: "EMPTY_SOURCE_MONTH", Message: "Source month has no budgets to copy", StatusCode: http.StatusBadRequest}
)
