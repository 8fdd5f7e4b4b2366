package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *AppError carrying the same code, so that
// errors.Is(err, apperror.ErrInsufficientBalance()) works across wrapping.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// Code returns the error code of err if it is an *AppError, or "" otherwise.
func Code(err error) string {
	var e *AppError
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// ---- Points ledger (PNT) ----

func ErrInvalidAmount() *AppError {
	return New("PNT_001", "Invalid amount", http.StatusBadRequest)
}

func ErrInsufficientBalance() *AppError {
	return New("PNT_002", "Insufficient point balance", http.StatusPaymentRequired)
}

func ErrMemberNotFound() *AppError {
	return New("PNT_003", "Member not found", http.StatusNotFound)
}

func ErrTransactionNotFound() *AppError {
	return New("PNT_004", "Transaction not found", http.StatusNotFound)
}

// ErrDuplicateExternalID is returned when a ledger entry of the same kind
// already records the gateway transaction id.
func ErrDuplicateExternalID() *AppError {
	return New("PNT_005", "Ledger entry already recorded", http.StatusConflict)
}

// ---- Charge protocol (CHG) ----

func ErrPendingChargeNotFound() *AppError {
	return New("CHG_001", "Pending charge not found or expired", http.StatusGone)
}

// ErrPaymentFailed is returned when the gateway declines, or the member
// cancels or fails at the gateway page.
func ErrPaymentFailed(err error) *AppError {
	return Wrap("CHG_002", "결제에 실패하였습니다", http.StatusPaymentRequired, err)
}

func ErrRefundInProgress() *AppError {
	return New("CHG_003", "Refund already in progress", http.StatusConflict)
}

// ---- Payment gateway (GW) ----

func ErrGatewayUnavailable(err error) *AppError {
	return Wrap("GW_001", "Payment gateway unavailable", http.StatusServiceUnavailable, err)
}

func ErrGatewayProtocol(err error) *AppError {
	return Wrap("GW_002", "Unexpected payment gateway response", http.StatusBadGateway, err)
}

// ---- Authentication (AUTH) ----

func ErrInvalidToken() *AppError {
	return New("AUTH_001", "Invalid or expired token", http.StatusUnauthorized)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a REQ_001 request validation error.
func Validation(message string) *AppError {
	return New("REQ_001", message, http.StatusBadRequest)
}
