package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies an error category that maps onto an HTTP status.
type Code string

const (
	NotFoundCode          Code = "NOT_FOUND"
	InvalidArgumentCode   Code = "INVALID_ARGUMENT"
	InsufficientStockCode Code = "INSUFFICIENT_STOCK"
	EmptyCartCode         Code = "EMPTY_CART"
	ConflictCode          Code = "CONFLICT"
	UnauthenticatedCode   Code = "UNAUTHENTICATED"
	InternalCode          Code = "INTERNAL"
)

var codeStatusMap = map[Code]int{
	NotFoundCode:          http.StatusNotFound,
	InvalidArgumentCode:   http.StatusBadRequest,
	InsufficientStockCode: http.StatusBadRequest,
	EmptyCartCode:         http.StatusBadRequest,
	ConflictCode:          http.StatusConflict,
	UnauthenticatedCode:   http.StatusUnauthorized,
	InternalCode:          http.StatusInternalServerError,
}

// Error carries a code plus a client-safe message. The wrapped cause is for
// logs only and never crosses the HTTP boundary.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func Wrap(code Code, err error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Err: err}
}

func NotFound(format string, args ...any) *Error {
	return New(NotFoundCode, format, args...)
}

func InvalidArgument(format string, args ...any) *Error {
	return New(InvalidArgumentCode, format, args...)
}

// InsufficientStock names the offending product with available vs requested
// quantity, matching the message contract of the checkout flow.
func InsufficientStock(productName string, available, requested int32) *Error {
	return New(InsufficientStockCode,
		"Insufficient stock for %s. Available: %d, Requested: %d",
		productName, available, requested)
}

func EmptyCart() *Error {
	return New(EmptyCartCode, "Cart is empty")
}

func Conflict(format string, args ...any) *Error {
	return New(ConflictCode, format, args...)
}

func Unauthenticated(format string, args ...any) *Error {
	return New(UnauthenticatedCode, format, args...)
}

func Internal(err error) *Error {
	return &Error{Code: InternalCode, Message: "Server error", Err: err}
}

// CodeOf extracts the code from err, defaulting to InternalCode so that
// unclassified failures never leak detail to clients.
func CodeOf(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return InternalCode
}

// HTTPStatus maps err onto its response status.
func HTTPStatus(err error) int {
	if status, ok := codeStatusMap[CodeOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// ClientMessage returns the message safe to put in a response body.
func ClientMessage(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Code != InternalCode {
		return appErr.Message
	}
	return "Server error"
}
