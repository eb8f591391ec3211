// Copyright (c) 2026 Langdata. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the error type shared by the catalog service layers.

Storage and file-system failures are classified into an [AppError] before they
leave the service layer, so the HTTP layer only has to read the status code.
An I/O failure is never reported to a client as success.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Machine readable codes carried in the "code" field of error responses.
const (
	CodeValidation  = "VALIDATION_ERROR" // 400, a mutation payload is malformed
	CodeForbidden   = "FORBIDDEN"        // 403, no trusted admin credential
	CodeNotFound    = "NOT_FOUND"        // 404, no row (or no harvest at the date)
	CodeConflict    = "CONFLICT"         // 409, a unique constraint rejected a write
	CodeRateLimited = "RATE_LIMITED"     // 429, the client exhausted its budget
	CodeInternal    = "INTERNAL_ERROR"   // 500, store or file I/O failure
)

// AppError is a classified failure. Message is safe to show to clients;
// Cause is kept for the server log only.
type AppError struct {
	Code       string       `json:"code"`
	Message    string       `json:"error"`
	HTTPStatus int          `json:"-"`
	Cause      error        `json:"-"`
	Details    []FieldError `json:"details,omitempty"`
}

// FieldError is one rejected field of a mutation payload.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Cause }

func newError(status int, code, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

// # Client Errors (4xx)

// NotFound reports a missing resource.
//
//	apperr.NotFound("Country") // "Country not found"
func NotFound(resource string) *AppError {
	return newError(http.StatusNotFound, CodeNotFound, resource+" not found")
}

func Forbidden(message string) *AppError {
	return newError(http.StatusForbidden, CodeForbidden, message)
}

func Conflict(message string) *AppError {
	return newError(http.StatusConflict, CodeConflict, message)
}

// ValidationError carries the per-field failures collected by a validator.
func ValidationError(message string, details ...FieldError) *AppError {
	e := newError(http.StatusBadRequest, CodeValidation, message)
	e.Details = details
	return e
}

func RateLimited(retryAfterSeconds int) *AppError {
	return newError(http.StatusTooManyRequests, CodeRateLimited,
		fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds))
}

// # Server Errors (5xx)

// Internal hides cause behind a generic message.
func Internal(cause error) *AppError {
	e := newError(http.StatusInternalServerError, CodeInternal, "An unexpected error occurred")
	e.Cause = cause
	return e
}

// # Helpers

// As returns the first [*AppError] in err's chain, or nil.
func As(err error) *AppError {
	var appError *AppError
	if errors.As(err, &appError) {
		return appError
	}
	return nil
}

// IsNotFound reports whether err classifies as a 404.
func IsNotFound(err error) bool {
	appError := As(err)
	return appError != nil && appError.Code == CodeNotFound
}
