package util

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code        string
	Message     string
	HTTPStatus  int
	FieldErrors map[string][]string
	Err         error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status}
}

// NewValidationError reports malformed input with per-field messages.
func NewValidationError(fieldErrors map[string][]string) error {
	return &DomainError{
		Code:        "VALIDATION_FAILED",
		Message:     "Validation failed.",
		HTTPStatus:  http.StatusUnprocessableEntity,
		FieldErrors: fieldErrors,
	}
}

// NewMalformedBody reports a request payload that could not be parsed at all,
// classed with the other input validation failures.
func NewMalformedBody() error {
	return &DomainError{
		Code:       "VALIDATION_FAILED",
		Message:    "The request payload could not be parsed.",
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

// NewDuplicateEmail reports an email already present in one of the principal
// collections, surfaced as a validation error on the email field.
func NewDuplicateEmail() error {
	return &DomainError{
		Code:        "VALIDATION_FAILED",
		Message:     "Validation failed.",
		HTTPStatus:  http.StatusUnprocessableEntity,
		FieldErrors: map[string][]string{"email": {"The email is already taken."}},
	}
}

func NewNotFound(resource string) error {
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found.", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized)
}

func NewForbidden(message string) error {
	return NewDomainError("FORBIDDEN", message, http.StatusForbidden)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return &DomainError{
			Code:       "BAD_REQUEST",
			Message:    fiberErr.Message,
			HTTPStatus: fiberErr.Code,
		}
	}
	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		if de, ok := NewNotFound("resource").(*DomainError); ok {
			return de
		}
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}
