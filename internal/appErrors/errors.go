package appErrors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

type ErrorCode string

// AppError is the error type every service returns to the HTTP layer.
type AppError struct {
	Kind     Kind        `json:"-"`
	Code     ErrorCode   `json:"code"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches on code so that copies made by WithDetails/WithError still
// compare equal to the predefined errors below.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func New(kind Kind, code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Kind:     kind,
		Code:     code,
		Message:  message,
		HTTPCode: httpCode,
	}
}

func Wrap(err error, kind Kind, code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Kind:     kind,
		Code:     code,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

// WithDetails returns a copy carrying details; predefined errors stay untouched.
func (e *AppError) WithDetails(details interface{}) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

// WithError returns a copy wrapping err.
func (e *AppError) WithError(err error) *AppError {
	cp := *e
	cp.Err = err
	return &cp
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	type alias struct {
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}
	return json.Marshal(&alias{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// KindOf reports the Kind of err, KindInternal for anything that is not an AppError.
func KindOf(err error) Kind {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

var (
	ErrUnauthorized     = New(KindUnauthenticated, CodeUnauthorized, "Authentication required", http.StatusUnauthorized)
	ErrInvalidToken     = New(KindUnauthenticated, CodeInvalidToken, "Invalid or expired token", http.StatusUnauthorized)
	ErrForbidden        = New(KindForbidden, CodeForbidden, "Access denied", http.StatusForbidden)
	ErrIdentityMismatch = New(KindForbidden, CodeIdentityMismatch, "Token identity does not match the requested email", http.StatusForbidden)

	ErrValidationFailed = New(KindValidation, CodeValidationFailed, "Validation failed", http.StatusBadRequest)

	ErrUserNotFound        = New(KindNotFound, CodeUserNotFound, "User not found", http.StatusNotFound)
	ErrTrainerNotFound     = New(KindNotFound, CodeTrainerNotFound, "Trainer not found", http.StatusNotFound)
	ErrApplicationNotFound = New(KindNotFound, CodeApplicationNotFound, "Application not found", http.StatusNotFound)
	ErrSlotNotFound        = New(KindNotFound, CodeSlotNotFound, "Slot not found", http.StatusNotFound)
	ErrClassNotFound       = New(KindNotFound, CodeClassNotFound, "Class not found", http.StatusNotFound)

	ErrEmailAlreadyExists         = New(KindConflict, CodeEmailAlreadyExists, "User already exists", http.StatusBadRequest)
	ErrSubscriberAlreadyExists    = New(KindConflict, CodeSubscriberAlreadyExists, "Subscriber already exists", http.StatusBadRequest)
	ErrClassAlreadyExists         = New(KindConflict, CodeClassAlreadyExists, "Class with this title already exists", http.StatusBadRequest)
	ErrApplicationInProgress      = New(KindConflict, CodeApplicationInProgress, "An application is already pending for this user", http.StatusBadRequest)
	ErrAlreadyTrainer             = New(KindConflict, CodeAlreadyTrainer, "User is already a trainer", http.StatusBadRequest)
	ErrApplicationAlreadyResolved = New(KindConflict, CodeApplicationAlreadyResolved, "Application has already been resolved", http.StatusBadRequest)
	ErrAlreadyBooked              = New(KindConflict, CodeAlreadyBooked, "Slot is already booked by this member", http.StatusBadRequest)

	ErrBudgetExceeded = New(KindCapacityExceeded, CodeBudgetExceeded, "Slot duration exceeds the trainer's remaining class duration", http.StatusBadRequest)
	ErrClassFull      = New(KindCapacityExceeded, CodeClassFull, "Class already has the maximum number of trainers", http.StatusBadRequest)
)

func ValidationError(details interface{}) *AppError {
	return ErrValidationFailed.WithDetails(details)
}

func InternalError(err error) *AppError {
	return Wrap(err, KindInternal, CodeInternalError, "Internal server error", http.StatusInternalServerError)
}

func NewBadRequestError(message string) *AppError {
	return New(KindValidation, CodeValidationFailed, message, http.StatusBadRequest)
}
