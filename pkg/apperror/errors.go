package apperror

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound          = errors.New("resource not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrBadRequest        = errors.New("bad request")
	ErrInternal          = errors.New("internal server error")
	ErrInvalidInput      = errors.New("invalid input")
	ErrRateLimitExceeded = errors.New("rate limit exceeded")

	// Engine kinds.
	ErrAlreadyRecorded    = errors.New("activity already recorded")
	ErrInsufficientFunds  = errors.New("insufficient points")
	ErrNotCompleted       = errors.New("quest not completed")
	ErrAlreadyClaimed     = errors.New("quest already claimed")
	ErrDuelAlreadyActive  = errors.New("an active duel already exists for this pair and book")
	ErrNotAuthorized      = errors.New("not authorized for this action")
	ErrSelfTarget         = errors.New("cannot target yourself")
	ErrInvalidTransition  = errors.New("invalid state transition")
	ErrNotFriends         = errors.New("users are not friends")
	ErrTransactionAborted = errors.New("transaction aborted, please retry")
)

// AppError is a custom error type that can hold an HTTP status code
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError
func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

var kinds = []struct {
	err    error
	kind   string
	status int
}{
	{ErrAlreadyRecorded, "ALREADY_RECORDED", http.StatusOK},
	{ErrInsufficientFunds, "INSUFFICIENT_FUNDS", http.StatusUnprocessableEntity},
	{ErrNotCompleted, "NOT_COMPLETED", http.StatusConflict},
	{ErrAlreadyClaimed, "ALREADY_CLAIMED", http.StatusConflict},
	{ErrDuelAlreadyActive, "DUEL_ALREADY_ACTIVE", http.StatusConflict},
	{ErrInvalidTransition, "INVALID_TRANSITION", http.StatusConflict},
	{ErrNotAuthorized, "NOT_AUTHORIZED", http.StatusForbidden},
	{ErrNotFriends, "NOT_FRIENDS", http.StatusForbidden},
	{ErrSelfTarget, "SELF_TARGET_NOT_ALLOWED", http.StatusBadRequest},
	{ErrTransactionAborted, "TRANSACTION_ABORTED", http.StatusConflict},
	{ErrNotFound, "ENTITY_NOT_FOUND", http.StatusNotFound},
	{ErrUnauthorized, "UNAUTHORIZED", http.StatusUnauthorized},
	{ErrForbidden, "FORBIDDEN", http.StatusForbidden},
	{ErrBadRequest, "BAD_REQUEST", http.StatusBadRequest},
	{ErrInvalidInput, "INVALID_INPUT", http.StatusBadRequest},
	{ErrRateLimitExceeded, "RATE_LIMITED", http.StatusTooManyRequests},
}

// KindOf returns the stable error kind for err, "INTERNAL" when unknown.
func KindOf(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return "INTERNAL"
}

// MapErrorToStatus maps common errors to HTTP status codes
func MapErrorToStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.status
		}
	}
	// Default to internal server error
	return http.StatusInternalServerError
}
