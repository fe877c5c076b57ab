package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/codemonk/internal/client/models"
)

var (
	ErrNetwork      = errors.New("network failure")
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation failure")
	ErrServer       = errors.New("server failure")
)

const (
	msgNetwork      = "Unable to reach the server. Check your connection and try again."
	msgUnauthorized = "Your session has expired. Please log in again."
	msgServer       = "The server ran into a problem. Please try again in a moment."
	msgRejected     = "The request was rejected. Please check your input."
)

// Error is a failed backend call.
type Error struct {
	// Kind is one of ErrNetwork, ErrUnauthorized, ErrValidation, ErrServer.
	Kind        error
	Status      int
	Message     string
	FieldErrors map[string]string
	Err         error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (status %d): %s", e.Kind, e.Status, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func kindForStatus(status int) error {
	switch {
	case status == http.StatusUnauthorized:
		return ErrUnauthorized
	case status >= 500:
		return ErrServer
	default:
		return ErrValidation
	}
}

func fallbackMessage(kind error) string {
	switch kind {
	case ErrNetwork:
		return msgNetwork
	case ErrUnauthorized:
		return msgUnauthorized
	case ErrServer:
		return msgServer
	default:
		return msgRejected
	}
}

// KindOf classifies err for models.Result.
func KindOf(err error) models.ErrorKind {
	switch {
	case err == nil:
		return models.KindNone
	case errors.Is(err, ErrNetwork):
		return models.KindNetwork
	case errors.Is(err, ErrUnauthorized):
		return models.KindUnauthorized
	case errors.Is(err, ErrValidation):
		return models.KindValidation
	default:
		return models.KindServer
	}
}

// MessageOf returns a displayable message for err, never empty.
func MessageOf(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return models.DefaultFailureMessage
}

// FieldErrorsOf returns per-field server messages, if any.
func FieldErrorsOf(err error) map[string]string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.FieldErrors
	}
	return nil
}

// IsExpired reports whether the backend rejected an OTP or verification
// token because it is no longer valid.
func IsExpired(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.Status == http.StatusGone {
		return true
	}
	return strings.Contains(strings.ToLower(apiErr.Message), "expired")
}

// ResultOf converts a call outcome into a models.Result.
func ResultOf(err error, successMessage string) models.Result {
	if err == nil {
		return models.OK(successMessage)
	}
	return models.Fail(KindOf(err), MessageOf(err), FieldErrorsOf(err))
}

// StatusOf returns the HTTP status of a failed call, or 0 when no response
// was received.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
