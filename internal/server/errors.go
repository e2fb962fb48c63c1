package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/leadgen/internal/export"
	"github.com/jonathan/leadgen/internal/session"
)

// ErrSessionNotFound indicates an unknown or evicted session id
type ErrSessionNotFound struct {
	ID string
}

func (e *ErrSessionNotFound) Error() string {
	return fmt.Sprintf("session not found: %s", e.ID)
}

// ErrBadRequest indicates a malformed request
type ErrBadRequest struct {
	Message string
}

func (e *ErrBadRequest) Error() string {
	return e.Message
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		notFound    *ErrSessionNotFound
		badRequest  *ErrBadRequest
		invalid     *session.ValidationError
		extraction  *session.ExtractionError
		unsupported *export.UnsupportedFormatError
	)
	switch {
	case errors.As(err, &notFound), errors.Is(err, session.ErrNoResult):
		return http.StatusNotFound
	case errors.As(err, &badRequest), errors.As(err, &invalid), errors.As(err, &unsupported):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrRunInProgress):
		return http.StatusConflict
	case errors.As(err, &extraction):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
