package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain operations
var (
	// ErrNoSession indicates there is no valid session token
	ErrNoSession = errors.New("no active session")

	// ErrServerOffline indicates the catalog server is unreachable
	ErrServerOffline = errors.New("catalog server is unreachable")

	// ErrAuthFailed indicates the session token was refused
	ErrAuthFailed = errors.New("authentication token is invalid")

	// ErrUnknownRemote indicates an unexpected response from the server
	ErrUnknownRemote = errors.New("unknown server error")

	// ErrRejected indicates a well-formed response with ok=false
	ErrRejected = errors.New("request rejected by server")

	// ErrLoginIncorrect indicates the server rejected the credentials
	ErrLoginIncorrect = fmt.Errorf("incorrect login or password: %w", ErrRejected)

	// ErrStreamUnavailable indicates the server refused a stream ticket
	ErrStreamUnavailable = fmt.Errorf("stream link unavailable: %w", ErrRejected)

	// ErrNotFound indicates a series, season or episode id is missing from the catalog
	ErrNotFound = errors.New("not found in catalog")
)

// StatusError is a non-2xx HTTP status other than 401
type StatusError struct {
	Op   string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Op, e.Code)
}

func (e *StatusError) Unwrap() error {
	return ErrUnknownRemote
}

// UserMessage maps an error to the text shown to the user
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrLoginIncorrect):
		return "Incorrect login or password"
	case errors.Is(err, ErrStreamUnavailable):
		return "Stream link is unavailable"
	case errors.Is(err, ErrNoSession):
		return "Please log in"
	case errors.Is(err, ErrAuthFailed):
		return "Session expired, please log in again"
	case errors.Is(err, ErrServerOffline):
		return "Server is unreachable"
	case errors.Is(err, ErrNotFound):
		return "Item no longer exists in the catalog"
	case errors.Is(err, ErrRejected):
		return "Request was rejected by the server"
	default:
		return "Unknown error"
	}
}
