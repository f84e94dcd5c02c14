package client

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	// ReasonInvalidCredentials is reported when login succeeds at the HTTP level but yields no token.
	ReasonInvalidCredentials = "invalid credentials"

	reasonLogin  = "login failed"
	reasonFetch  = "failed to fetch data"
	reasonCreate = "failed to create data"
	reasonUpdate = "failed to update data"
	reasonDelete = "failed to delete data"
)

// StatusError is the cause of a failure caused by a non-2xx response.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %s", e.Status)
	}
	return fmt.Sprintf("unexpected status %s: %s", e.Status, e.Body)
}

// UpstreamError is the cause of a failure the API reported inside a 2xx envelope.
type UpstreamError struct {
	Code int
	Text string
}

func (e *UpstreamError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("api error code %d", e.Code)
	}
	return fmt.Sprintf("api error code %d: %s", e.Code, e.Text)
}

func message(reason string, cause error) string {
	if cause == nil {
		return reason
	}
	return reason + ": " + cause.Error()
}

// AuthError is returned by Login. Op is always "login".
type AuthError struct {
	Op         string
	StatusCode int
	Reason     string
	Err        error
}

func (e *AuthError) Error() string   { return message(e.Reason, e.Err) }
func (e *AuthError) Unwrap() error   { return e.Err }
func (e *AuthError) HTTPStatus() int { return e.StatusCode }

// FetchError is returned by FetchRecords. Op is always "fetch".
type FetchError struct {
	Op         string
	StatusCode int
	Reason     string
	Err        error
}

func (e *FetchError) Error() string   { return message(e.Reason, e.Err) }
func (e *FetchError) Unwrap() error   { return e.Err }
func (e *FetchError) HTTPStatus() int { return e.StatusCode }

// WriteError is returned by CreateRecord, UpdateRecord and DeleteRecord.
// Op is "create", "update" or "delete"; ID is empty for creates.
type WriteError struct {
	Op         string
	ID         string
	StatusCode int
	Reason     string
	Err        error
}

func (e *WriteError) Error() string   { return message(e.Reason, e.Err) }
func (e *WriteError) Unwrap() error   { return e.Err }
func (e *WriteError) HTTPStatus() int { return e.StatusCode }

// IsUnauthorized reports whether err is an API failure caused by the server
// rejecting the session token.
func IsUnauthorized(err error) bool {
	var withStatus interface{ HTTPStatus() int }
	if !errors.As(err, &withStatus) {
		return false
	}
	status := withStatus.HTTPStatus()
	return status == http.StatusUnauthorized || status == http.StatusForbidden
}
