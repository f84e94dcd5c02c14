package constants

import "errors"

// Errors
var (
	InvalidResponse = errors.New("invalid response from the documents API") //nolint:stylecheck
	ErrNoBaseURL    = errors.New("base url not set")
	ErrNoToken      = errors.New("token not set")
	ErrNoRecordID   = errors.New("record id not set")
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrUnknownBackend   = errors.New("unknown session backend")
)
