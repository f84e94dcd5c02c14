package store

import (
	"errors"
	"fmt"
)

// ErrRecordNotFound is matched by *NotFoundError.
var ErrRecordNotFound = errors.New("record not found")

// NotFoundError is returned by RecordsStore.Update when the updated id is not in
// the local collection. The server-side update has already happened; call Load
// to pick it up.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("record %q not found", e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrRecordNotFound
}
