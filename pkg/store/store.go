package store

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/docsync/userdocs/internal/rand"
	"github.com/docsync/userdocs/pkg/client"
	"github.com/docsync/userdocs/pkg/constants"
	"github.com/docsync/userdocs/pkg/models"
)

// ReasonUnexpected is the error text recorded for failures that did not come from the API.
const ReasonUnexpected = "an unexpected error occurred"

// AuthAPI is the part of *client.Client the AuthStore needs.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// RecordsAPI is the part of *client.Client the RecordsStore needs.
type RecordsAPI interface {
	FetchRecords(ctx context.Context, token string) ([]models.Record, error)
	CreateRecord(ctx context.Context, token string, record models.Record) (models.Record, error)
	UpdateRecord(ctx context.Context, token, id string, record models.Record) (models.Record, error)
	DeleteRecord(ctx context.Context, token, id string) error
}

var (
	_ AuthAPI    = (*client.Client)(nil)
	_ RecordsAPI = (*client.Client)(nil)
)

type options struct {
	logger         zerolog.Logger
	onUnauthorized func()
	newID          func() string
}

func defaultOptions() options {
	return options{
		logger: zerolog.Nop(),
		newID: func() string {
			return rand.NewCorrelationID(constants.CorrelationIDLength)
		},
	}
}

// Option configures a store.
type Option func(*options)

// WithLogger sets the logger for state transitions.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithOnUnauthorized sets the hook a RecordsStore calls when the API rejects the
// token. Applications usually pass AuthStore.Logout wrapped in a func().
func WithOnUnauthorized(hook func()) Option {
	return func(o *options) {
		o.onUnauthorized = hook
	}
}

// WithIDGenerator replaces the correlation id generator used by RecordsStore.Add.
func WithIDGenerator(newID func() string) Option {
	return func(o *options) {
		o.newID = newID
	}
}

// failureMessage is the text recorded in a state for err.
func failureMessage(err error) string {
	var (
		authErr  *client.AuthError
		fetchErr *client.FetchError
		writeErr *client.WriteError
		verr     *models.ValidationError
		nfErr    *NotFoundError
	)
	switch {
	case errors.As(err, &authErr),
		errors.As(err, &fetchErr),
		errors.As(err, &writeErr),
		errors.As(err, &verr),
		errors.As(err, &nfErr):
		return err.Error()
	default:
		return ReasonUnexpected
	}
}

// listeners is a set of subscriber callbacks.
type listeners[T any] struct {
	mu   sync.Mutex
	next int
	fns  map[int]func(T)
}

func (l *listeners[T]) add(fn func(T)) func() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.fns == nil {
		l.fns = make(map[int]func(T))
	}
	id := l.next
	l.next++
	l.fns[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			defer l.mu.Unlock()
			delete(l.fns, id)
		})
	}
}

func (l *listeners[T]) notify(state T) {
	l.mu.Lock()
	fns := make([]func(T), 0, len(l.fns))
	for _, fn := range l.fns {
		fns = append(fns, fn)
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn(state)
	}
}
