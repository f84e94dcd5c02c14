package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/docsync/userdocs/pkg/session"
)

// Status is the phase of an AuthStore.
type Status int

const (
	Anonymous Status = iota
	Pending
	Authenticated
)

func (s Status) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case Pending:
		return "pending"
	case Authenticated:
		return "authenticated"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// AuthState is a snapshot of an AuthStore.
type AuthState struct {
	Token     string
	IsLoading bool
	// Error is the message of the last failed login, empty after a new attempt starts.
	Error string
}

// Status derives the phase from the snapshot. A login in flight is Pending even
// when an older token is still held.
func (s AuthState) Status() Status {
	switch {
	case s.IsLoading:
		return Pending
	case s.Token != "":
		return Authenticated
	default:
		return Anonymous
	}
}

// AuthStore owns the session token.
type AuthStore struct {
	api     AuthAPI
	storage session.Storage
	opts    options

	mu    sync.Mutex
	state AuthState

	subs listeners[AuthState]
}

// NewAuthStore creates a store and restores the token persisted in storage.
// A restored token is trusted until the API rejects it. A storage read error is
// logged and the store starts anonymous.
func NewAuthStore(api AuthAPI, storage session.Storage, opts ...Option) *AuthStore {
	s := &AuthStore{
		api:     api,
		storage: storage,
		opts:    defaultOptions(),
	}
	for _, opt := range opts {
		opt(&s.opts)
	}

	token, ok, err := storage.Load()
	switch {
	case err != nil:
		s.opts.logger.Warn().Err(err).Msg("could not restore session, starting anonymous")
	case ok:
		s.state.Token = token
		s.opts.logger.Debug().Msg("session restored")
	}

	return s
}

// Login exchanges credentials for a token and persists it. On failure the
// previous token is kept and Error holds the failure message.
func (s *AuthStore) Login(ctx context.Context, username, password string) error {
	s.update(func(st *AuthState) {
		st.IsLoading = true
		st.Error = ""
	})

	token, err := s.api.Login(ctx, username, password)
	if err == nil {
		if saveErr := s.storage.Save(token); saveErr != nil {
			err = fmt.Errorf("failed to persist session: %w", saveErr)
		}
	}

	if err != nil {
		s.opts.logger.Info().Err(err).Str("username", username).Msg("login failed")
		s.update(func(st *AuthState) {
			st.IsLoading = false
			st.Error = failureMessage(err)
		})
		return err
	}

	s.opts.logger.Info().Str("username", username).Msg("logged in")
	s.update(func(st *AuthState) {
		st.IsLoading = false
		st.Token = token
	})
	return nil
}

// Logout forgets the token in memory and in storage. It always leaves the store
// anonymous; a storage error is logged and returned. Error is left as it was.
func (s *AuthStore) Logout() error {
	s.update(func(st *AuthState) {
		st.Token = ""
	})

	if err := s.storage.Clear(); err != nil {
		s.opts.logger.Error().Err(err).Msg("failed to clear persisted session")
		return fmt.Errorf("failed to clear session: %w", err)
	}
	s.opts.logger.Debug().Msg("logged out")
	return nil
}

// Snapshot returns the current state.
func (s *AuthStore) Snapshot() AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Status is shorthand for Snapshot().Status().
func (s *AuthStore) Status() Status {
	return s.Snapshot().Status()
}

// Token returns the current token, or "" when anonymous.
func (s *AuthStore) Token() string {
	return s.Snapshot().Token
}

// Subscribe registers fn to receive every new state. The returned func removes it.
func (s *AuthStore) Subscribe(fn func(AuthState)) (cancel func()) {
	return s.subs.add(fn)
}

func (s *AuthStore) update(mutate func(*AuthState)) {
	s.mu.Lock()
	mutate(&s.state)
	state := s.state
	s.mu.Unlock()

	s.subs.notify(state)
}
