package store

import (
	"context"
	"sync"

	"github.com/docsync/userdocs/pkg/client"
	"github.com/docsync/userdocs/pkg/models"
)

// RecordsState is a snapshot of a RecordsStore. Records is a copy the caller owns.
type RecordsState struct {
	Records   []models.Record
	IsLoading bool
	// Error is the message of the last failed Load.
	Error string
	// WriteError is the message of the last failed Add, Update or Remove.
	WriteError string
}

// RecordsStore keeps the record collection in step with the API.
type RecordsStore struct {
	api  RecordsAPI
	opts options

	mu    sync.Mutex
	state RecordsState

	subs listeners[RecordsState]
}

// NewRecordsStore creates an empty store backed by api.
func NewRecordsStore(api RecordsAPI, opts ...Option) *RecordsStore {
	s := &RecordsStore{
		api:  api,
		opts: defaultOptions(),
	}
	for _, opt := range opts {
		opt(&s.opts)
	}
	return s
}

// Load replaces the collection with the server's list. On failure the previous
// collection is kept.
func (s *RecordsStore) Load(ctx context.Context, token string) error {
	s.update(func(st *RecordsState) {
		st.IsLoading = true
		st.Error = ""
	})

	records, err := s.api.FetchRecords(ctx, token)
	if err != nil {
		s.opts.logger.Warn().Err(err).Msg("fetch failed")
		s.update(func(st *RecordsState) {
			st.IsLoading = false
			st.Error = failureMessage(err)
		})
		s.checkUnauthorized(err)
		return err
	}

	s.opts.logger.Debug().Int("count", len(records)).Msg("records loaded")
	s.update(func(st *RecordsState) {
		st.IsLoading = false
		st.Records = append([]models.Record(nil), records...)
	})
	return nil
}

// Add validates draft, creates it on the server and appends the stored record.
// Nothing is sent when validation fails.
func (s *RecordsStore) Add(ctx context.Context, token string, draft models.Draft) (models.Record, error) {
	record, err := draft.Record()
	if err != nil {
		s.writeFailed(err)
		return models.Record{}, err
	}
	record.ID = s.opts.newID()

	created, err := s.api.CreateRecord(ctx, token, record)
	if err != nil {
		s.writeFailed(err)
		return models.Record{}, err
	}

	s.opts.logger.Debug().Str("id", created.ID).Str("correlation_id", record.ID).Msg("record created")
	s.update(func(st *RecordsState) {
		st.WriteError = ""
		st.Records = append(st.Records, created)
	})
	return created, nil
}

// Update validates draft and replaces the record with the given id. When the
// server's response names an id missing from the collection, nothing changes
// locally and a *NotFoundError is returned.
func (s *RecordsStore) Update(ctx context.Context, token, id string, draft models.Draft) (models.Record, error) {
	record, err := draft.Record()
	if err != nil {
		s.writeFailed(err)
		return models.Record{}, err
	}
	record.ID = id

	updated, err := s.api.UpdateRecord(ctx, token, id, record)
	if err != nil {
		s.writeFailed(err)
		return models.Record{}, err
	}
	if updated.ID == "" {
		updated.ID = id
	}

	found := false
	s.update(func(st *RecordsState) {
		for i := range st.Records {
			if st.Records[i].ID == updated.ID {
				st.Records[i] = updated
				found = true
				break
			}
		}
		if found {
			st.WriteError = ""
		} else {
			st.WriteError = (&NotFoundError{ID: updated.ID}).Error()
		}
	})

	if !found {
		s.opts.logger.Warn().Str("id", updated.ID).Msg("updated record is not loaded")
		return updated, &NotFoundError{ID: updated.ID}
	}
	return updated, nil
}

// Remove deletes the record on the server, then drops every local entry with
// that id. An id that is not loaded is not an error.
func (s *RecordsStore) Remove(ctx context.Context, token, id string) error {
	if err := s.api.DeleteRecord(ctx, token, id); err != nil {
		s.writeFailed(err)
		return err
	}

	s.update(func(st *RecordsState) {
		st.WriteError = ""
		kept := st.Records[:0]
		for _, r := range st.Records {
			if r.ID != id {
				kept = append(kept, r)
			}
		}
		st.Records = kept
	})
	return nil
}

// Snapshot returns a deep copy of the current state.
func (s *RecordsStore) Snapshot() RecordsState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyState()
}

// Subscribe registers fn to receive every new state. The returned func removes it.
func (s *RecordsStore) Subscribe(fn func(RecordsState)) (cancel func()) {
	return s.subs.add(fn)
}

func (s *RecordsStore) writeFailed(err error) {
	s.opts.logger.Warn().Err(err).Msg("write failed")
	s.update(func(st *RecordsState) {
		st.WriteError = failureMessage(err)
	})
	s.checkUnauthorized(err)
}

func (s *RecordsStore) checkUnauthorized(err error) {
	if s.opts.onUnauthorized != nil && client.IsUnauthorized(err) {
		s.opts.logger.Info().Msg("token rejected by the API")
		s.opts.onUnauthorized()
	}
}

func (s *RecordsStore) update(mutate func(*RecordsState)) {
	s.mu.Lock()
	mutate(&s.state)
	state := s.copyState()
	s.mu.Unlock()

	s.subs.notify(state)
}

func (s *RecordsStore) copyState() RecordsState {
	state := s.state
	if s.state.Records != nil {
		state.Records = make([]models.Record, len(s.state.Records))
		copy(state.Records, s.state.Records)
	}
	return state
}
