// Package fakedocs provides an in-process fake of the document-records API for tests.
//
// The server keeps users, tokens and records in memory, speaks the same JSON
// envelope as the real service and can be told to fail specific operations:
// with an HTTP status, with a non-zero envelope error code, or after a delay.
package fakedocs

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/docsync/userdocs/pkg/constants"
	"github.com/docsync/userdocs/pkg/models"
)

// Operation names used to target failures and count requests.
const (
	OpLogin  = "login"
	OpFetch  = "fetch"
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Envelope error codes the fake reports with HTTP 200.
const (
	ErrorCodeAccessDenied = 2004
	ErrorCodeNotFound     = 2005
	ErrorCodeBadRequest   = 2006
)

// Failure describes how to break one operation.
type Failure struct {
	// Op is one of the Op* constants.
	Op string
	// Status, when non-zero, is returned as the HTTP status with an empty body.
	Status int
	// ErrorCode, when non-zero, is returned inside a 200 envelope.
	ErrorCode int
	ErrorText string
	// Delay is applied before the request is handled. The request context is honored.
	Delay time.Duration
	// Times limits how many requests the failure applies to. Zero means every request.
	Times int
}

// Envelope is the wire wrapper of every response.
type Envelope struct {
	ErrorCode int    `json:"error_code"`
	ErrorText string `json:"error_text"`
	Data      any    `json:"data"`
}

// Server is a fake document-records API.
type Server struct {
	mu       sync.Mutex
	users    map[string]string
	tokens   map[string]string
	records  []models.Record
	failures []*Failure
	requests map[string]int

	router *mux.Router
	http   *httptest.Server
}

// NewServer creates a server with no users and no records. Call Start to serve it.
func NewServer() *Server {
	s := &Server{
		users:    make(map[string]string),
		tokens:   make(map[string]string),
		requests: make(map[string]int),
	}

	r := mux.NewRouter()
	r.HandleFunc(constants.LoginPath, s.handle(OpLogin, s.handleLogin)).Methods(http.MethodPost)
	r.HandleFunc(constants.FetchPath, s.authorized(OpFetch, s.handleFetch)).Methods(http.MethodGet)
	r.HandleFunc(constants.CreatePath, s.authorized(OpCreate, s.handleCreate)).Methods(http.MethodPost)
	r.HandleFunc(constants.UpdatePath+"{id}", s.authorized(OpUpdate, s.handleUpdate)).Methods(http.MethodPost)
	r.HandleFunc(constants.DeletePath+"{id}", s.authorized(OpDelete, s.handleDelete)).Methods(http.MethodPost)
	s.router = r

	return s
}

// Start serves the fake on a random local port.
func (s *Server) Start() {
	s.http = httptest.NewServer(s.router)
}

// Close stops the server started by Start.
func (s *Server) Close() {
	if s.http != nil {
		s.http.Close()
	}
}

// URL is the base URL of a started server.
func (s *Server) URL() string {
	if s.http == nil {
		return ""
	}
	return s.http.URL
}

// Handler exposes the router for use with a custom listener or httptest recorder.
func (s *Server) Handler() http.Handler {
	return s.router
}

// AddUser registers credentials accepted by login.
func (s *Server) AddUser(username, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[username] = password
}

// IssueToken makes token valid without a login round trip.
func (s *Server) IssueToken(username, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = username
}

// RevokeTokens invalidates every issued token; later requests get 401.
func (s *Server) RevokeTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = make(map[string]string)
}

// Seed appends records, assigning ids to those without one, and returns them as stored.
func (s *Server) Seed(records ...models.Record) []models.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]models.Record, 0, len(records))
	for _, rec := range records {
		if rec.ID == "" {
			rec.ID = uuid.NewString()
		}
		s.records = append(s.records, rec)
		stored = append(stored, rec)
	}
	return stored
}

// Records returns a copy of the server-side collection.
func (s *Server) Records() []models.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Record(nil), s.records...)
}

// Fail registers a failure. Failures are matched in registration order.
func (s *Server) Fail(f Failure) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, &f)
}

// ClearFailures removes every registered failure.
func (s *Server) ClearFailures() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = nil
}

// Requests reports how many requests reached op, including failed ones.
func (s *Server) Requests(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[op]
}

func (s *Server) takeFailure(op string) *Failure {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests[op]++
	for i, f := range s.failures {
		if f.Op != op {
			continue
		}
		matched := *f
		if f.Times > 0 {
			f.Times--
			if f.Times == 0 {
				s.failures = append(s.failures[:i], s.failures[i+1:]...)
			}
		}
		return &matched
	}
	return nil
}

// handle applies injected failures before calling next.
func (s *Server) handle(op string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := s.takeFailure(op)
		if f == nil {
			next(w, r)
			return
		}

		if f.Delay > 0 {
			select {
			case <-time.After(f.Delay):
			case <-r.Context().Done():
				return
			}
		}

		switch {
		case f.Status != 0:
			w.WriteHeader(f.Status)
		case f.ErrorCode != 0:
			respond(w, f.ErrorCode, f.ErrorText, nil)
		default:
			next(w, r)
		}
	}
}

func (s *Server) authorized(op string, next http.HandlerFunc) http.HandlerFunc {
	return s.handle(op, func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(constants.AuthHeader)

		s.mu.Lock()
		_, ok := s.tokens[token]
		s.mu.Unlock()

		if token == "" || !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		next(w, r)
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, ErrorCodeBadRequest, "Invalid request payload", nil)
		return
	}

	s.mu.Lock()
	password, ok := s.users[req.Username]
	if !ok || password != req.Password {
		s.mu.Unlock()
		respond(w, ErrorCodeAccessDenied, "Access deny", nil)
		return
	}
	token := uuid.NewString()
	s.tokens[token] = req.Username
	s.mu.Unlock()

	respond(w, 0, "OK", map[string]string{"token": token})
}

func (s *Server) handleFetch(w http.ResponseWriter, _ *http.Request) {
	respond(w, 0, "OK", s.Records())
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var rec models.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		respond(w, ErrorCodeBadRequest, "Invalid request payload", nil)
		return
	}

	// Client-side ids are correlation ids only; the server always assigns its own.
	rec.ID = uuid.NewString()

	s.mu.Lock()
	s.records = append(s.records, rec)
	s.mu.Unlock()

	respond(w, 0, "OK", rec)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var rec models.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		respond(w, ErrorCodeBadRequest, "Invalid request payload", nil)
		return
	}
	rec.ID = id

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == id {
			s.records[i] = rec
			respond(w, 0, "OK", rec)
			return
		}
	}
	respond(w, ErrorCodeNotFound, "Record not found", nil)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			respond(w, 0, "OK", nil)
			return
		}
	}
	respond(w, ErrorCodeNotFound, "Record not found", nil)
}

func respond(w http.ResponseWriter, code int, text string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(Envelope{ErrorCode: code, ErrorText: text, Data: data})
}
