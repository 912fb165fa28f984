// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/danielhkuo/quickly-ask/cliparse"
	"github.com/danielhkuo/quickly-ask/db"
	"github.com/danielhkuo/quickly-ask/models"
	"github.com/danielhkuo/quickly-ask/questions"
)

// TestAdminKey is the admin key in GetTestConfig
const TestAdminKey = "test-admin-key"

var ErrBackendDown = errors.New("backend down")

// SetupTestDB creates a fresh in-memory SQLite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open(db.SQLite.DriverName(), ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// every new connection to :memory: is a fresh database
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// NewSQLStore returns a question store backed by SetupTestDB
func NewSQLStore(t *testing.T) *db.Store {
	t.Helper()
	return db.NewStore(SetupTestDB(t), db.SQLite)
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:        3318,
		Backend:     cliparse.BackendSQLite,
		DatabaseURL: ":memory:",
		AdminKey:    TestAdminKey,
		PerPage:     questions.DefaultPerPage,
		CallerName:  "Mama",
	}
}

// MemoryStore is an in-memory questions.Store. Search matches question
// text case-insensitively, like the SQL store.
type MemoryStore struct {
	mu          sync.Mutex
	collections map[models.Subject]bool
	questions   map[models.Subject][]models.Question
	failure     error
	calls       int
}

var _ questions.Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[models.Subject]bool),
		questions:   make(map[models.Subject][]models.Question),
	}
}

// SetFailure makes every later call fail with err; nil restores the store
func (s *MemoryStore) SetFailure(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failure = err
}

// Calls counts backend calls, including failed ones
func (s *MemoryStore) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// Questions returns the stored questions of subject in insertion order
func (s *MemoryStore) Questions(subject models.Subject) []models.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Question(nil), s.questions[subject]...)
}

// AddQuestion stores a question directly, bypassing the failure switch
func (s *MemoryStore) AddQuestion(q models.Question) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions[q.Subject] = append(s.questions[q.Subject], q)
}

func (s *MemoryStore) begin() error {
	s.calls++
	return s.failure
}

func (s *MemoryStore) Health(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.begin()
}

func (s *MemoryStore) EnsureCollection(ctx context.Context, subject models.Subject) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return false, err
	}
	if s.collections[subject] {
		return false, nil
	}
	s.collections[subject] = true
	return true, nil
}

func (s *MemoryStore) Search(ctx context.Context, subject models.Subject, query string, limit int) ([]models.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	results := []models.Question{}
	for _, q := range s.questions[subject] {
		if len(results) == limit {
			break
		}
		if strings.Contains(strings.ToLower(q.Question), needle) {
			results = append(results, q)
		}
	}
	return results, nil
}

func (s *MemoryStore) Create(ctx context.Context, q models.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return err
	}
	s.questions[q.Subject] = append(s.questions[q.Subject], q)
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, subject models.Subject, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return err
	}

	list := s.questions[subject]
	for i, q := range list {
		if q.ID == id {
			s.questions[subject] = append(list[:i:i], list[i+1:]...)
			return nil
		}
	}
	return db.ErrNotFound
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// MakeFormRequest creates a form post like the HTML page sends
func MakeFormRequest(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
