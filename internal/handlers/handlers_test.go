package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/whitebrim/melanoscan-backend/internal/models"
	"github.com/whitebrim/melanoscan-backend/internal/services"
)

// memorySessions is an in-memory SessionStore. Sessions round-trip
// through JSON like the Redis store's do.
type memorySessions struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemorySessions() *memorySessions {
	return &memorySessions{data: make(map[string]string)}
}

func (m *memorySessions) Load(_ context.Context, token string) (*services.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[token]
	if !ok {
		return nil, nil
	}
	var s services.Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (m *memorySessions) Save(_ context.Context, s *services.Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[s.Token] = string(raw)
	return nil
}

func (m *memorySessions) Delete(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, token)
	return nil
}

// fakeLedger is a mutex-guarded in-memory usage ledger.
type fakeLedger struct {
	mu    sync.Mutex
	usage models.GuestUsage
}

func (l *fakeLedger) Current(context.Context) (models.GuestUsage, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.usage, nil
}

func (l *fakeLedger) IncrementUploads(context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.usage.Uploads++
	return nil
}

func (l *fakeLedger) IncrementChatbotInteractions(context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.usage.ChatbotInteractions++
	return nil
}

// fakeCompleter records prompts and returns a fixed reply or error.
type fakeCompleter struct {
	mu      sync.Mutex
	prompts []string
	reply   string
	err     error
}

func (c *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prompts = append(c.prompts, prompt)
	if c.err != nil {
		return "", c.err
	}
	return c.reply, nil
}

func (c *fakeCompleter) calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.prompts)
}

// fakeImageStore keeps "files" in a map.
type fakeImageStore struct {
	mu        sync.Mutex
	files     map[string][]byte
	removeErr error
}

func newFakeImageStore() *fakeImageStore {
	return &fakeImageStore{files: make(map[string][]byte)}
}

func (s *fakeImageStore) Save(_ context.Context, r io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[filename] = data
	return "/static/uploads/" + filename, nil
}

func (s *fakeImageStore) Exists(_ context.Context, filename string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.files[filename]
	return ok, nil
}

func (s *fakeImageStore) Remove(_ context.Context, filename string) error {
	if s.removeErr != nil {
		return s.removeErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, filename)
	return nil
}

func (s *fakeImageStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}

// fakeRecorder collects upload records.
type fakeRecorder struct {
	mu      sync.Mutex
	records []models.UploadRecord
}

func (r *fakeRecorder) Record(_ context.Context, userID, filename string) error {
	rec := models.UploadRecord{Filename: filename}
	if userID != "" {
		rec.UserID = &userID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
	return nil
}

func (r *fakeRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

// setupHandlers swaps the global collaborators for in-memory fakes.
func setupHandlers(t *testing.T, ledger *fakeLedger) (*memorySessions, *fakeImageStore, *fakeRecorder) {
	t.Helper()

	require.NoError(t, InitTemplates("../../templates"))

	sessions := newMemorySessions()
	prevSessions, prevQuota := services.Sessions, services.Quota
	services.Sessions = sessions
	services.Quota = services.NewGate(ledger)
	t.Cleanup(func() {
		services.Sessions = prevSessions
		services.Quota = prevQuota
	})

	store := newFakeImageStore()
	recorder := &fakeRecorder{}
	InitDetection(store, recorder)
	return sessions, store, recorder
}

// authenticatedRequest seeds an authenticated session and attaches its
// cookie to the request.
func authenticatedRequest(t *testing.T, sessions *memorySessions, r *http.Request) {
	t.Helper()
	sess := &services.Session{Token: "auth-token", UserID: "u1", Username: "alice", Email: "a@x.com"}
	require.NoError(t, sessions.Save(context.Background(), sess))
	r.AddCookie(&http.Cookie{Name: services.SessionCookieName, Value: "auth-token"})
}

// multipartImage builds a multipart body with a single "image" part.
func multipartImage(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}
