package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/waitdesk/waitdesk/internal/model"
	"github.com/waitdesk/waitdesk/internal/server/middleware"
	"github.com/waitdesk/waitdesk/internal/service"
	"github.com/waitdesk/waitdesk/internal/store"
)

const (
	testJWTSecret = "test-secret-for-handler-tests"
	testPassword  = "supersecretpassword"
)

var testNow = time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)

// testEnv holds shared state for handler integration tests.
type testEnv struct {
	store    *store.Store
	sessions *service.SessionManager
	admins   *AdminHandler
	waitlist *WaitlistHandler
	router   chi.Router
}

// newTestEnv creates a fresh test environment with an in-memory store and a
// Chi router mounting every API route the way the server does.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := store.OpenMemory(context.Background())
	if err != nil {
		t.Fatalf("store.OpenMemory: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	codec, err := service.NewTokenCodec(testJWTSecret)
	if err != nil {
		t.Fatalf("NewTokenCodec: %v", err)
	}
	sessions := service.NewSessionManager(codec, "", false)

	opts := Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	adminHandler := NewAdminHandler(st, sessions, opts)

	svc := service.NewWaitlistService(st)
	svc.SetClock(func() time.Time { return testNow })
	waitlistHandler := NewWaitlistHandler(svc, time.UTC, opts)
	waitlistHandler.SetClock(func() time.Time { return testNow })

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", adminHandler.Login)
		r.Post("/auth/logout", adminHandler.Logout)
		r.Get("/auth/me", adminHandler.Me)
		r.Patch("/account", adminHandler.UpdateAccount)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession(sessions))
			r.Get("/access", adminHandler.ListAdmins)
			r.Post("/access", adminHandler.CreateAdmin)
			r.Delete("/access/{id}", adminHandler.DeleteAdmin)

			r.Get("/dashboard/waitlist", waitlistHandler.List)
			r.Get("/dashboard/waitlist/{id}", waitlistHandler.Get)
			r.Post("/dashboard/export", waitlistHandler.Export)
		})
	})

	return &testEnv{
		store:    st,
		sessions: sessions,
		admins:   adminHandler,
		waitlist: waitlistHandler,
		router:   r,
	}
}

// seedAdmin creates an admin account with testPassword and returns it.
func (e *testEnv) seedAdmin(t *testing.T, name, email string) *model.Admin {
	t.Helper()
	hash, err := service.HashPassword(testPassword)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	admin := &model.Admin{Name: name, Email: email, PasswordHash: hash}
	if err := e.store.CreateAdmin(context.Background(), admin); err != nil {
		t.Fatalf("seedAdmin: %v", err)
	}
	return admin
}

// sessionCookie returns a valid session cookie for admin.
func (e *testEnv) sessionCookie(t *testing.T, admin *model.Admin) *http.Cookie {
	t.Helper()
	token, err := e.sessions.Codec().Issue(admin.ID, admin.Email)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	return &http.Cookie{Name: e.sessions.CookieName(), Value: token}
}

// do executes an HTTP request against the test router and returns the recorder.
func (e *testEnv) do(t *testing.T, method, path string, body io.Reader, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func toJSON(t *testing.T, v interface{}) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(v); err != nil {
		t.Fatalf("toJSON: %v", err)
	}
	return buf
}

func assertStatus(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rr.Code != want {
		t.Errorf("status = %d, want %d; body = %s", rr.Code, want, rr.Body.String())
	}
}

func decodeJSON(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(rr.Body).Decode(v); err != nil {
		t.Fatalf("decodeJSON: %v; body = %s", err, rr.Body.String())
	}
}

// assertError checks the status and the error envelope's message.
func assertError(t *testing.T, rr *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	assertStatus(t, rr, status)
	var resp model.ErrorResponse
	decodeJSON(t, rr, &resp)
	if resp.Error.Code != status {
		t.Errorf("error.code = %d, want %d", resp.Error.Code, status)
	}
	if resp.Error.Message != message {
		t.Errorf("error.message = %q, want %q", resp.Error.Message, message)
	}
}

// responseCookie returns the named cookie set by the response, or nil.
func responseCookie(rr *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
