package service

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestSessions(t *testing.T, secure bool) *SessionManager {
	t.Helper()
	codec, err := NewTokenCodec(testSecret)
	if err != nil {
		t.Fatalf("NewTokenCodec: %v", err)
	}
	return NewSessionManager(codec, "", secure)
}

func TestSessionCreateSetsCookie(t *testing.T) {
	m := newTestSessions(t, true)
	rec := httptest.NewRecorder()

	if err := m.Create(rec, "admin-1", "admin@example.com"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("got %d cookies, want 1", len(cookies))
	}
	c := cookies[0]
	if c.Name != "admin_session" {
		t.Errorf("Name = %q", c.Name)
	}
	if !c.HttpOnly || !c.Secure || c.SameSite != http.SameSiteLaxMode || c.Path != "/" {
		t.Errorf("cookie attributes = %+v", c)
	}
	if c.MaxAge != int((7 * 24 * time.Hour).Seconds()) {
		t.Errorf("MaxAge = %d, want 604800", c.MaxAge)
	}

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
	claims, ok := m.Current(req)
	if !ok {
		t.Fatal("Current() should accept the issued cookie")
	}
	if claims.AdminID != "admin-1" || claims.Email != "admin@example.com" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestSessionInsecureInDevelopment(t *testing.T) {
	m := newTestSessions(t, false)
	rec := httptest.NewRecorder()
	if err := m.Create(rec, "admin-1", "admin@example.com"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Result().Cookies()[0].Secure {
		t.Error("cookie should not be Secure in development")
	}
}

func TestSessionCurrentRejects(t *testing.T) {
	m := newTestSessions(t, true)

	tests := []struct {
		name   string
		cookie *http.Cookie
	}{
		{"no cookie", nil},
		{"empty", &http.Cookie{Name: "admin_session", Value: ""}},
		{"garbage", &http.Cookie{Name: "admin_session", Value: "abc.def.ghi"}},
		{"other cookie", &http.Cookie{Name: "session", Value: "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			if claims, ok := m.Current(req); ok || claims != nil {
				t.Errorf("Current() = %v, %v; want nil, false", claims, ok)
			}
		})
	}
}

func TestSessionDestroy(t *testing.T) {
	m := newTestSessions(t, true)
	rec := httptest.NewRecorder()
	m.Destroy(rec)

	headers := rec.Result().Header.Values("Set-Cookie")
	if len(headers) != 1 {
		t.Fatalf("got %d Set-Cookie headers, want 1", len(headers))
	}
	h := headers[0]
	for _, want := range []string{"admin_session=", "Max-Age=0", "Expires=Thu, 01 Jan 1970 00:00:00 GMT", "HttpOnly", "Path=/"} {
		if !strings.Contains(h, want) {
			t.Errorf("Set-Cookie %q missing %q", h, want)
		}
	}
}

func TestSessionCustomCookieName(t *testing.T) {
	codec, _ := NewTokenCodec(testSecret)
	m := NewSessionManager(codec, "wd_session", false)
	if m.CookieName() != "wd_session" {
		t.Errorf("CookieName() = %q", m.CookieName())
	}
}
