package service

import (
	"net/http"
	"time"
)

// DefaultCookieName is the session cookie the dashboard sets.
const DefaultCookieName = "admin_session"

// SessionManager stores session tokens in an HTTP-only cookie. It keeps no
// server-side state: logging out clears the cookie, and a copied token stays
// valid until it expires.
type SessionManager struct {
	codec  *TokenCodec
	name   string
	secure bool
}

// NewSessionManager returns a manager writing cookieName (DefaultCookieName
// when empty). secure should be false only for local development over HTTP.
func NewSessionManager(codec *TokenCodec, cookieName string, secure bool) *SessionManager {
	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	return &SessionManager{codec: codec, name: cookieName, secure: secure}
}

// CookieName returns the session cookie name.
func (m *SessionManager) CookieName() string { return m.name }

// Codec returns the token codec backing the sessions.
func (m *SessionManager) Codec() *TokenCodec { return m.codec }

// Create issues a token for the admin and sets it as the session cookie.
func (m *SessionManager) Create(w http.ResponseWriter, adminID, email string) error {
	token, err := m.codec.Issue(adminID, email)
	if err != nil {
		return err
	}
	http.SetCookie(w, m.cookie(token, int(m.codec.TTL()/time.Second)))
	return nil
}

// Current returns the claims of the request's session, if it carries a
// valid one.
func (m *SessionManager) Current(r *http.Request) (*Claims, bool) {
	c, err := r.Cookie(m.name)
	if err != nil || c.Value == "" {
		return nil, false
	}
	claims, err := m.codec.Verify(c.Value)
	if err != nil {
		return nil, false
	}
	return claims, true
}

// Destroy expires the session cookie.
func (m *SessionManager) Destroy(w http.ResponseWriter) {
	c := m.cookie("", -1)
	c.Expires = time.Unix(0, 0)
	http.SetCookie(w, c)
}

func (m *SessionManager) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     m.name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
