// Package service holds the dashboard's stateless authentication pieces and
// the waitlist query service that the HTTP handlers and MCP tools share.
package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTTL is the lifetime of a session token and its cookie.
const SessionTTL = 7 * 24 * time.Hour

const tokenIssuer = "waitdesk"

var (
	// ErrInvalidToken is returned for every token that fails verification:
	// bad signature, wrong algorithm, expired, or malformed.
	ErrInvalidToken = errors.New("invalid session token")

	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Claims is the payload of a session token.
type Claims struct {
	AdminID string `json:"adminId"`
	Email   string `json:"email"`
	jwt.RegisteredClaims
}

// TokenCodec issues and verifies HS256 session tokens.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// TokenOption configures a TokenCodec.
type TokenOption func(*TokenCodec)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) TokenOption {
	return func(c *TokenCodec) { c.now = now }
}

// WithTTL overrides SessionTTL.
func WithTTL(ttl time.Duration) TokenOption {
	return func(c *TokenCodec) { c.ttl = ttl }
}

// NewTokenCodec returns a codec signing with secret.
func NewTokenCodec(secret string, opts ...TokenOption) (*TokenCodec, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	c := &TokenCodec{secret: []byte(secret), ttl: SessionTTL, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// TTL returns the token lifetime.
func (c *TokenCodec) TTL() time.Duration { return c.ttl }

// Issue creates a signed token for the admin, valid for the codec's TTL.
func (c *TokenCodec) Issue(adminID, email string) (string, error) {
	now := c.now()
	claims := Claims{
		AdminID: adminID,
		Email:   email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm, issuer and expiry. Any failure is
// reported as ErrInvalidToken.
func (c *TokenCodec) Verify(tokenStr string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(c.now),
		jwt.WithStrictDecoding(),
	)

	claims := &Claims{}
	token, err := parser.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
		return c.secret, nil
	})
	if err != nil || !token.Valid || claims.AdminID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
