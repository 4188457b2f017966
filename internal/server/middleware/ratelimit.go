package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	"github.com/waitdesk/waitdesk/internal/service"
)

// RateLimit returns an HTTP middleware that limits requests per IP address
// to the specified number per minute. Uses a sliding window algorithm.
func RateLimit(requestsPerMinute int) func(http.Handler) http.Handler {
	return httprate.LimitByIP(requestsPerMinute, time.Minute)
}

// RateLimitBySession limits requests per signed-in admin. Requests without
// a session share their client IP's budget.
func RateLimitBySession(sessions *service.SessionManager, requestsPerMinute int) func(http.Handler) http.Handler {
	return httprate.Limit(
		requestsPerMinute,
		time.Minute,
		httprate.WithKeyFuncs(func(r *http.Request) (string, error) {
			if claims, ok := sessions.Current(r); ok {
				return "admin:" + claims.AdminID, nil
			}
			return httprate.KeyByIP(r)
		}),
	)
}
