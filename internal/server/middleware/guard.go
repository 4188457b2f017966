package middleware

import (
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/waitdesk/waitdesk/internal/service"
)

// Page routes the guard redirects between.
const (
	LoginPath = "/login"
	HomePath  = "/dashboard"
)

// publicPages are reachable without a session.
var publicPages = map[string]bool{
	LoginPath: true,
}

// unguardedPrefixes are served by layers that authorize each request
// themselves, or need no authorization at all.
var unguardedPrefixes = []string{"/api/", "/assets/"}

var unguardedPaths = map[string]bool{
	"/api":          true,
	"/favicon.ico":  true,
	"/healthz":      true,
	"/readyz":       true,
	"/openapi.json": true,
}

var imageExtensions = map[string]bool{
	".svg": true, ".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true, ".ico": true,
}

// Guard returns an HTTP middleware protecting dashboard pages. A request for
// a protected page without a valid session is redirected to the login page
// with the original path in the redirect parameter; a signed-in request for
// the login page is redirected to HomePath. API, asset and image routes pass
// through untouched. The guard only reads the session cookie.
func Guard(sessions *service.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := r.URL.Path
			if !Guarded(p) {
				next.ServeHTTP(w, r)
				return
			}

			_, signedIn := sessions.Current(r)
			switch {
			case publicPages[p] && signedIn:
				http.Redirect(w, r, HomePath, http.StatusTemporaryRedirect)
			case publicPages[p] || signedIn:
				next.ServeHTTP(w, r)
			default:
				http.Redirect(w, r, LoginRedirect(p), http.StatusTemporaryRedirect)
			}
		})
	}
}

// Guarded reports whether the guard intercepts requests for p.
func Guarded(p string) bool {
	if unguardedPaths[p] {
		return false
	}
	for _, prefix := range unguardedPrefixes {
		if strings.HasPrefix(p, prefix) {
			return false
		}
	}
	return !imageExtensions[strings.ToLower(path.Ext(p))]
}

// LoginRedirect returns the login URL that sends the user back to target
// after signing in.
func LoginRedirect(target string) string {
	return LoginPath + "?" + url.Values{"redirect": {target}}.Encode()
}
