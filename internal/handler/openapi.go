package handler

import (
	"net/http"

	"github.com/waitdesk/waitdesk/internal/openapi"
)

// OpenAPIHandler serves the OpenAPI document of the admin API.
type OpenAPIHandler struct {
	version    string
	cookieName string
}

// NewOpenAPIHandler creates a new OpenAPIHandler.
func NewOpenAPIHandler(version, cookieName string) *OpenAPIHandler {
	return &OpenAPIHandler{version: version, cookieName: cookieName}
}

// Serve returns the document with the request's own origin as its server.
// GET /openapi.json
func (h *OpenAPIHandler) Serve(w http.ResponseWriter, r *http.Request) {
	doc := openapi.Generate(openapi.Options{
		BaseURL:    requestOrigin(r),
		Version:    h.version,
		CookieName: h.cookieName,
	})
	writeJSON(w, http.StatusOK, doc)
}

func requestOrigin(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
