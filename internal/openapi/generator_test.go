package openapi

import (
	"encoding/json"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/waitdesk/waitdesk/internal/model"
	"github.com/waitdesk/waitdesk/internal/query"
)

func TestGenerate_Info(t *testing.T) {
	doc := Generate(Options{BaseURL: "http://localhost:8080", Version: "1.2.3"})

	if doc.OpenAPI != "3.1.0" {
		t.Errorf("OpenAPI version = %q, want %q", doc.OpenAPI, "3.1.0")
	}
	if doc.Info == nil {
		t.Fatal("Info is nil")
	}
	if doc.Info.Version != "1.2.3" {
		t.Errorf("Info.Version = %q, want %q", doc.Info.Version, "1.2.3")
	}
	if len(doc.Servers) != 1 || doc.Servers[0].URL != "http://localhost:8080" {
		t.Errorf("Servers not set correctly")
	}
}

func TestGenerate_Defaults(t *testing.T) {
	doc := Generate(Options{})

	if doc.Info.Version != "dev" {
		t.Errorf("Info.Version = %q, want %q", doc.Info.Version, "dev")
	}
	if len(doc.Servers) != 0 {
		t.Errorf("Servers = %v, want none", doc.Servers)
	}
	scheme := doc.Components.SecuritySchemes[SessionScheme]
	if scheme == nil {
		t.Fatal("session security scheme not found")
	}
	if scheme.Value.Name != "admin_session" {
		t.Errorf("cookie name = %q, want %q", scheme.Value.Name, "admin_session")
	}
}

func TestGenerate_SessionScheme(t *testing.T) {
	doc := Generate(Options{CookieName: "sid"})

	scheme := doc.Components.SecuritySchemes[SessionScheme]
	if scheme == nil {
		t.Fatal("session security scheme not found")
	}
	if scheme.Value.Type != "apiKey" || scheme.Value.In != "cookie" || scheme.Value.Name != "sid" {
		t.Errorf("scheme = %+v, want apiKey in cookie named sid", scheme.Value)
	}
	if len(doc.Security) != 1 {
		t.Errorf("Security requirements count = %d, want 1", len(doc.Security))
	}
}

func TestGenerate_Paths(t *testing.T) {
	doc := Generate(Options{})

	tests := []struct {
		path   string
		method string
	}{
		{"/api/auth/login", "POST"},
		{"/api/auth/logout", "POST"},
		{"/api/auth/me", "GET"},
		{"/api/access", "GET"},
		{"/api/access", "POST"},
		{"/api/access/{id}", "DELETE"},
		{"/api/account", "PATCH"},
		{"/api/dashboard/waitlist", "GET"},
		{"/api/dashboard/waitlist/{id}", "GET"},
		{"/api/dashboard/export", "POST"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			item := doc.Paths.Value(tt.path)
			if item == nil {
				t.Fatalf("path %s not found", tt.path)
			}
			if item.GetOperation(tt.method) == nil {
				t.Errorf("%s %s has no operation", tt.method, tt.path)
			}
		})
	}

	if got := doc.Paths.Len(); got != 8 {
		t.Errorf("path count = %d, want 8", got)
	}
}

func TestGenerate_PublicOperations(t *testing.T) {
	doc := Generate(Options{})

	for _, path := range []string{"/api/auth/login", "/api/auth/logout"} {
		op := doc.Paths.Value(path).Post
		if op.Security == nil || len(*op.Security) != 0 {
			t.Errorf("%s should override security with an empty requirement list", path)
		}
	}

	me := doc.Paths.Value("/api/auth/me").Get
	if me.Security != nil {
		t.Error("/api/auth/me should inherit the document security requirement")
	}
}

func TestGenerate_ErrorResponses(t *testing.T) {
	doc := Generate(Options{})

	op := doc.Paths.Value("/api/access").Post
	for _, code := range []string{"201", "400", "401", "404", "500"} {
		if op.Responses.Value(code) == nil {
			t.Errorf("createAdmin missing %s response", code)
		}
	}
	if _, ok := doc.Components.Schemas["ErrorResponse"]; !ok {
		t.Error("ErrorResponse schema not found")
	}
}

func TestGenerate_WaitlistListParameters(t *testing.T) {
	doc := Generate(Options{})
	op := doc.Paths.Value("/api/dashboard/waitlist").Get

	params := map[string]*openapi3.Parameter{}
	for _, p := range op.Parameters {
		params[p.Value.Name] = p.Value
	}

	for _, name := range []string{
		"page", "limit", "sortBy", "sortOrder",
		"search", "tier", "currentApp", "sendToCountry", "researchFollowUp", "dateFrom", "dateTo",
	} {
		if params[name] == nil {
			t.Errorf("parameter %q not found", name)
		}
	}

	limit := params["limit"].Schema.Value
	if limit.Max == nil || *limit.Max != query.MaxLimit {
		t.Errorf("limit max = %v, want %d", limit.Max, query.MaxLimit)
	}

	apps := params["currentApp"].Schema.Value.Enum
	if len(apps) != len(model.CurrentApps())+1 {
		t.Fatalf("currentApp enum has %d values, want %d", len(apps), len(model.CurrentApps())+1)
	}
	if apps[0] != query.AllSentinel {
		t.Errorf("currentApp enum[0] = %v, want %q", apps[0], query.AllSentinel)
	}
}

func TestGenerate_WaitlistEntrySchema(t *testing.T) {
	doc := Generate(Options{})

	ref, ok := doc.Components.Schemas["WaitlistEntry"]
	if !ok {
		t.Fatal("WaitlistEntry schema not found")
	}
	s := ref.Value
	if len(s.Properties) != 22 {
		t.Errorf("WaitlistEntry has %d properties, want 22", len(s.Properties))
	}
	app := s.Properties["currentApp"].Value
	if !app.Nullable {
		t.Error("currentApp should be nullable")
	}
	if len(app.Enum) != len(model.CurrentApps()) {
		t.Errorf("currentApp enum has %d values, want %d", len(app.Enum), len(model.CurrentApps()))
	}
	if s.Properties["createdAt"].Value.Format != "date-time" {
		t.Errorf("createdAt format = %q, want date-time", s.Properties["createdAt"].Value.Format)
	}
}

func TestGenerate_ExportContentTypes(t *testing.T) {
	doc := Generate(Options{})

	resp := doc.Paths.Value("/api/dashboard/export").Post.Responses.Value("200")
	if resp == nil {
		t.Fatal("export 200 response not found")
	}
	for _, ct := range []string{"application/json", "text/csv"} {
		if resp.Value.Content.Get(ct) == nil {
			t.Errorf("export response missing %s content", ct)
		}
	}
}

func TestGenerate_MarshalJSON(t *testing.T) {
	doc := Generate(Options{Version: "1.0.0"})

	b, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}

	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if m["openapi"] != "3.1.0" {
		t.Errorf("openapi = %v, want 3.1.0", m["openapi"])
	}
	paths, ok := m["paths"].(map[string]interface{})
	if !ok {
		t.Fatal("paths missing from JSON")
	}
	if _, ok := paths["/api/dashboard/waitlist"]; !ok {
		t.Error("waitlist path missing from JSON")
	}
}
