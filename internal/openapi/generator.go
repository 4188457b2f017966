package openapi

import (
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/waitdesk/waitdesk/internal/query"
	"github.com/waitdesk/waitdesk/internal/service"
)

// SessionScheme names the cookie security scheme protecting admin routes.
const SessionScheme = "sessionCookie"

// Options configures the generated document.
type Options struct {
	BaseURL    string
	Version    string
	CookieName string
}

// Generate builds the OpenAPI 3.1 document for the dashboard admin API.
func Generate(opts Options) *openapi3.T {
	if opts.Version == "" {
		opts.Version = "dev"
	}
	if opts.CookieName == "" {
		opts.CookieName = service.DefaultCookieName
	}

	doc := &openapi3.T{
		OpenAPI: "3.1.0",
		Info: &openapi3.Info{
			Title:       "waitdesk admin API",
			Description: "Session-authenticated API behind the waitlist admin dashboard.",
			Version:     opts.Version,
		},
	}
	if opts.BaseURL != "" {
		doc.Servers = openapi3.Servers{{URL: opts.BaseURL}}
	}

	components := openapi3.NewComponents()
	components.Schemas = componentSchemas()
	components.SecuritySchemes = openapi3.SecuritySchemes{
		SessionScheme: &openapi3.SecuritySchemeRef{
			Value: &openapi3.SecurityScheme{
				Type:        "apiKey",
				In:          "cookie",
				Name:        opts.CookieName,
				Description: "Signed session token set by POST /api/auth/login.",
			},
		},
	}
	doc.Components = &components
	doc.Security = openapi3.SecurityRequirements{{SessionScheme: {}}}

	doc.Paths = openapi3.NewPaths()
	addAuthPaths(doc)
	addAccessPaths(doc)
	addAccountPaths(doc)
	addWaitlistPaths(doc)

	return doc
}

func addAuthPaths(doc *openapi3.T) {
	login := operation("auth", "login", "Sign in with email and password",
		"200", "Signed in; the session cookie is set", ref("LoginResponse"))
	login.Security = &openapi3.SecurityRequirements{}
	login.RequestBody = jsonBody("Credentials", ref("LoginRequest"))
	doc.Paths.Set("/api/auth/login", &openapi3.PathItem{Post: login})

	logout := operation("auth", "logout", "Clear the session cookie",
		"200", "Signed out", ref("MessageResponse"))
	logout.Security = &openapi3.SecurityRequirements{}
	doc.Paths.Set("/api/auth/logout", &openapi3.PathItem{Post: logout})

	doc.Paths.Set("/api/auth/me", &openapi3.PathItem{
		Get: operation("auth", "me", "Current admin profile",
			"200", "Profile of the signed-in admin", ref("MeResponse")),
	})
}

func addAccessPaths(doc *openapi3.T) {
	create := operation("access", "createAdmin", "Grant dashboard access",
		"201", "Created admin", ref("Admin"))
	create.RequestBody = jsonBody("New admin", ref("CreateAdminRequest"))

	doc.Paths.Set("/api/access", &openapi3.PathItem{
		Get: operation("access", "listAdmins", "List admins, newest first",
			"200", "Admins", arrayOf(ref("Admin"))),
		Post: create,
	})

	remove := operation("access", "deleteAdmin", "Revoke an admin's access",
		"200", "Deleted", ref("MessageResponse"))
	remove.Parameters = openapi3.Parameters{idParameter("Admin id")}
	doc.Paths.Set("/api/access/{id}", &openapi3.PathItem{Delete: remove})
}

func addAccountPaths(doc *openapi3.T) {
	update := operation("account", "updateAccount", "Update the signed-in admin",
		"200", "Updated account", ref("AccountResponse"))
	update.Description = "Absent fields are unchanged. Changing the password requires currentPassword."
	update.RequestBody = jsonBody("Fields to change", ref("UpdateAccountRequest"))
	doc.Paths.Set("/api/account", &openapi3.PathItem{Patch: update})
}

func addWaitlistPaths(doc *openapi3.T) {
	list := operation("waitlist", "listWaitlist", "Filtered, sorted page of signups",
		"200", "Page of signups with global statistics", ref("WaitlistListResponse"))
	list.Description = "Malformed page or limit values fall back to their defaults. Statistics ignore the filters."
	list.Parameters = append(listParameters(), filterParameters()...)
	doc.Paths.Set("/api/dashboard/waitlist", &openapi3.PathItem{Get: list})

	get := operation("waitlist", "getWaitlistEntry", "Single signup",
		"200", "Signup", ref("WaitlistEntry"))
	get.Parameters = openapi3.Parameters{idParameter("Waitlist entry id")}
	doc.Paths.Set("/api/dashboard/waitlist/{id}", &openapi3.PathItem{Get: get})

	export := operation("waitlist", "exportWaitlist", "Download signups matching filters",
		"200", "Attachment named waitlist-export-<date>.<format>", arrayOf(ref("WaitlistEntry")))
	export.RequestBody = jsonBody("Format and filters", ref("ExportRequest"))
	csvDesc := "Attachment named waitlist-export-<date>.<format>"
	export.Responses.Set("200", &openapi3.ResponseRef{
		Value: &openapi3.Response{
			Description: &csvDesc,
			Content: openapi3.Content{
				"application/json": &openapi3.MediaType{Schema: arrayOf(ref("WaitlistEntry"))},
				"text/csv":         &openapi3.MediaType{Schema: &openapi3.SchemaRef{Value: openapi3.NewStringSchema()}},
			},
		},
	})
	doc.Paths.Set("/api/dashboard/export", &openapi3.PathItem{Post: export})
}

// ─── Operation Builders ─────────────────────────────────────────────────────

// operation builds an operation with one success response and the standard
// error responses.
func operation(tag, id, summary, status, description string, schema *openapi3.SchemaRef) *openapi3.Operation {
	return &openapi3.Operation{
		Tags:        []string{tag},
		Summary:     summary,
		OperationID: id,
		Responses:   newResponses(status, description, schema),
	}
}

func jsonBody(description string, schema *openapi3.SchemaRef) *openapi3.RequestBodyRef {
	return &openapi3.RequestBodyRef{
		Value: openapi3.NewRequestBody().
			WithDescription(description).
			WithRequired(true).
			WithJSONSchemaRef(schema),
	}
}

func idParameter(description string) *openapi3.ParameterRef {
	return &openapi3.ParameterRef{
		Value: openapi3.NewPathParameter("id").
			WithDescription(description).
			WithSchema(openapi3.NewStringSchema()),
	}
}

// listParameters returns the paging and sorting query parameters.
func listParameters() openapi3.Parameters {
	limits := make([]any, len(query.LimitPresets))
	for i, l := range query.LimitPresets {
		limits[i] = l
	}
	fields := make([]any, 0)
	for _, f := range query.SortableFields() {
		fields = append(fields, f)
	}

	return openapi3.Parameters{
		&openapi3.ParameterRef{
			Value: openapi3.NewQueryParameter("page").
				WithDescription("1-based page number.").
				WithSchema(openapi3.NewInt32Schema().WithMin(1).WithDefault(query.DefaultPage)),
		},
		&openapi3.ParameterRef{
			Value: openapi3.NewQueryParameter("limit").
				WithDescription("Page size, at most " + strconv.Itoa(query.MaxLimit) + ". The dashboard offers 10, 25, 50 and 100.").
				WithSchema(openapi3.NewInt32Schema().WithMin(1).WithMax(query.MaxLimit).WithDefault(query.DefaultLimit)),
		},
		&openapi3.ParameterRef{
			Value: openapi3.NewQueryParameter("sortBy").
				WithDescription("Field to sort by. Ties are broken by id.").
				WithSchema(openapi3.NewStringSchema().WithEnum(fields...).WithDefault(query.DefaultSortField)),
		},
		&openapi3.ParameterRef{
			Value: openapi3.NewQueryParameter("sortOrder").
				WithSchema(openapi3.NewStringSchema().WithEnum("asc", "desc").WithDefault("desc")),
		},
	}
}

// filterParameters returns the filter query parameters shared by list and
// export. "all" means no restriction for every enumerated filter.
func filterParameters() openapi3.Parameters {
	return openapi3.Parameters{
		&openapi3.ParameterRef{
			Value: openapi3.NewQueryParameter("search").
				WithDescription("Substring of the email address.").
				WithSchema(openapi3.NewStringSchema()),
		},
		&openapi3.ParameterRef{
			Value: openapi3.NewQueryParameter("tier").
				WithSchema(openapi3.NewInt32Schema().WithMin(1)),
		},
		&openapi3.ParameterRef{
			Value: openapi3.NewQueryParameter("currentApp").
				WithSchema(filterEnum(currentAppValues())),
		},
		&openapi3.ParameterRef{
			Value: openapi3.NewQueryParameter("sendToCountry").
				WithSchema(filterEnum(sendToCountryValues())),
		},
		&openapi3.ParameterRef{
			Value: openapi3.NewQueryParameter("researchFollowUp").
				WithSchema(filterEnum(researchFollowUpValues())),
		},
		&openapi3.ParameterRef{
			Value: openapi3.NewQueryParameter("dateFrom").
				WithDescription("Inclusive lower bound on createdAt: YYYY-MM-DD in the dashboard time zone, or RFC 3339.").
				WithSchema(openapi3.NewStringSchema()),
		},
		&openapi3.ParameterRef{
			Value: openapi3.NewQueryParameter("dateTo").
				WithDescription("Inclusive upper bound on createdAt, extended to 23:59:59.999 of its day.").
				WithSchema(openapi3.NewStringSchema()),
		},
	}
}

func filterEnum(values []any) *openapi3.Schema {
	return openapi3.NewStringSchema().WithEnum(append([]any{query.AllSentinel}, values...)...)
}

// ─── Response Helpers ───────────────────────────────────────────────────────

// newResponses builds a Responses map with a success response and standard error responses.
func newResponses(statusCode, description string, schema *openapi3.SchemaRef) *openapi3.Responses {
	responses := openapi3.NewResponses(openapi3.WithName(statusCode, &openapi3.Response{
		Description: &description,
		Content:     openapi3.NewContentWithJSONSchemaRef(schema),
	}))

	errorRef := ref("ErrorResponse")
	for _, e := range []struct{ code, desc string }{
		{"400", "Bad request"},
		{"401", "Unauthorized"},
		{"404", "Not found"},
		{"500", "Internal server error"},
	} {
		desc := e.desc
		responses.Set(e.code, &openapi3.ResponseRef{
			Value: &openapi3.Response{
				Description: &desc,
				Content:     openapi3.NewContentWithJSONSchemaRef(errorRef),
			},
		})
	}
	return responses
}

func ref(name string) *openapi3.SchemaRef {
	return openapi3.NewSchemaRef("#/components/schemas/"+name, nil)
}

func arrayOf(items *openapi3.SchemaRef) *openapi3.SchemaRef {
	return &openapi3.SchemaRef{
		Value: &openapi3.Schema{
			Type:  &openapi3.Types{"array"},
			Items: items,
		},
	}
}
