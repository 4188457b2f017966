package openapi

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/waitdesk/waitdesk/internal/model"
	"github.com/waitdesk/waitdesk/internal/service"
)

// componentSchemas returns every named schema the paths refer to.
func componentSchemas() openapi3.Schemas {
	schemas := openapi3.Schemas{}
	add := func(name string, s *openapi3.Schema) {
		schemas[name] = &openapi3.SchemaRef{Value: s}
	}

	add("ErrorResponse", openapi3.NewObjectSchema().
		WithProperty("error", openapi3.NewObjectSchema().
			WithProperty("code", openapi3.NewInt32Schema()).
			WithProperty("message", openapi3.NewStringSchema()).
			WithProperty("context", openapi3.NewObjectSchema())))

	add("MessageResponse", openapi3.NewObjectSchema().
		WithProperty("success", openapi3.NewBoolSchema()).
		WithProperty("message", openapi3.NewStringSchema()))

	profile := openapi3.NewObjectSchema().
		WithProperty("id", openapi3.NewStringSchema()).
		WithProperty("name", openapi3.NewStringSchema()).
		WithProperty("email", openapi3.NewStringSchema().WithFormat("email")).
		WithProperty("role", openapi3.NewStringSchema().WithEnum(model.RoleAdmin))
	add("AdminProfile", profile)

	add("Admin", openapi3.NewObjectSchema().
		WithProperty("id", openapi3.NewStringSchema()).
		WithProperty("name", openapi3.NewStringSchema()).
		WithProperty("email", openapi3.NewStringSchema().WithFormat("email")).
		WithProperty("role", openapi3.NewStringSchema().WithEnum(model.RoleAdmin)).
		WithProperty("createdAt", openapi3.NewDateTimeSchema()).
		WithProperty("updatedAt", openapi3.NewDateTimeSchema()))

	add("LoginRequest", withRequired(openapi3.NewObjectSchema().
		WithProperty("email", openapi3.NewStringSchema()).
		WithProperty("password", openapi3.NewStringSchema().WithFormat("password")),
		"email", "password"))

	add("LoginResponse", openapi3.NewObjectSchema().
		WithPropertyRef("admin", ref("Admin")).
		WithProperty("message", openapi3.NewStringSchema()))

	add("MeResponse", openapi3.NewObjectSchema().
		WithPropertyRef("admin", ref("AdminProfile")))

	add("CreateAdminRequest", withRequired(openapi3.NewObjectSchema().
		WithProperty("name", openapi3.NewStringSchema()).
		WithProperty("email", openapi3.NewStringSchema().WithFormat("email")).
		WithProperty("password", openapi3.NewStringSchema().WithFormat("password").WithMinLength(service.MinPasswordLength)),
		"name", "email", "password"))

	add("UpdateAccountRequest", openapi3.NewObjectSchema().
		WithProperty("name", openapi3.NewStringSchema()).
		WithProperty("email", openapi3.NewStringSchema().WithFormat("email")).
		WithProperty("currentPassword", openapi3.NewStringSchema().WithFormat("password")).
		WithProperty("newPassword", openapi3.NewStringSchema().WithFormat("password").WithMinLength(service.MinPasswordLength)))

	add("AccountResponse", openapi3.NewObjectSchema().
		WithPropertyRef("admin", ref("Admin")).
		WithProperty("message", openapi3.NewStringSchema()))

	add("WaitlistEntry", waitlistEntrySchema())

	add("Pagination", openapi3.NewObjectSchema().
		WithProperty("page", openapi3.NewInt32Schema()).
		WithProperty("limit", openapi3.NewInt32Schema()).
		WithProperty("total", openapi3.NewInt64Schema()).
		WithProperty("totalPages", openapi3.NewInt32Schema()))

	add("WaitlistStats", openapi3.NewObjectSchema().
		WithProperty("total", openapi3.NewInt64Schema()).
		WithProperty("tier1", openapi3.NewInt64Schema()).
		WithProperty("tier2", openapi3.NewInt64Schema()).
		WithProperty("tier3", openapi3.NewInt64Schema()).
		WithProperty("recent24h", openapi3.NewInt64Schema()))

	add("WaitlistListResponse", openapi3.NewObjectSchema().
		WithPropertyRef("data", arrayOf(ref("WaitlistEntry"))).
		WithPropertyRef("pagination", ref("Pagination")).
		WithPropertyRef("stats", ref("WaitlistStats")))

	add("ExportRequest", openapi3.NewObjectSchema().
		WithProperty("format", openapi3.NewStringSchema().WithEnum("csv", "json").WithDefault("csv")).
		WithProperty("filters", openapi3.NewObjectSchema()))

	return schemas
}

// waitlistEntrySchema describes model.WaitlistEntry. Categorical fields are
// nullable closed sets.
func waitlistEntrySchema() *openapi3.Schema {
	nullableString := func() *openapi3.Schema { return openapi3.NewStringSchema().WithNullable() }
	nullableEnum := func(values []any) *openapi3.Schema {
		return openapi3.NewStringSchema().WithEnum(values...).WithNullable()
	}

	s := openapi3.NewObjectSchema().
		WithProperty("id", openapi3.NewStringSchema()).
		WithProperty("email", openapi3.NewStringSchema().WithFormat("email")).
		WithProperty("tier", openapi3.NewInt32Schema().WithMin(1)).
		WithProperty("currentApp", nullableEnum(currentAppValues())).
		WithProperty("currentAppOther", nullableString()).
		WithProperty("sendToCountry", nullableEnum(sendToCountryValues())).
		WithProperty("sendToCountryOther", nullableString()).
		WithProperty("frequency", nullableEnum(enumValues(model.Frequencies()))).
		WithProperty("biggestFrustration", nullableEnum(enumValues(model.BiggestFrustrations()))).
		WithProperty("biggestFrustrationOther", nullableString()).
		WithProperty("oneThingToChange", nullableString()).
		WithProperty("investingStatus", nullableEnum(enumValues(model.InvestingStatuses()))).
		WithProperty("desiredFeature", nullableEnum(enumValues(model.DesiredFeatures()))).
		WithProperty("desiredFeatureOther", nullableString()).
		WithProperty("perfectAppDesign", nullableString()).
		WithProperty("researchFollowUp", nullableEnum(researchFollowUpValues())).
		WithProperty("preferredContactMethod", nullableEnum(enumValues(model.PreferredContactMethods()))).
		WithProperty("whatsappNumber", nullableString()).
		WithProperty("inviteCount", openapi3.NewInt32Schema()).
		WithProperty("emailSent", openapi3.NewBoolSchema()).
		WithProperty("createdAt", openapi3.NewDateTimeSchema()).
		WithProperty("updatedAt", openapi3.NewDateTimeSchema())
	return withRequired(s, "id", "email", "tier", "createdAt", "updatedAt")
}

func currentAppValues() []any       { return enumValues(model.CurrentApps()) }
func sendToCountryValues() []any    { return enumValues(model.SendToCountries()) }
func researchFollowUpValues() []any { return enumValues(model.ResearchFollowUps()) }

func enumValues[T ~string](values []T) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

func withRequired(s *openapi3.Schema, fields ...string) *openapi3.Schema {
	s.Required = fields
	return s
}
