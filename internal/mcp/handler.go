package mcp

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/waitdesk/waitdesk/internal/query"
)

// queryArguments are the tool arguments understood by query.ParseWaitlistQuery.
var queryArguments = []string{
	"search", "tier", "currentApp", "sendToCountry", "researchFollowUp",
	"dateFrom", "dateTo", "sortBy", "sortOrder", "page", "limit",
}

// requireString extracts a required string argument from the tool request.
func requireString(request mcp.CallToolRequest, key string) (string, error) {
	val, err := request.RequireString(key)
	if err != nil || val == "" {
		return "", fmt.Errorf("missing required parameter %q", key)
	}
	return val, nil
}

// queryValues turns the tool arguments into dashboard query parameters.
// Unknown arguments are dropped.
func queryValues(request mcp.CallToolRequest) url.Values {
	all := query.ValuesFromMap(request.GetArguments())
	v := url.Values{}
	for _, key := range queryArguments {
		if s := all.Get(key); s != "" {
			v.Set(key, s)
		}
	}
	return v
}

// successJSON marshals data to JSON and returns it as a tool result.
func successJSON(data interface{}) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return mcp.NewToolResultText(string(b)), nil
}

// toolError returns a tool-level error result. Errors returned this way are
// visible to the model so it can correct itself; they do not end the
// session.
func toolError(format string, args ...interface{}) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(fmt.Sprintf(format, args...)), nil
}

func strs[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
