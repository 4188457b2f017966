package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/waitdesk/waitdesk/internal/model"
	"github.com/waitdesk/waitdesk/internal/query"
)

const (
	enumsURI         = "waitdesk://enums"
	entryURIPrefix   = "waitdesk://waitlist/"
	entryURITemplate = entryURIPrefix + "{id}"
)

// registerResources adds the read-only resources clients can load into
// their context.
func (s *MCPServer) registerResources(srv *server.MCPServer) {
	srv.AddResource(
		mcp.NewResource(
			enumsURI,
			"Waitlist Vocabulary",
			mcp.WithResourceDescription(
				"Allowed values of every survey answer, the sortable fields and "+
					"the page size presets.",
			),
			mcp.WithMIMEType("application/json"),
		),
		s.handleEnumsResource,
	)

	srv.AddResourceTemplate(
		mcp.NewResourceTemplate(
			entryURITemplate,
			"Waitlist Entry",
			mcp.WithTemplateDescription("A single waitlist signup."),
			mcp.WithTemplateMIMEType("application/json"),
		),
		s.handleEntryResource,
	)
}

// vocabulary is the payload of the enums resource.
type vocabulary struct {
	CurrentApp             []string `json:"currentApp"`
	SendToCountry          []string `json:"sendToCountry"`
	Frequency              []string `json:"frequency"`
	BiggestFrustration     []string `json:"biggestFrustration"`
	InvestingStatus        []string `json:"investingStatus"`
	DesiredFeature         []string `json:"desiredFeature"`
	ResearchFollowUp       []string `json:"researchFollowUp"`
	PreferredContactMethod []string `json:"preferredContactMethod"`
	SortableFields         []string `json:"sortableFields"`
	LimitPresets           []int    `json:"limitPresets"`
	MaxLimit               int      `json:"maxLimit"`
}

func newVocabulary() vocabulary {
	return vocabulary{
		CurrentApp:             strs(model.CurrentApps()),
		SendToCountry:          strs(model.SendToCountries()),
		Frequency:              strs(model.Frequencies()),
		BiggestFrustration:     strs(model.BiggestFrustrations()),
		InvestingStatus:        strs(model.InvestingStatuses()),
		DesiredFeature:         strs(model.DesiredFeatures()),
		ResearchFollowUp:       strs(model.ResearchFollowUps()),
		PreferredContactMethod: strs(model.PreferredContactMethods()),
		SortableFields:         query.SortableFields(),
		LimitPresets:           append([]int(nil), query.LimitPresets...),
		MaxLimit:               query.MaxLimit,
	}
}

func (s *MCPServer) handleEnumsResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(enumsURI, newVocabulary())
}

func (s *MCPServer) handleEntryResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := request.Params.URI
	id := strings.TrimPrefix(uri, entryURIPrefix)
	if id == "" || id == uri {
		return nil, fmt.Errorf("invalid entry URI %q: expected %s", uri, entryURITemplate)
	}
	entry, err := s.waitlist.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("waitlist entry %q: %w", id, err)
	}
	return jsonResource(uri, entry)
}

func jsonResource(uri string, v interface{}) ([]mcp.ResourceContents, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", uri, err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(b),
		},
	}, nil
}
