package mcp

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/waitdesk/waitdesk/internal/model"
	"github.com/waitdesk/waitdesk/internal/query"
	"github.com/waitdesk/waitdesk/internal/store"
)

// registerTools registers the waitlist tools on the given server.
func (s *MCPServer) registerTools(srv *server.MCPServer) {
	srv.AddTool(
		mcp.NewTool("waitlist_stats",
			mcp.WithDescription(
				"Summary counts over the whole waitlist: total signups, signups per "+
					"tier, and signups in the last 24 hours.",
			),
			mcp.WithToolAnnotation(readOnlyAnnotation()),
		),
		s.handleStats,
	)

	srv.AddTool(
		mcp.NewTool("waitlist_query",
			mcp.WithDescription(
				"List waitlist signups with optional filters, sorting and pagination. "+
					"Returns one page of entries, the pagination block, and the global "+
					"statistics. Filters combine with AND; \"all\" or an empty value "+
					"disables a filter.",
			),
			mcp.WithToolAnnotation(readOnlyAnnotation()),
			mcp.WithString("search",
				mcp.Description("Substring of the email address"),
			),
			mcp.WithNumber("tier",
				mcp.Description("Signup tier"),
				mcp.Min(1),
			),
			mcp.WithString("currentApp",
				mcp.Description("Remittance app the signup uses today"),
				mcp.Enum(strs(model.CurrentApps())...),
			),
			mcp.WithString("sendToCountry",
				mcp.Description("Country the signup sends money to"),
				mcp.Enum(strs(model.SendToCountries())...),
			),
			mcp.WithString("researchFollowUp",
				mcp.Description("Willingness to join user research"),
				mcp.Enum(strs(model.ResearchFollowUps())...),
			),
			mcp.WithString("dateFrom",
				mcp.Description("Earliest signup date, YYYY-MM-DD or RFC 3339"),
			),
			mcp.WithString("dateTo",
				mcp.Description("Latest signup date, inclusive of the whole day"),
			),
			mcp.WithString("sortBy",
				mcp.Description("Field to sort by (default createdAt)"),
				mcp.Enum(query.SortableFields()...),
			),
			mcp.WithString("sortOrder",
				mcp.Description("Sort direction (default desc)"),
				mcp.Enum("asc", "desc"),
			),
			mcp.WithNumber("page",
				mcp.Description("1-based page number"),
				mcp.Min(1),
			),
			mcp.WithNumber("limit",
				mcp.Description("Entries per page (default 25, max 100)"),
				mcp.Min(1),
				mcp.Max(query.MaxLimit),
			),
		),
		s.handleQuery,
	)

	srv.AddTool(
		mcp.NewTool("waitlist_get",
			mcp.WithDescription("Fetch a single waitlist signup with every survey answer."),
			mcp.WithToolAnnotation(readOnlyAnnotation()),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description("Entry ID as returned by waitlist_query"),
			),
		),
		s.handleGet,
	)
}

func (s *MCPServer) handleStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := s.waitlist.Stats(ctx)
	if err != nil {
		s.logger.Error("mcp waitlist stats failed", "error", err)
		return toolError("Failed to compute waitlist statistics: %v", err)
	}
	return successJSON(stats)
}

func (s *MCPServer) handleQuery(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q := query.ParseWaitlistQuery(queryValues(request), s.loc)
	resp, err := s.waitlist.List(ctx, q)
	if err != nil {
		s.logger.Error("mcp waitlist query failed", "error", err)
		return toolError("Failed to query the waitlist: %v", err)
	}
	return successJSON(resp)
}

func (s *MCPServer) handleGet(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireString(request, "id")
	if err != nil {
		return toolError("%v", err)
	}
	entry, err := s.waitlist.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return toolError("Waitlist entry %q not found", id)
	}
	if err != nil {
		s.logger.Error("mcp waitlist get failed", "error", err, "id", id)
		return toolError("Failed to fetch waitlist entry: %v", err)
	}
	return successJSON(entry)
}
