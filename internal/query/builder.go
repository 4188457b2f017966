package query

import (
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Defaults applied when a request omits or garbles a parameter.
const (
	DefaultPage      = 1
	DefaultLimit     = 25
	MaxLimit         = 100
	DefaultSortField = "createdAt"
)

// maxPage keeps Offset from overflowing.
const maxPage = math.MaxInt32

// LimitPresets are the page sizes offered by the dashboard.
var LimitPresets = []int{10, 25, 50, 100}

// Direction is a SQL sort direction.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// tieBreakColumn orders rows that share a sort key.
const tieBreakColumn = "id"

// sortColumns maps sortable API field names to waitlist columns.
var sortColumns = map[string]string{
	"id":                     "id",
	"email":                  "email",
	"tier":                   "tier",
	"currentApp":             "current_app",
	"sendToCountry":          "send_to_country",
	"frequency":              "frequency",
	"biggestFrustration":     "biggest_frustration",
	"investingStatus":        "investing_status",
	"desiredFeature":         "desired_feature",
	"researchFollowUp":       "research_follow_up",
	"preferredContactMethod": "preferred_contact_method",
	"inviteCount":            "invite_count",
	"emailSent":              "email_sent",
	"createdAt":              "created_at",
	"updatedAt":              "updated_at",
}

// SortableFields returns the API field names accepted by sortBy.
func SortableFields() []string {
	fields := make([]string, 0, len(sortColumns))
	for f := range sortColumns {
		fields = append(fields, f)
	}
	return fields
}

// Sort is a single-column ordering on the waitlist.
type Sort struct {
	Field     string
	Column    string
	Direction Direction
}

// ParseSort resolves sortBy/sortOrder. Unknown fields fall back to createdAt
// and unknown directions to descending.
func ParseSort(sortBy, sortOrder string) Sort {
	field := strings.TrimSpace(sortBy)
	col, ok := sortColumns[field]
	if !ok || ValidateIdentifier(col) != nil {
		field = DefaultSortField
		col = sortColumns[DefaultSortField]
	}
	dir := Desc
	if strings.EqualFold(strings.TrimSpace(sortOrder), string(Asc)) {
		dir = Asc
	}
	return Sort{Field: field, Column: col, Direction: dir}
}

// OrderBy returns ORDER BY terms: the requested column followed by the id
// tie-break, so every page boundary is deterministic.
func (s Sort) OrderBy() []string {
	terms := []string{s.Column + " " + string(s.Direction)}
	if s.Column != tieBreakColumn {
		terms = append(terms, tieBreakColumn+" "+string(Asc))
	}
	return terms
}

// Page is a 1-based page number and page size.
type Page struct {
	Number int
	Limit  int
}

// ParsePage reads page and limit. Non-numeric or non-positive values fall
// back to the defaults; limit is capped at MaxLimit.
func ParsePage(page, limit string) Page {
	p := Page{Number: DefaultPage, Limit: DefaultLimit}
	if n, err := strconv.Atoi(strings.TrimSpace(page)); err == nil && n > 0 {
		p.Number = min(n, maxPage)
	}
	if n, err := strconv.Atoi(strings.TrimSpace(limit)); err == nil && n > 0 {
		p.Limit = min(n, MaxLimit)
	}
	return p
}

// Offset is the number of rows before this page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

// TotalPages returns ceil(total/limit).
func TotalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// WaitlistQuery is a fully resolved list request.
type WaitlistQuery struct {
	Filter WaitlistFilter
	Sort   Sort
	Page   Page
}

// ParseWaitlistQuery builds a WaitlistQuery from dashboard query parameters.
// It never fails: every malformed parameter degrades to its default.
func ParseWaitlistQuery(v url.Values, loc *time.Location) WaitlistQuery {
	return WaitlistQuery{
		Filter: ParseWaitlistFilter(v, loc),
		Sort:   ParseSort(v.Get("sortBy"), v.Get("sortOrder")),
		Page:   ParsePage(v.Get("page"), v.Get("limit")),
	}
}
