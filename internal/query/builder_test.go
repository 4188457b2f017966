package query

import (
	"net/url"
	"reflect"
	"strconv"
	"testing"
	"time"
)

func TestParseSort(t *testing.T) {
	tests := []struct {
		name      string
		sortBy    string
		sortOrder string
		want      Sort
	}{
		{"defaults", "", "", Sort{Field: "createdAt", Column: "created_at", Direction: Desc}},
		{"email ascending", "email", "asc", Sort{Field: "email", Column: "email", Direction: Asc}},
		{"case insensitive order", "tier", "ASC", Sort{Field: "tier", Column: "tier", Direction: Asc}},
		{"explicit desc", "inviteCount", "desc", Sort{Field: "inviteCount", Column: "invite_count", Direction: Desc}},
		{"unknown field falls back", "password", "asc", Sort{Field: "createdAt", Column: "created_at", Direction: Asc}},
		{"injection attempt falls back", "email; DROP TABLE waitlist", "", Sort{Field: "createdAt", Column: "created_at", Direction: Desc}},
		{"unknown order falls back", "email", "sideways", Sort{Field: "email", Column: "email", Direction: Desc}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSort(tt.sortBy, tt.sortOrder)
			if got != tt.want {
				t.Errorf("ParseSort(%q, %q) = %+v, want %+v", tt.sortBy, tt.sortOrder, got, tt.want)
			}
		})
	}
}

func TestSortOrderByTieBreak(t *testing.T) {
	got := ParseSort("tier", "desc").OrderBy()
	want := []string{"tier DESC", "id ASC"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("OrderBy() = %v, want %v", got, want)
	}

	got = ParseSort("id", "desc").OrderBy()
	want = []string{"id DESC"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("OrderBy() for id = %v, want %v", got, want)
	}
}

func TestSortableFieldsAreValidIdentifiers(t *testing.T) {
	for _, f := range SortableFields() {
		if err := ValidateIdentifier(sortColumns[f]); err != nil {
			t.Errorf("column for %q: %v", f, err)
		}
	}
}

func TestParsePage(t *testing.T) {
	tests := []struct {
		name  string
		page  string
		limit string
		want  Page
	}{
		{"defaults", "", "", Page{Number: 1, Limit: 25}},
		{"explicit", "3", "50", Page{Number: 3, Limit: 50}},
		{"non-numeric", "abc", "xyz", Page{Number: 1, Limit: 25}},
		{"zero", "0", "0", Page{Number: 1, Limit: 25}},
		{"negative", "-2", "-10", Page{Number: 1, Limit: 25}},
		{"float", "1.5", "10.0", Page{Number: 1, Limit: 25}},
		{"limit capped", "1", "5000", Page{Number: 1, Limit: MaxLimit}},
		{"whitespace", " 2 ", " 10 ", Page{Number: 2, Limit: 10}},
		{"page capped", "99999999999", "100", Page{Number: maxPage, Limit: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePage(tt.page, tt.limit)
			if got != tt.want {
				t.Errorf("ParsePage(%q, %q) = %+v, want %+v", tt.page, tt.limit, got, tt.want)
			}
		})
	}
}

func TestPageOffset(t *testing.T) {
	tests := []struct {
		page Page
		want int
	}{
		{Page{Number: 1, Limit: 25}, 0},
		{Page{Number: 2, Limit: 25}, 25},
		{Page{Number: 4, Limit: 10}, 30},
	}
	for _, tt := range tests {
		if got := tt.page.Offset(); got != tt.want {
			t.Errorf("%+v.Offset() = %d, want %d", tt.page, got, tt.want)
		}
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total int64
		limit int
		want  int
	}{
		{0, 25, 0},
		{1, 25, 1},
		{25, 25, 1},
		{26, 25, 2},
		{100, 10, 10},
		{101, 10, 11},
		{5, 0, 0},
	}
	for _, tt := range tests {
		if got := TotalPages(tt.total, tt.limit); got != tt.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.want)
		}
	}
}

func TestLimitPresetsWithinBounds(t *testing.T) {
	for _, p := range LimitPresets {
		if p < 1 || p > MaxLimit {
			t.Errorf("preset %d outside [1, %d]", p, MaxLimit)
		}
		if got := ParsePage("1", strconv.Itoa(p)).Limit; got != p {
			t.Errorf("preset %d parsed as %d", p, got)
		}
	}
}

func TestParseWaitlistQuery(t *testing.T) {
	v := url.Values{
		"page":      {"2"},
		"limit":     {"10"},
		"sortBy":    {"email"},
		"sortOrder": {"asc"},
		"tier":      {"2"},
		"search":    {"x"},
	}
	q := ParseWaitlistQuery(v, time.UTC)

	if q.Page != (Page{Number: 2, Limit: 10}) {
		t.Errorf("Page = %+v", q.Page)
	}
	if q.Sort.Column != "email" || q.Sort.Direction != Asc {
		t.Errorf("Sort = %+v", q.Sort)
	}
	if q.Filter.Tier != 2 || q.Filter.Search != "x" {
		t.Errorf("Filter = %+v", q.Filter)
	}
}
