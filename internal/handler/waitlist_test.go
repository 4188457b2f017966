package handler

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/waitdesk/waitdesk/internal/model"
)

func ptr[T any](v T) *T { return &v }

func (e *testEnv) seedWaitlist(t *testing.T) []model.WaitlistEntry {
	t.Helper()
	entries := []model.WaitlistEntry{
		{Email: "xena@example.com", Tier: 1, CurrentApp: ptr(model.CurrentAppWise), CreatedAt: testNow.Add(-time.Hour)},
		{Email: "max@example.com", Tier: 2, CreatedAt: testNow.Add(-2 * time.Hour)},
		{Email: "alex@example.com", Tier: 2, SendToCountry: ptr(model.SendToCountryGhana), CreatedAt: testNow.Add(-30 * time.Hour)},
		{Email: "bea@example.com", Tier: 2, CreatedAt: testNow.Add(-40 * time.Hour)},
		{Email: "cy@example.com", Tier: 3, OneThingToChange: ptr("He said, \"hi\"\n"), CreatedAt: testNow.Add(-50 * time.Hour)},
	}
	if _, err := e.store.SeedWaitlist(context.Background(), entries); err != nil {
		t.Fatalf("SeedWaitlist: %v", err)
	}
	return entries
}

func TestListWaitlist(t *testing.T) {
	env := newTestEnv(t)
	env.seedWaitlist(t)
	cookie := env.sessionCookie(t, env.seedAdmin(t, "Ada", "ada@example.com"))

	rr := env.do(t, "GET", "/api/dashboard/waitlist", nil, cookie)
	assertStatus(t, rr, http.StatusOK)

	var resp model.WaitlistListResponse
	decodeJSON(t, rr, &resp)
	if len(resp.Data) != 5 {
		t.Fatalf("len(data) = %d, want 5", len(resp.Data))
	}
	if resp.Data[0].Email != "xena@example.com" {
		t.Errorf("default sort should be newest first, got %s", resp.Data[0].Email)
	}
	want := model.Pagination{Page: 1, Limit: 25, Total: 5, TotalPages: 1}
	if resp.Pagination != want {
		t.Errorf("pagination = %+v, want %+v", resp.Pagination, want)
	}
	wantStats := model.WaitlistStats{Total: 5, Tier1: 1, Tier2: 3, Tier3: 1, Recent24h: 2}
	if resp.Stats != wantStats {
		t.Errorf("stats = %+v, want %+v", resp.Stats, wantStats)
	}
}

func TestListWaitlistFiltersKeepGlobalStats(t *testing.T) {
	env := newTestEnv(t)
	env.seedWaitlist(t)
	cookie := env.sessionCookie(t, env.seedAdmin(t, "Ada", "ada@example.com"))

	rr := env.do(t, "GET", "/api/dashboard/waitlist?tier=2&search=x&sortBy=email&sortOrder=asc", nil, cookie)
	assertStatus(t, rr, http.StatusOK)

	var resp model.WaitlistListResponse
	decodeJSON(t, rr, &resp)
	var got []string
	for _, e := range resp.Data {
		got = append(got, e.Email)
	}
	if strings.Join(got, ",") != "alex@example.com,max@example.com" {
		t.Errorf("emails = %v", got)
	}
	if resp.Pagination.Total != 2 {
		t.Errorf("total = %d, want 2", resp.Pagination.Total)
	}
	if resp.Stats.Total != 5 || resp.Stats.Tier2 != 3 {
		t.Errorf("stats should ignore filters, got %+v", resp.Stats)
	}
}

func TestListWaitlistMalformedPaging(t *testing.T) {
	env := newTestEnv(t)
	env.seedWaitlist(t)
	cookie := env.sessionCookie(t, env.seedAdmin(t, "Ada", "ada@example.com"))

	tests := []struct {
		query string
		page  int
		limit int
	}{
		{"page=abc&limit=xyz", 1, 25},
		{"page=0&limit=-5", 1, 25},
		{"page=2&limit=2", 2, 2},
		{"limit=5000", 1, 100},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rr := env.do(t, "GET", "/api/dashboard/waitlist?"+tt.query, nil, cookie)
			assertStatus(t, rr, http.StatusOK)
			var resp model.WaitlistListResponse
			decodeJSON(t, rr, &resp)
			if resp.Pagination.Page != tt.page || resp.Pagination.Limit != tt.limit {
				t.Errorf("page/limit = %d/%d, want %d/%d",
					resp.Pagination.Page, resp.Pagination.Limit, tt.page, tt.limit)
			}
		})
	}
}

func TestGetWaitlistEntry(t *testing.T) {
	env := newTestEnv(t)
	entries := env.seedWaitlist(t)
	cookie := env.sessionCookie(t, env.seedAdmin(t, "Ada", "ada@example.com"))

	rr := env.do(t, "GET", "/api/dashboard/waitlist/"+entries[0].ID, nil, cookie)
	assertStatus(t, rr, http.StatusOK)
	var got model.WaitlistEntry
	decodeJSON(t, rr, &got)
	if got.Email != "xena@example.com" || got.CurrentApp == nil || *got.CurrentApp != model.CurrentAppWise {
		t.Errorf("entry = %+v", got)
	}

	rr = env.do(t, "GET", "/api/dashboard/waitlist/missing", nil, cookie)
	assertError(t, rr, http.StatusNotFound, "Waitlist entry not found")
}

func TestExportCSV(t *testing.T) {
	env := newTestEnv(t)
	env.seedWaitlist(t)
	cookie := env.sessionCookie(t, env.seedAdmin(t, "Ada", "ada@example.com"))

	rr := env.do(t, "POST", "/api/dashboard/export", strings.NewReader(`{"filters":{"tier":3}}`), cookie)
	assertStatus(t, rr, http.StatusOK)

	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q, want text/csv", ct)
	}
	wantDisposition := `attachment; filename="waitlist-export-2024-06-30.csv"`
	if cd := rr.Header().Get("Content-Disposition"); cd != wantDisposition {
		t.Errorf("Content-Disposition = %q, want %q", cd, wantDisposition)
	}

	body := rr.Body.String()
	if !strings.HasPrefix(body, "id,email,tier,currentApp,") {
		t.Errorf("header row = %q", strings.SplitN(body, "\n", 2)[0])
	}
	if !strings.Contains(body, `"He said, ""hi""`+"\n"+`"`) {
		t.Errorf("quoted field not found in %q", body)
	}
	if !strings.Contains(body, ",cy@example.com,3,") {
		t.Errorf("tier 3 row not found in %q", body)
	}
	if strings.Contains(body, "max@example.com") {
		t.Error("export ignored the tier filter")
	}
	if strings.HasSuffix(body, "\n") {
		t.Error("CSV should not end with a newline")
	}
}

func TestExportJSON(t *testing.T) {
	env := newTestEnv(t)
	env.seedWaitlist(t)
	cookie := env.sessionCookie(t, env.seedAdmin(t, "Ada", "ada@example.com"))

	rr := env.do(t, "POST", "/api/dashboard/export",
		strings.NewReader(`{"format":"json","filters":{"tier":"2","search":"","currentApp":"all"}}`), cookie)
	assertStatus(t, rr, http.StatusOK)

	wantDisposition := `attachment; filename="waitlist-export-2024-06-30.json"`
	if cd := rr.Header().Get("Content-Disposition"); cd != wantDisposition {
		t.Errorf("Content-Disposition = %q, want %q", cd, wantDisposition)
	}

	var rows []model.WaitlistEntry
	decodeJSON(t, rr, &rows)
	var got []string
	for _, e := range rows {
		got = append(got, e.Email)
	}
	if strings.Join(got, ",") != "max@example.com,alex@example.com,bea@example.com" {
		t.Errorf("rows = %v, want tier 2 newest first", got)
	}
}

func TestExportEmpty(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.sessionCookie(t, env.seedAdmin(t, "Ada", "ada@example.com"))

	rr := env.do(t, "POST", "/api/dashboard/export", strings.NewReader(`{"format":"csv"}`), cookie)
	assertError(t, rr, http.StatusBadRequest, "No data to export")

	rr = env.do(t, "POST", "/api/dashboard/export", strings.NewReader(`{"format":"json"}`), cookie)
	assertStatus(t, rr, http.StatusOK)
	if strings.TrimSpace(rr.Body.String()) != "[]" {
		t.Errorf("empty JSON export = %q, want []", rr.Body.String())
	}
}

func TestExportRejects(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.sessionCookie(t, env.seedAdmin(t, "Ada", "ada@example.com"))

	rr := env.do(t, "POST", "/api/dashboard/export", strings.NewReader(`{"format":"xlsx"}`), cookie)
	assertError(t, rr, http.StatusBadRequest, "Unsupported export format")

	rr = env.do(t, "POST", "/api/dashboard/export", strings.NewReader(`{"format":`), cookie)
	assertError(t, rr, http.StatusBadRequest, "Invalid request body")
}
