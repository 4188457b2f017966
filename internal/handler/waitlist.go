package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/waitdesk/waitdesk/internal/query"
	"github.com/waitdesk/waitdesk/internal/service"
	"github.com/waitdesk/waitdesk/internal/store"
)

// Export formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// WaitlistHandler serves the read-only waitlist dashboard endpoints.
type WaitlistHandler struct {
	svc  *service.WaitlistService
	loc  *time.Location
	now  func() time.Time
	opts Options
}

// NewWaitlistHandler creates a new WaitlistHandler. Bare filter dates are
// read as calendar days in loc (UTC when nil).
func NewWaitlistHandler(svc *service.WaitlistService, loc *time.Location, opts Options) *WaitlistHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &WaitlistHandler{svc: svc, loc: loc, now: time.Now, opts: opts}
}

// SetClock replaces the time source used to date export file names.
func (h *WaitlistHandler) SetClock(now func() time.Time) {
	h.now = now
}

// List returns one filtered, sorted page of signups with global statistics.
// Malformed paging parameters fall back to their defaults.
// GET /api/dashboard/waitlist
func (h *WaitlistHandler) List(w http.ResponseWriter, r *http.Request) {
	q := query.ParseWaitlistQuery(r.URL.Query(), h.loc)

	resp, err := h.svc.List(r.Context(), q)
	if err != nil {
		writeServerError(w, r, h.opts, "Failed to fetch waitlist", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get returns a single signup.
// GET /api/dashboard/waitlist/{id}
func (h *WaitlistHandler) Get(w http.ResponseWriter, r *http.Request) {
	entry, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Waitlist entry not found")
		return
	}
	if err != nil {
		writeServerError(w, r, h.opts, "Failed to fetch waitlist entry", err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

type exportRequest struct {
	Format  string                 `json:"format" validate:"omitempty,oneof=csv json"`
	Filters map[string]interface{} `json:"filters"`
}

// Export downloads every signup matching the filters as CSV or JSON.
// POST /api/dashboard/export
func (h *WaitlistHandler) Export(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Format = strings.ToLower(strings.TrimSpace(req.Format))
	if failed, err := failedTags(req); err != nil {
		writeServerError(w, r, h.opts, "Failed to export data", err)
		return
	} else if failed != nil {
		writeError(w, http.StatusBadRequest, "Unsupported export format", map[string]interface{}{
			"formats": []string{FormatCSV, FormatJSON},
		})
		return
	}
	if req.Format == "" {
		req.Format = FormatCSV
	}

	filter := query.ParseWaitlistFilter(query.ValuesFromMap(req.Filters), h.loc)
	rows, err := h.svc.Export(r.Context(), filter)
	if err != nil {
		writeServerError(w, r, h.opts, "Failed to export data", err)
		return
	}

	filename := ExportFilename(h.now(), req.Format)
	if req.Format == FormatJSON {
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		writeJSON(w, http.StatusOK, rows)
		return
	}

	if len(rows) == 0 {
		writeError(w, http.StatusBadRequest, "No data to export")
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	if err := WriteWaitlistCSV(w, rows); err != nil {
		h.opts.logger().ErrorContext(r.Context(), "write csv export", "error", err)
	}
}

// ExportFilename is waitlist-export-<UTC date>.<format>.
func ExportFilename(now time.Time, format string) string {
	return "waitlist-export-" + now.UTC().Format(time.DateOnly) + "." + format
}

