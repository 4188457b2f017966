package query

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/waitdesk/waitdesk/internal/model"
)

// AllSentinel is the filter value the dashboard sends for "no restriction".
const AllSentinel = "all"

// maxSearchLen bounds the email substring search.
const maxSearchLen = 254

// WaitlistFilter is the set of optional restrictions on a waitlist query.
// Zero-valued fields contribute no predicate.
type WaitlistFilter struct {
	Search           string
	Tier             int
	CurrentApp       model.CurrentApp
	SendToCountry    model.SendToCountry
	ResearchFollowUp model.ResearchFollowUp
	DateFrom         time.Time
	DateTo           time.Time
}

// IsZero reports whether the filter restricts nothing.
func (f WaitlistFilter) IsZero() bool {
	return f == WaitlistFilter{}
}

// Predicate returns the conjunction of every active restriction. An empty
// conjunction matches all rows.
func (f WaitlistFilter) Predicate() squirrel.And {
	pred := squirrel.And{}
	if f.Search != "" {
		pred = append(pred, squirrel.Expr(
			"email LIKE ? ESCAPE '"+likeEscape+"'", "%"+EscapeLike(f.Search)+"%"))
	}
	if f.Tier > 0 {
		pred = append(pred, squirrel.Eq{"tier": f.Tier})
	}
	if f.CurrentApp != "" {
		pred = append(pred, squirrel.Eq{"current_app": string(f.CurrentApp)})
	}
	if f.SendToCountry != "" {
		pred = append(pred, squirrel.Eq{"send_to_country": string(f.SendToCountry)})
	}
	if f.ResearchFollowUp != "" {
		pred = append(pred, squirrel.Eq{"research_follow_up": string(f.ResearchFollowUp)})
	}
	if !f.DateFrom.IsZero() {
		pred = append(pred, squirrel.GtOrEq{"created_at": f.DateFrom.UTC()})
	}
	if !f.DateTo.IsZero() {
		pred = append(pred, squirrel.LtOrEq{"created_at": f.DateTo.UTC()})
	}
	return pred
}

// ParseWaitlistFilter reads filter parameters from v. Missing, "all", and
// unparseable values are ignored. Bare dates are calendar days in loc; dateTo
// is moved to the last millisecond of its day.
func ParseWaitlistFilter(v url.Values, loc *time.Location) WaitlistFilter {
	if loc == nil {
		loc = time.UTC
	}
	var f WaitlistFilter

	if s := strings.TrimSpace(v.Get("search")); s != "" {
		if clean, err := SanitizeStringValue(s, maxSearchLen); err == nil {
			f.Search = clean
		} else {
			f.Search = truncateString(strings.ReplaceAll(s, "\x00", ""), maxSearchLen)
		}
	}
	if s, ok := active(v, "tier"); ok {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			f.Tier = n
		}
	}
	if s, ok := active(v, "currentApp"); ok && model.CurrentApp(s).Valid() {
		f.CurrentApp = model.CurrentApp(s)
	}
	if s, ok := active(v, "sendToCountry"); ok && model.SendToCountry(s).Valid() {
		f.SendToCountry = model.SendToCountry(s)
	}
	if s, ok := active(v, "researchFollowUp"); ok && model.ResearchFollowUp(s).Valid() {
		f.ResearchFollowUp = model.ResearchFollowUp(s)
	}
	if s, ok := active(v, "dateFrom"); ok {
		if t, dateOnly, err := parseDate(s, loc); err == nil {
			if dateOnly {
				t = startOfDay(t, loc)
			}
			f.DateFrom = t
		}
	}
	if s, ok := active(v, "dateTo"); ok {
		if t, _, err := parseDate(s, loc); err == nil {
			f.DateTo = endOfDay(t, loc)
		}
	}
	return f
}

// ValuesFromMap converts a decoded JSON filter object into url.Values so that
// export requests share the list endpoint's parsing. Numbers and booleans are
// formatted; nulls and nested values are dropped.
func ValuesFromMap(m map[string]interface{}) url.Values {
	v := url.Values{}
	for key, raw := range m {
		switch x := raw.(type) {
		case string:
			v.Set(key, x)
		case float64:
			v.Set(key, strconv.FormatFloat(x, 'f', -1, 64))
		case bool:
			v.Set(key, strconv.FormatBool(x))
		}
	}
	return v
}

func active(v url.Values, key string) (string, bool) {
	s := strings.TrimSpace(v.Get(key))
	if s == "" || strings.EqualFold(s, AllSentinel) {
		return "", false
	}
	return s, true
}

// parseDate accepts YYYY-MM-DD (reported as dateOnly) or an RFC 3339 timestamp.
func parseDate(s string, loc *time.Location) (time.Time, bool, error) {
	if t, err := time.ParseInLocation(time.DateOnly, s, loc); err == nil {
		return t, true, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("invalid date %q", s)
	}
	return t, false, nil
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func endOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), loc)
}
