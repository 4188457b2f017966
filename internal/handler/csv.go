package handler

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/waitdesk/waitdesk/internal/model"
)

// csvTimeLayout renders timestamps as UTC ISO-8601 with milliseconds.
const csvTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// csvColumn is one exported field, named by its JSON key.
type csvColumn struct {
	name  string
	value func(e *model.WaitlistEntry) string
}

// waitlistCSVColumns follows the JSON field order of model.WaitlistEntry.
var waitlistCSVColumns = []csvColumn{
	{"id", func(e *model.WaitlistEntry) string { return e.ID }},
	{"email", func(e *model.WaitlistEntry) string { return e.Email }},
	{"tier", func(e *model.WaitlistEntry) string { return strconv.Itoa(e.Tier) }},
	{"currentApp", func(e *model.WaitlistEntry) string { return str(e.CurrentApp) }},
	{"currentAppOther", func(e *model.WaitlistEntry) string { return str(e.CurrentAppOther) }},
	{"sendToCountry", func(e *model.WaitlistEntry) string { return str(e.SendToCountry) }},
	{"sendToCountryOther", func(e *model.WaitlistEntry) string { return str(e.SendToCountryOther) }},
	{"frequency", func(e *model.WaitlistEntry) string { return str(e.Frequency) }},
	{"biggestFrustration", func(e *model.WaitlistEntry) string { return str(e.BiggestFrustration) }},
	{"biggestFrustrationOther", func(e *model.WaitlistEntry) string { return str(e.BiggestFrustrationOther) }},
	{"oneThingToChange", func(e *model.WaitlistEntry) string { return str(e.OneThingToChange) }},
	{"investingStatus", func(e *model.WaitlistEntry) string { return str(e.InvestingStatus) }},
	{"desiredFeature", func(e *model.WaitlistEntry) string { return str(e.DesiredFeature) }},
	{"desiredFeatureOther", func(e *model.WaitlistEntry) string { return str(e.DesiredFeatureOther) }},
	{"perfectAppDesign", func(e *model.WaitlistEntry) string { return str(e.PerfectAppDesign) }},
	{"researchFollowUp", func(e *model.WaitlistEntry) string { return str(e.ResearchFollowUp) }},
	{"preferredContactMethod", func(e *model.WaitlistEntry) string { return str(e.PreferredContactMethod) }},
	{"whatsappNumber", func(e *model.WaitlistEntry) string { return str(e.WhatsappNumber) }},
	{"inviteCount", func(e *model.WaitlistEntry) string { return strconv.Itoa(e.InviteCount) }},
	{"emailSent", func(e *model.WaitlistEntry) string { return strconv.FormatBool(e.EmailSent) }},
	{"createdAt", func(e *model.WaitlistEntry) string { return csvTime(e.CreatedAt) }},
	{"updatedAt", func(e *model.WaitlistEntry) string { return csvTime(e.UpdatedAt) }},
}

// WriteWaitlistCSV writes a header row followed by one row per entry.
// Rows are separated by a single newline with none after the last row.
func WriteWaitlistCSV(w io.Writer, rows []model.WaitlistEntry) error {
	lines := make([]string, 0, len(rows)+1)

	header := make([]string, len(waitlistCSVColumns))
	for i, c := range waitlistCSVColumns {
		header[i] = csvField(c.name)
	}
	lines = append(lines, strings.Join(header, ","))

	for i := range rows {
		fields := make([]string, len(waitlistCSVColumns))
		for j, c := range waitlistCSVColumns {
			fields[j] = csvField(c.value(&rows[i]))
		}
		lines = append(lines, strings.Join(fields, ","))
	}

	_, err := io.WriteString(w, strings.Join(lines, "\n"))
	return err
}

// csvField quotes s only when it contains a comma, a quote or a newline,
// doubling embedded quotes.
func csvField(s string) string {
	if !strings.ContainsAny(s, ",\"\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func csvTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(csvTimeLayout)
}

// str renders an optional value; nil is the empty field.
func str[T ~string](v *T) string {
	if v == nil {
		return ""
	}
	return string(*v)
}
