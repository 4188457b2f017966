package store

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/waitdesk/waitdesk/internal/model"
)

// DemoEntries generates n plausible waitlist signups spread over the 30 days
// before now. The same seed always yields the same entries.
func DemoEntries(n int, now time.Time, seed uint64) []model.WaitlistEntry {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	apps := model.CurrentApps()
	countries := model.SendToCountries()
	followUps := model.ResearchFollowUps()

	entries := make([]model.WaitlistEntry, 0, n)
	for i := 0; i < n; i++ {
		app := apps[r.IntN(len(apps))]
		country := countries[r.IntN(len(countries))]
		followUp := followUps[r.IntN(len(followUps))]
		e := model.WaitlistEntry{
			Email:            fmt.Sprintf("signup%03d@example.com", i+1),
			Tier:             1 + r.IntN(3),
			CurrentApp:       &app,
			SendToCountry:    &country,
			ResearchFollowUp: &followUp,
			InviteCount:      r.IntN(5),
			EmailSent:        r.IntN(2) == 1,
			CreatedAt:        now.Add(-time.Duration(r.Int64N(int64(30 * 24 * time.Hour)))).UTC(),
		}
		if app == model.CurrentAppOther {
			other := "Sendwave"
			e.CurrentAppOther = &other
		}
		if country == model.SendToCountryOther {
			other := "Uganda"
			e.SendToCountryOther = &other
		}
		entries = append(entries, e)
	}
	return entries
}

// SeedWaitlist inserts entries and returns how many were stored.
func (s *Store) SeedWaitlist(ctx context.Context, entries []model.WaitlistEntry) (int, error) {
	for i := range entries {
		if err := s.InsertWaitlistEntry(ctx, &entries[i]); err != nil {
			return i, fmt.Errorf("seed entry %d: %w", i, err)
		}
	}
	return len(entries), nil
}
