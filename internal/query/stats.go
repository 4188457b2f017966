package query

import (
	"time"

	"github.com/Masterminds/squirrel"
)

// RecentWindow is the trailing window counted by the recent24h statistic.
const RecentWindow = 24 * time.Hour

// StatPredicates are the where-clauses behind the dashboard's five global
// statistics. They never include the active list filter.
type StatPredicates struct {
	Total     squirrel.Sqlizer
	Tier1     squirrel.Sqlizer
	Tier2     squirrel.Sqlizer
	Tier3     squirrel.Sqlizer
	Recent24h squirrel.Sqlizer
}

// WaitlistStatPredicates returns the statistic predicates evaluated at now.
// Total has no restriction and is nil.
func WaitlistStatPredicates(now time.Time) StatPredicates {
	return StatPredicates{
		Tier1:     squirrel.Eq{"tier": 1},
		Tier2:     squirrel.Eq{"tier": 2},
		Tier3:     squirrel.Eq{"tier": 3},
		Recent24h: squirrel.GtOrEq{"created_at": now.Add(-RecentWindow).UTC()},
	}
}
