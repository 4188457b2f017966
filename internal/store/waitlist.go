package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/waitdesk/waitdesk/internal/model"
)

const waitlistTable = "waitlist"

var waitlistColumns = []string{
	"id", "email", "tier",
	"current_app", "current_app_other",
	"send_to_country", "send_to_country_other",
	"frequency",
	"biggest_frustration", "biggest_frustration_other",
	"one_thing_to_change",
	"investing_status",
	"desired_feature", "desired_feature_other",
	"perfect_app_design",
	"research_follow_up",
	"preferred_contact_method",
	"whatsapp_number",
	"invite_count", "email_sent",
	"created_at", "updated_at",
}

// WaitlistSelect describes a waitlist read. A nil Where matches every row
// and a zero Limit returns every matching row.
type WaitlistSelect struct {
	Where   sq.Sqlizer
	OrderBy []string
	Limit   uint64
	Offset  uint64
}

// FindWaitlist returns the entries selected by sel.
func (s *Store) FindWaitlist(ctx context.Context, sel WaitlistSelect) ([]model.WaitlistEntry, error) {
	b := s.sb.Select(waitlistColumns...).From(waitlistTable)
	if sel.Where != nil {
		b = b.Where(sel.Where)
	}
	if len(sel.OrderBy) > 0 {
		b = b.OrderBy(sel.OrderBy...)
	}
	if sel.Limit > 0 {
		b = s.conn.Paginate(b, sel.Limit, sel.Offset)
	}

	q, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find waitlist: %w", err)
	}

	entries := []model.WaitlistEntry{}
	if err := s.db.SelectContext(ctx, &entries, q, args...); err != nil {
		return nil, fmt.Errorf("find waitlist: %w", err)
	}
	return entries, nil
}

// CountWaitlist returns the number of entries matching where (all entries
// when where is nil).
func (s *Store) CountWaitlist(ctx context.Context, where sq.Sqlizer) (int64, error) {
	b := s.sb.Select("COUNT(*)").From(waitlistTable)
	if where != nil {
		b = b.Where(where)
	}
	q, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count waitlist: %w", err)
	}

	var n int64
	if err := s.db.GetContext(ctx, &n, q, args...); err != nil {
		return 0, fmt.Errorf("count waitlist: %w", err)
	}
	return n, nil
}

// GetWaitlistEntry returns a single entry by ID.
func (s *Store) GetWaitlistEntry(ctx context.Context, id string) (*model.WaitlistEntry, error) {
	q, args, err := s.sb.Select(waitlistColumns...).From(waitlistTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get waitlist entry: %w", err)
	}

	var e model.WaitlistEntry
	if err := s.db.GetContext(ctx, &e, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get waitlist entry: %w", err)
	}
	return &e, nil
}

// InsertWaitlistEntry validates and stores a signup. The dashboard never
// writes entries; seeding and tests do. A zero CreatedAt is set to now.
func (s *Store) InsertWaitlistEntry(ctx context.Context, e *model.WaitlistEntry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if e.ID == "" {
		e.ID = newID()
	}
	now := s.timestamp()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = e.CreatedAt
	}
	e.CreatedAt = e.CreatedAt.UTC()
	e.UpdatedAt = e.UpdatedAt.UTC()

	q, args, err := s.sb.Insert(waitlistTable).
		Columns(waitlistColumns...).
		Values(
			e.ID, e.Email, e.Tier,
			nullable(e.CurrentApp), nullable(e.CurrentAppOther),
			nullable(e.SendToCountry), nullable(e.SendToCountryOther),
			nullable(e.Frequency),
			nullable(e.BiggestFrustration), nullable(e.BiggestFrustrationOther),
			nullable(e.OneThingToChange),
			nullable(e.InvestingStatus),
			nullable(e.DesiredFeature), nullable(e.DesiredFeatureOther),
			nullable(e.PerfectAppDesign),
			nullable(e.ResearchFollowUp),
			nullable(e.PreferredContactMethod),
			nullable(e.WhatsappNumber),
			e.InviteCount, e.EmailSent,
			e.CreatedAt, e.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert waitlist entry: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("insert waitlist entry: %w", err)
	}
	return nil
}

// nullable turns an optional string-like field into a driver value: NULL or
// a plain string.
func nullable[T ~string](v *T) interface{} {
	if v == nil {
		return nil
	}
	return string(*v)
}
