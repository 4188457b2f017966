package service

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"golang.org/x/sync/errgroup"

	"github.com/waitdesk/waitdesk/internal/model"
	"github.com/waitdesk/waitdesk/internal/query"
	"github.com/waitdesk/waitdesk/internal/store"
)

// WaitlistRecords is the slice of the record store the waitlist service
// reads from.
type WaitlistRecords interface {
	FindWaitlist(ctx context.Context, sel store.WaitlistSelect) ([]model.WaitlistEntry, error)
	CountWaitlist(ctx context.Context, where sq.Sqlizer) (int64, error)
	GetWaitlistEntry(ctx context.Context, id string) (*model.WaitlistEntry, error)
}

// WaitlistService executes dashboard queries over the waitlist.
type WaitlistService struct {
	records WaitlistRecords
	now     func() time.Time
}

// NewWaitlistService returns a service reading from records.
func NewWaitlistService(records WaitlistRecords) *WaitlistService {
	return &WaitlistService{records: records, now: time.Now}
}

// SetClock replaces the time source used for the recent24h statistic.
func (s *WaitlistService) SetClock(now func() time.Time) {
	s.now = now
}

// List returns one page of entries matching q, the total number of matches
// and the global statistics. The page fetch, the count and the five
// statistics run concurrently; they are not read in one transaction, so the
// total may drift slightly from the page under concurrent writes.
func (s *WaitlistService) List(ctx context.Context, q query.WaitlistQuery) (*model.WaitlistListResponse, error) {
	g, gctx := errgroup.WithContext(ctx)
	pred := q.Filter.Predicate()

	var rows []model.WaitlistEntry
	g.Go(func() error {
		var err error
		rows, err = s.records.FindWaitlist(gctx, store.WaitlistSelect{
			Where:   pred,
			OrderBy: q.Sort.OrderBy(),
			Limit:   uint64(q.Page.Limit),
			Offset:  uint64(q.Page.Offset()),
		})
		return err
	})

	var total int64
	g.Go(func() error {
		var err error
		total, err = s.records.CountWaitlist(gctx, pred)
		return err
	})

	var stats model.WaitlistStats
	s.goStats(gctx, g, &stats)

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("list waitlist: %w", err)
	}

	return &model.WaitlistListResponse{
		Data: rows,
		Pagination: model.Pagination{
			Page:       q.Page.Number,
			Limit:      q.Page.Limit,
			Total:      total,
			TotalPages: query.TotalPages(total, q.Page.Limit),
		},
		Stats: stats,
	}, nil
}

// Stats returns the five global statistics.
func (s *WaitlistService) Stats(ctx context.Context) (model.WaitlistStats, error) {
	g, gctx := errgroup.WithContext(ctx)
	var stats model.WaitlistStats
	s.goStats(gctx, g, &stats)
	if err := g.Wait(); err != nil {
		return model.WaitlistStats{}, fmt.Errorf("waitlist stats: %w", err)
	}
	return stats, nil
}

// goStats schedules one count per statistic on g. They ignore any list
// filter.
func (s *WaitlistService) goStats(ctx context.Context, g *errgroup.Group, stats *model.WaitlistStats) {
	p := query.WaitlistStatPredicates(s.now())
	counts := []struct {
		dst   *int64
		where sq.Sqlizer
	}{
		{&stats.Total, p.Total},
		{&stats.Tier1, p.Tier1},
		{&stats.Tier2, p.Tier2},
		{&stats.Tier3, p.Tier3},
		{&stats.Recent24h, p.Recent24h},
	}
	for _, c := range counts {
		g.Go(func() error {
			n, err := s.records.CountWaitlist(ctx, c.where)
			if err != nil {
				return err
			}
			*c.dst = n
			return nil
		})
	}
}

// Export returns every entry matching f, newest first.
func (s *WaitlistService) Export(ctx context.Context, f query.WaitlistFilter) ([]model.WaitlistEntry, error) {
	rows, err := s.records.FindWaitlist(ctx, store.WaitlistSelect{
		Where:   f.Predicate(),
		OrderBy: query.ParseSort(query.DefaultSortField, string(query.Desc)).OrderBy(),
	})
	if err != nil {
		return nil, fmt.Errorf("export waitlist: %w", err)
	}
	return rows, nil
}

// Get returns a single entry. A missing entry yields store.ErrNotFound.
func (s *WaitlistService) Get(ctx context.Context, id string) (*model.WaitlistEntry, error) {
	return s.records.GetWaitlistEntry(ctx, id)
}
