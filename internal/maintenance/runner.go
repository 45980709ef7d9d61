package maintenance

import (
	"context"

	"github.com/okorolev/shopmaint/internal/shopify"
	"golang.org/x/sync/errgroup"
)

// writeIntent is one pending remote mutation produced by a planner.
type writeIntent func(ctx context.Context) error

// run is the shared traversal skeleton: fetch pages in since-id order with
// the given field projection, let plan turn each page into write intents, and
// execute them before fetching the next page. The first error — from a page
// fetch or a write — aborts the run; writes already applied stay in effect
// (there is no rollback).
func (s *Service) run(ctx context.Context, fields string, plan func(page []shopify.Product) []writeIntent) error {
	pg := &pager{
		fetch: func(ctx context.Context, sinceID int64) ([]shopify.Product, error) {
			return s.catalog.Products(ctx, s.cfg.PageSize, sinceID, fields)
		},
	}
	for {
		page, err := pg.next(ctx)
		if err != nil {
			return err
		}
		if page == nil {
			return nil
		}
		if err := s.execute(ctx, plan(page)); err != nil {
			return err
		}
	}
}

// execute applies write intents under the configured concurrency bound.
// With the default bound of 1 writes are issued strictly one at a time, which
// is the engine's rate-limit policy for the remote store's per-account call
// budget. After the first failure, intents that have not started yet observe
// the cancelled context and never reach the remote API.
func (s *Service) execute(ctx context.Context, intents []writeIntent) error {
	if len(intents) == 0 {
		return nil
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.writeConcurrency())
	for _, intent := range intents {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return intent(gctx)
		})
	}
	return g.Wait()
}

func (s *Service) writeConcurrency() int {
	if s.cfg.WriteConcurrency <= 0 {
		return 1
	}
	return s.cfg.WriteConcurrency
}
