package maintenance

import (
	"context"

	"github.com/okorolev/shopmaint/internal/shopify"
)

// pager produces a lazy, finite sequence of catalog pages using a since-id
// cursor. The cursor starts at zero and advances to the highest identifier
// seen in the previous page, so it is strictly non-decreasing within a run.
// The sequence is exhausted when a fetch returns an empty page. A pager is
// not restartable mid-sequence; every run builds a fresh one.
//
// If the store mutates concurrently the traversal only converges once the
// store is quiescent. That is a known limitation of since-id cursors, not a
// defect.
type pager struct {
	fetch   func(ctx context.Context, sinceID int64) ([]shopify.Product, error)
	sinceID int64
	done    bool
}

// next returns the following page, or nil when the sequence is exhausted.
func (p *pager) next(ctx context.Context) ([]shopify.Product, error) {
	if p.done {
		return nil, nil
	}
	page, err := p.fetch(ctx, p.sinceID)
	if err != nil {
		return nil, err
	}
	if len(page) == 0 {
		p.done = true
		return nil, nil
	}
	for _, product := range page {
		if product.ID > p.sinceID {
			p.sinceID = product.ID
		}
	}
	return page, nil
}
