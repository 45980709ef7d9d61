// Package maintenance implements bulk, idempotent maintenance runs over the
// remote catalog: rewriting product descriptions, hiding out-of-stock
// products, and applying a uniform price adjustment. All three operations are
// applications of one traversal skeleton: paginate the catalog in since-id
// order, decide per item whether a mutation is needed, write conditionally,
// and aggregate a run result.
package maintenance

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/okorolev/shopmaint/internal/shopify"
	"github.com/okorolev/shopmaint/pkg/messaging"
	"github.com/okorolev/shopmaint/pkg/messaging/events"
)

// CatalogClient is the subset of the remote catalog API used by the engine.
type CatalogClient interface {
	// Products returns one page of products with identifiers greater than
	// sinceID, ordered by identifier ascending, at most limit items. fields
	// optionally restricts the response to a projection.
	Products(ctx context.Context, limit int, sinceID int64, fields string) ([]shopify.Product, error)

	// UpdateProduct applies a partial update to a single product.
	UpdateProduct(ctx context.Context, id int64, patch shopify.ProductPatch) error

	// UpdateVariant applies a partial update to a single variant.
	UpdateVariant(ctx context.Context, id int64, patch shopify.VariantPatch) error
}

// Config tunes one engine instance.
type Config struct {
	PageSize         int
	WriteConcurrency int
	FallbackVendor   string
}

// Service drives maintenance runs. Each run holds its own cursor, counters
// and preview list; nothing is shared across runs and nothing is persisted.
// The service does not serialize concurrent runs of the same operation; that
// is the caller's responsibility.
type Service struct {
	catalog CatalogClient
	events  messaging.Publisher
	cfg     Config
	logger  *slog.Logger
}

// NewService creates an engine. catalog may be nil when the remote API
// credentials are absent; every run then fails with ErrNotConfigured.
// events may be nil to disable run-completed notifications.
func NewService(catalog CatalogClient, events messaging.Publisher, cfg Config, logger *slog.Logger) *Service {
	return &Service{
		catalog: catalog,
		events:  events,
		cfg:     cfg,
		logger:  logger.With("component", "maintenance"),
	}
}

// PreviewItem identifies a product that a preview run would have mutated.
type PreviewItem struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// DescriptionResult is the outcome of a description rewrite run. In apply
// mode Updated counts the writes issued; in preview mode Preview lists every
// product that needs a rewrite and Updated is zero.
type DescriptionResult struct {
	Applied bool
	Updated int
	Preview []PreviewItem
}

// HideResult is the outcome of a stock-hide run.
type HideResult struct {
	Hidden int
}

// RepriceResult is the outcome of a reprice run.
type RepriceResult struct {
	Changed int
}

// RewriteDescriptions traverses the full catalog and replaces every
// description whose normalized 160-character prefix differs from the
// synthesized one. With apply=false it only collects the products that would
// change.
func (s *Service) RewriteDescriptions(ctx context.Context, apply bool) (*DescriptionResult, error) {
	if err := s.ensureConfigured(); err != nil {
		return nil, err
	}

	var updated atomic.Int64
	preview := make([]PreviewItem, 0)

	err := s.run(ctx, "id,title,vendor,body_html", func(page []shopify.Product) []writeIntent {
		var intents []writeIntent
		for _, p := range page {
			body := BuildDescription(p.Title, s.vendorOr(p.Vendor))
			if descriptionUpToDate(p.BodyHTML, body) {
				continue
			}
			if !apply {
				// plan callbacks run on the traversal goroutine, so the
				// preview list needs no locking.
				preview = append(preview, PreviewItem{ID: p.ID, Title: p.Title})
				continue
			}
			id := p.ID
			intents = append(intents, func(ctx context.Context) error {
				if err := s.catalog.UpdateProduct(ctx, id, shopify.ProductPatch{BodyHTML: &body}); err != nil {
					return err
				}
				updated.Add(1)
				return nil
			})
		}
		return intents
	})
	if err != nil {
		return nil, err
	}

	result := &DescriptionResult{Applied: apply, Updated: int(updated.Load()), Preview: preview}
	if apply {
		s.publishRunCompleted(ctx, "descriptions.rewrite", result.Updated)
		s.logger.InfoContext(ctx, "Description rewrite completed", "updated", result.Updated)
	} else {
		s.logger.InfoContext(ctx, "Description rewrite previewed", "preview_count", len(result.Preview))
	}
	return result, nil
}

// HideOutOfStock traverses the full catalog and moves every product whose
// tracked variants are all out of stock to draft status.
func (s *Service) HideOutOfStock(ctx context.Context) (*HideResult, error) {
	if err := s.ensureConfigured(); err != nil {
		return nil, err
	}

	var hidden atomic.Int64

	err := s.run(ctx, "id,status,variants", func(page []shopify.Product) []writeIntent {
		var intents []writeIntent
		for _, p := range page {
			if !needsHide(p) {
				continue
			}
			id := p.ID
			intents = append(intents, func(ctx context.Context) error {
				draft := shopify.StatusDraft
				if err := s.catalog.UpdateProduct(ctx, id, shopify.ProductPatch{Status: &draft}); err != nil {
					return err
				}
				hidden.Add(1)
				return nil
			})
		}
		return intents
	})
	if err != nil {
		return nil, err
	}

	result := &HideResult{Hidden: int(hidden.Load())}
	s.publishRunCompleted(ctx, "stock.hide", result.Hidden)
	s.logger.InfoContext(ctx, "Stock-hide completed", "hidden", result.Hidden)
	return result, nil
}

// Reprice traverses the full catalog and rewrites every variant price by the
// given percent (+10 multiplies by 1.10), rounded to 2 decimal places.
// Variants whose stored price does not parse as a finite decimal are skipped.
func (s *Service) Reprice(ctx context.Context, percent float64) (*RepriceResult, error) {
	if err := s.ensureConfigured(); err != nil {
		return nil, err
	}

	var changed atomic.Int64

	err := s.run(ctx, "id,variants", func(page []shopify.Product) []writeIntent {
		var intents []writeIntent
		for _, p := range page {
			for _, v := range p.Variants {
				next, ok, parseErr := repriceValue(v.Price, percent)
				if parseErr != nil {
					s.logger.WarnContext(ctx, "Skipping variant with malformed price",
						"product_id", p.ID, "variant_id", v.ID, "price", v.Price)
					continue
				}
				if !ok {
					continue
				}
				id := v.ID
				intents = append(intents, func(ctx context.Context) error {
					if err := s.catalog.UpdateVariant(ctx, id, shopify.VariantPatch{Price: &next}); err != nil {
						return err
					}
					changed.Add(1)
					return nil
				})
			}
		}
		return intents
	})
	if err != nil {
		return nil, err
	}

	result := &RepriceResult{Changed: int(changed.Load())}
	s.publishRunCompleted(ctx, "reprice", result.Changed)
	s.logger.InfoContext(ctx, "Reprice completed", "changed", result.Changed, "percent", percent)
	return result, nil
}

func (s *Service) ensureConfigured() error {
	if s.catalog == nil {
		return ErrNotConfigured
	}
	return nil
}

func (s *Service) vendorOr(vendor string) string {
	if vendor == "" {
		return s.cfg.FallbackVendor
	}
	return vendor
}

// publishRunCompleted emits a notification event for a finished apply run.
// Publish failures are logged and swallowed: the run itself succeeded.
func (s *Service) publishRunCompleted(ctx context.Context, operation string, mutations int) {
	if s.events == nil {
		return
	}
	evt := events.RunCompletedEvent{
		RunID:       uuid.New(),
		Operation:   operation,
		Mutations:   mutations,
		CompletedAt: time.Now().UTC(),
	}
	if err := s.events.Publish(ctx, evt); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish run-completed event",
			"operation", operation, "error", err)
	}
}
