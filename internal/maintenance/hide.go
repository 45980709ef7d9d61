package maintenance

import "github.com/okorolev/shopmaint/internal/shopify"

// needsHide reports whether a product should be moved to draft status: the
// product is currently visible and every variant is inventory-tracked with a
// quantity at or below zero. A single untracked variant keeps the product
// visible, since its real stock is unknown.
//
// A product with no variants satisfies the quantifier vacuously and IS
// hidden when visible. That matches the historical behavior of this rule and
// is preserved deliberately; see DESIGN.md before changing it.
func needsHide(p shopify.Product) bool {
	if p.Status == shopify.StatusDraft {
		return false
	}
	for _, v := range p.Variants {
		if !v.Tracked() || v.Quantity() > 0 {
			return false
		}
	}
	return true
}
