package maintenance

import (
	"testing"

	"github.com/okorolev/shopmaint/internal/shopify"
	"github.com/stretchr/testify/assert"
)

func variant(qty int, tracked bool) shopify.Variant {
	v := shopify.Variant{InventoryQuantity: &qty}
	if tracked {
		v.InventoryManagement = "shopify"
	}
	return v
}

func Test_NeedsHide(t *testing.T) {
	testCases := []struct {
		name     string
		product  shopify.Product
		expected bool
	}{
		{
			name: "all tracked variants out of stock",
			product: shopify.Product{
				Status:   shopify.StatusActive,
				Variants: []shopify.Variant{variant(0, true), variant(0, true)},
			},
			expected: true,
		},
		{
			name: "negative stock counts as out of stock",
			product: shopify.Product{
				Status:   shopify.StatusActive,
				Variants: []shopify.Variant{variant(-2, true)},
			},
			expected: true,
		},
		{
			name: "one tracked variant still in stock",
			product: shopify.Product{
				Status:   shopify.StatusActive,
				Variants: []shopify.Variant{variant(5, true)},
			},
			expected: false,
		},
		{
			name: "mixed stock keeps the product visible",
			product: shopify.Product{
				Status:   shopify.StatusActive,
				Variants: []shopify.Variant{variant(0, true), variant(3, true)},
			},
			expected: false,
		},
		{
			name: "untracked variant keeps the product visible",
			product: shopify.Product{
				Status:   shopify.StatusActive,
				Variants: []shopify.Variant{variant(0, false)},
			},
			expected: false,
		},
		{
			name: "zero variants is vacuously out of stock",
			product: shopify.Product{
				Status: shopify.StatusActive,
			},
			expected: true,
		},
		{
			name: "already hidden product is left alone",
			product: shopify.Product{
				Status:   shopify.StatusDraft,
				Variants: []shopify.Variant{variant(0, true)},
			},
			expected: false,
		},
		{
			name: "tracked variant without a quantity counts as zero",
			product: shopify.Product{
				Status:   shopify.StatusActive,
				Variants: []shopify.Variant{{InventoryManagement: "shopify"}},
			},
			expected: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, needsHide(tc.product))
		})
	}
}
