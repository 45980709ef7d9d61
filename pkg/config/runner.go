package config

import (
	"fmt"
	"strings"
)

// RunnerConfig tunes the bulk catalog traversal engine.
type RunnerConfig struct {
	// PageSize is the number of products requested per page (1..250, the
	// remote API caps a page at 250).
	PageSize int `koanf:"pagesize"`
	// WriteConcurrency bounds the number of outstanding remote writes.
	// The default of 1 keeps writes fully sequential, which doubles as the
	// rate-limit strategy for the per-account call budget.
	WriteConcurrency int `koanf:"writeconcurrency"`
	// FallbackVendor is the brand name used in synthesized descriptions for
	// products without a vendor.
	FallbackVendor string `koanf:"fallbackvendor"`
}

// String returns a string representation of the runner configuration.
func (c *RunnerConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Runner ---\n")
	b.WriteString(fmt.Sprintf("  pagesize: %d\n", c.PageSize))
	b.WriteString(fmt.Sprintf("  writeconcurrency: %d\n", c.WriteConcurrency))
	b.WriteString(fmt.Sprintf("  fallbackvendor: %s\n", c.FallbackVendor))
	return b.String()
}

func (c *RunnerConfig) Validate() error {
	if c.PageSize <= 0 || c.PageSize > 250 {
		return fmt.Errorf("runner page size must be between 1 and 250, got %d", c.PageSize)
	}
	if c.WriteConcurrency <= 0 {
		return fmt.Errorf("runner write concurrency must be at least 1, got %d", c.WriteConcurrency)
	}
	if c.FallbackVendor == "" {
		return fmt.Errorf("runner fallback vendor is not configured")
	}
	return nil
}
