package config

import (
	"fmt"
	"strings"
	"time"
)

// ShopifyConfig holds the credentials and connection settings for the remote
// Shopify Admin REST API. Shop and AccessToken may legitimately be empty at
// startup: the service boots without them, and every maintenance run then
// fails fast with a distinct "not configured" error instead of silently
// defaulting.
type ShopifyConfig struct {
	// Shop is the *.myshopify.com subdomain, without the domain suffix.
	Shop         string        `koanf:"shop"`
	AccessToken  string        `koanf:"accesstoken"`
	SharedSecret string        `koanf:"sharedsecret"`
	APIVersion   string        `koanf:"apiversion"`
	Timeout      time.Duration `koanf:"timeout"`
	// BaseURL overrides the URL derived from Shop and APIVersion. Intended
	// for local stand-ins of the Admin API.
	BaseURL string `koanf:"baseurl"`
}

// Configured reports whether the remote API credentials are present.
func (c *ShopifyConfig) Configured() bool {
	return c.Shop != "" && c.AccessToken != ""
}

// String returns a string representation of the Shopify configuration.
func (c *ShopifyConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Shopify ---\n")
	b.WriteString(fmt.Sprintf("  shop: %s\n", valueOrPlaceholder(c.Shop)))
	b.WriteString(fmt.Sprintf("  accesstoken: %s\n", maskSecret(c.AccessToken)))
	b.WriteString(fmt.Sprintf("  sharedsecret: %s\n", maskSecret(c.SharedSecret)))
	b.WriteString(fmt.Sprintf("  apiversion: %s\n", c.APIVersion))
	b.WriteString(fmt.Sprintf("  timeout: %s\n", c.Timeout))
	return b.String()
}

func (c *ShopifyConfig) Validate() error {
	if c.APIVersion == "" {
		return fmt.Errorf("shopify API version is not configured")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("invalid shopify client timeout: %v", c.Timeout)
	}
	return nil
}

func valueOrPlaceholder(s string) string {
	if s == "" {
		return "<not configured>"
	}
	return s
}

func maskSecret(s string) string {
	if s == "" {
		return "<not configured>"
	}
	return "****"
}
