package shopify

import "fmt"

// APIError is returned for every non-2xx response from the remote API. It
// carries everything needed to reproduce the failed call: status code,
// method, path and the raw response body.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("shopify: %s %s returned %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}
