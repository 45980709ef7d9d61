package maintenance

import "errors"

// ErrNotConfigured is returned before any traversal starts when the remote
// catalog credentials are absent.
var ErrNotConfigured = errors.New("remote catalog credentials are not configured")
