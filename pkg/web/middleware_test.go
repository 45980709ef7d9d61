package web

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_SecretAuth(t *testing.T) {
	testCases := []struct {
		name           string
		configured     string
		presented      string
		expectedStatus int
		expectNext     bool
	}{
		{
			name:           "matching secret passes through",
			configured:     "hunter2",
			presented:      "hunter2",
			expectedStatus: http.StatusNoContent,
			expectNext:     true,
		},
		{
			name:           "wrong secret is unauthorized",
			configured:     "hunter2",
			presented:      "guess",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing header is unauthorized",
			configured:     "hunter2",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "unconfigured secret is unavailable, not open",
			configured:     "",
			presented:      "",
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusNoContent)
			})
			mw := SecretAuth(tc.configured, slog.New(slog.DiscardHandler))

			req := httptest.NewRequest(http.MethodPost, "/", nil)
			if tc.presented != "" {
				req.Header.Set(MaintenanceSecretHeader, tc.presented)
			}
			rr := httptest.NewRecorder()

			// when
			mw(next).ServeHTTP(rr, req)

			// then
			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.Equal(t, tc.expectNext, nextCalled)
		})
	}
}

func Test_RequestIDInjector(t *testing.T) {
	var captured string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = GetRequestID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	RequestIDInjector(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, captured)
}
