package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func keyAuthHandler(t *testing.T, header, queryParam, key string) (http.Handler, *bool) {
	t.Helper()

	reached := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	})
	return KeyAuth(header, queryParam, key)(next), &reached
}

func TestKeyAuth_ValidHeader(t *testing.T) {
	handler, reached := keyAuthHandler(t, "X-Staff-Key", "k", "secret")

	req := httptest.NewRequest(http.MethodPost, "/api/staff/toggle/ABCD2345", nil)
	req.Header.Set("X-Staff-Key", "secret")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *reached)
}

func TestKeyAuth_QueryParamFallback(t *testing.T) {
	handler, reached := keyAuthHandler(t, "X-Staff-Key", "k", "secret")

	req := httptest.NewRequest(http.MethodPost, "/api/staff/toggle/ABCD2345?k=secret", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *reached)
}

func TestKeyAuth_HeaderWinsOverQueryParam(t *testing.T) {
	handler, reached := keyAuthHandler(t, "X-Staff-Key", "k", "secret")

	req := httptest.NewRequest(http.MethodPost, "/api/staff/toggle/ABCD2345?k=secret", nil)
	req.Header.Set("X-Staff-Key", "wrong")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *reached)
}

func TestKeyAuth_RejectsWrongOrMissingKey(t *testing.T) {
	tests := []struct {
		name   string
		header string
		target string
	}{
		{"wrong header", "nope", "/api/admin/items"},
		{"missing key", "", "/api/admin/items"},
		{"wrong query param", "", "/api/admin/items?k=nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, reached := keyAuthHandler(t, "X-Admin-Key", "k", "secret")

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.header != "" {
				req.Header.Set("X-Admin-Key", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, *reached)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Body.String(), "UNAUTHORIZED")
		})
	}
}

func TestKeyAuth_NoQueryParamConfigured(t *testing.T) {
	handler, reached := keyAuthHandler(t, "X-Admin-Key", "", "secret")

	req := httptest.NewRequest(http.MethodGet, "/api/admin/items?k=secret", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *reached)
}

func TestKeyAuth_EmptyConfiguredKeyFailsClosed(t *testing.T) {
	handler, reached := keyAuthHandler(t, "X-Admin-Key", "k", "")

	req := httptest.NewRequest(http.MethodGet, "/api/admin/items", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *reached)
}
