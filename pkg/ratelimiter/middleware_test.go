package ratelimiter_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/republicadrc/memberkit/pkg/ratelimiter"
)

func TestMiddleware(t *testing.T) {
	t.Parallel()

	bucket := newBucket(t, ratelimiter.Config{
		Capacity:       2,
		RefillRate:     2,
		RefillInterval: 10 * time.Minute,
	})

	handler := ratelimiter.Middleware(bucket, ratelimiter.ByClientIP())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
	)

	serve := func(remoteAddr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	rec := serve("10.0.0.1:1234")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	require.Equal(t, "1", rec.Header().Get("X-RateLimit-Remaining"))

	require.Equal(t, http.StatusOK, serve("10.0.0.1:1234").Code)

	rec = serve("10.0.0.1:9999")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	require.NotEmpty(t, rec.Header().Get("Retry-After"))

	// A different client is unaffected.
	require.Equal(t, http.StatusOK, serve("10.0.0.2:1234").Code)
}
