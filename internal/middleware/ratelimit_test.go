package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pet-tracker/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestLimitKey(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/me/photo", nil)
	r.RemoteAddr = "10.0.0.7:51234"
	assert.Equal(t, "ip:10.0.0.7", limitKey(r))

	r.RemoteAddr = "10.0.0.7:60001"
	assert.Equal(t, "ip:10.0.0.7", limitKey(r))

	r.RemoteAddr = "10.0.0.7"
	assert.Equal(t, "ip:10.0.0.7", limitKey(r))

	r = r.WithContext(WithClaims(r.Context(), auth.Claims{UserID: "u1"}))
	assert.Equal(t, "user:u1", limitKey(r))
}

func TestRateLimit_SameHostSharesBucket(t *testing.T) {
	h := RateLimit(1, 1)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 2)
	for _, addr := range []string{"10.0.0.7:1111", "10.0.0.7:2222"} {
		r := httptest.NewRequest(http.MethodPost, "/posts", nil)
		r.RemoteAddr = addr
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestKeyedLimiter_PrunesIdleKeys(t *testing.T) {
	now := time.Date(2024, 12, 15, 9, 0, 0, 0, time.UTC)
	k := newKeyedLimiter(rate.Every(time.Second), 1)
	k.now = func() time.Time { return now }

	k.get("ip:a")
	k.get("ip:b")
	assert.Len(t, k.byKey, 2)

	now = now.Add(5 * time.Minute)
	k.get("ip:b")

	now = now.Add(limiterIdleTTL)
	k.get("ip:c")

	assert.NotContains(t, k.byKey, "ip:a")
	assert.Contains(t, k.byKey, "ip:b")
	assert.Contains(t, k.byKey, "ip:c")
}
