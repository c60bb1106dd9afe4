package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	limiterIdleTTL = 10 * time.Minute
	pruneEvery     = time.Minute
)

// RateLimit limita por usuario (claims) o por IP cuando no hay claims.
// perMinute requests sostenidos, con ráfaga de burst.
func RateLimit(perMinute, burst int) func(http.Handler) http.Handler {
	lim := newKeyedLimiter(rate.Every(time.Minute/time.Duration(perMinute)), burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !lim.get(limitKey(r)).Allow() {
				w.Header().Set("Retry-After", "60")
				http.Error(w, "too many requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// limitKey usa el usuario si hay claims; si no, el host de RemoteAddr sin puerto.
func limitKey(r *http.Request) string {
	if c, ok := GetClaims(r.Context()); ok && c.UserID != "" {
		return "user:" + c.UserID
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}

type limiterEntry struct {
	lim  *rate.Limiter
	seen time.Time
}

// keyedLimiter descarta los limiters sin uso hace más de limiterIdleTTL.
type keyedLimiter struct {
	mu        sync.Mutex
	every     rate.Limit
	burst     int
	byKey     map[string]*limiterEntry
	lastPrune time.Time
	now       func() time.Time
}

func newKeyedLimiter(every rate.Limit, burst int) *keyedLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &keyedLimiter{
		every: every,
		burst: burst,
		byKey: make(map[string]*limiterEntry),
		now:   time.Now,
	}
}

func (k *keyedLimiter) get(key string) *rate.Limiter {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.now()
	if now.Sub(k.lastPrune) >= pruneEvery {
		k.prune(now)
	}

	e, ok := k.byKey[key]
	if !ok {
		e = &limiterEntry{lim: rate.NewLimiter(k.every, k.burst)}
		k.byKey[key] = e
	}
	e.seen = now
	return e.lim
}

func (k *keyedLimiter) prune(now time.Time) {
	for key, e := range k.byKey {
		if now.Sub(e.seen) > limiterIdleTTL {
			delete(k.byKey, key)
		}
	}
	k.lastPrune = now
}
