package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"ganpati/internal/i18n"
)

// sweepThreshold bounds the window map; expired windows are dropped once it
// is exceeded.
const sweepThreshold = 4096

type window struct {
	count int
	reset time.Time
}

// fixedWindow counts requests per key in fixed windows of length per.
type fixedWindow struct {
	mu      sync.Mutex
	limit   int
	per     time.Duration
	windows map[string]*window
}

func newFixedWindow(limit int, per time.Duration) *fixedWindow {
	return &fixedWindow{limit: limit, per: per, windows: make(map[string]*window)}
}

// allow records a hit for key. When the key is over its limit it returns
// false and the time left until the window resets.
func (f *fixedWindow) allow(key string, now time.Time) (bool, time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.windows) > sweepThreshold {
		for k, w := range f.windows {
			if now.After(w.reset) {
				delete(f.windows, k)
			}
		}
	}
	w, ok := f.windows[key]
	if !ok || now.After(w.reset) {
		w = &window{reset: now.Add(f.per)}
		f.windows[key] = w
	}
	if w.count >= f.limit {
		return false, w.reset.Sub(now)
	}
	w.count++
	return true, 0
}

// RateLimit allows limit donation attempts per client IP in each window of
// length per. Rejected requests get a localized 429 with Retry-After.
func RateLimit(limit int, per time.Duration) func(http.Handler) http.Handler {
	fw := newFixedWindow(limit, per)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, retry := fw.allow(ClientIP(r), time.Now())
			if !ok {
				w.Header().Set("Retry-After", retryAfterSeconds(retry))
				writeError(w, http.StatusTooManyRequests, i18n.T(LocaleFromContext(r.Context()), i18n.RateLimited))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func retryAfterSeconds(d time.Duration) string {
	secs := int(d.Round(time.Second) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}
