package server

import (
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// rateLimiter applies one token bucket to every request. The API is called
// on each keystroke of a price field, so the burst is what matters most.
type rateLimiter struct {
	logger  *zap.Logger
	limiter *rate.Limiter
}

// newRateLimiter builds a limiter allowing perMinute sustained requests with
// the given burst. A perMinute of zero disables limiting.
func newRateLimiter(logger *zap.Logger, perMinute, burst int) *rateLimiter {
	if logger == nil {
		logger = zap.NewNop()
	}
	limit := rate.Inf
	if perMinute > 0 {
		limit = rate.Limit(float64(perMinute) / 60.0)
	}
	if burst <= 0 {
		burst = 1
	}
	return &rateLimiter{logger: logger, limiter: rate.NewLimiter(limit, burst)}
}

// Wrap returns next guarded by the limiter.
func (l *rateLimiter) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.limiter.Allow() {
			l.logger.Warn("rate limit exceeded",
				zap.String("op", "server.rateLimiter"),
				zap.String("path", r.URL.Path),
				zap.String("remote", r.RemoteAddr),
			)
			w.Header().Set("Retry-After", "1")
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
