package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/whitebrim/melanoscan-backend/internal/database"
	"github.com/whitebrim/melanoscan-backend/pkg/clientip"
)

const (
	// RateLimitWindow is the per-IP counting window.
	RateLimitWindow = 60 * time.Second
	// RateLimitMaxRequests is the maximum number of requests per window.
	RateLimitMaxRequests = 60
	// rateLimitKeyPrefix is the Redis key prefix for rate limiting.
	rateLimitKeyPrefix = "ratelimit:"
)

// RateLimitMiddleware limits requests per client IP using a Redis
// counter. INCR with an expiry set on the first hit keeps concurrent
// requests from losing counts. Redis failures fail open.
func RateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.Background()
		key := rateLimitKeyPrefix + clientip.FromRequest(r)

		count, err := database.RedisClient.Incr(ctx, key).Result()
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		if count == 1 {
			database.RedisClient.Expire(ctx, key, RateLimitWindow)
		}

		if count > RateLimitMaxRequests {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", strconv.Itoa(int(RateLimitWindow.Seconds())))
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"success":false,"message":"Too many requests. Please try again later."}`))
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(RateLimitMaxRequests))
		w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(RateLimitMaxRequests-count, 10))

		next.ServeHTTP(w, r)
	})
}
