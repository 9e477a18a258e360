package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/AnshRaj112/diary-backend/pkg/clientip"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// WriteRateLimitWindow is the fixed window entry writes are counted in.
	WriteRateLimitWindow = 60 * time.Second
	// WriteRateLimitMaxRequests is how many writes one caller may make per window.
	WriteRateLimitMaxRequests = 120
	// RateLimitKeyPrefix is the Redis key prefix for write counters.
	RateLimitKeyPrefix = "ratelimit:write:"
)

// WriteRateLimit counts mutating requests per session user (or IP for anonymous callers) in
// Redis, so the limit holds across instances. Reads pass straight through. Redis failures
// fail open.
func WriteRateLimit(client *redis.Client, trustProxy bool, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			caller := "ip:" + clientip.RealClientIP(r, trustProxy)
			if userID, ok := UserIDFromContext(r.Context()); ok {
				caller = "user:" + userID.String()
			}

			count, err := incrWindow(r.Context(), client, RateLimitKeyPrefix+caller)
			if err != nil {
				log.Warn("write rate limit unavailable", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			remaining := WriteRateLimitMaxRequests - int(count)
			if remaining < 0 {
				remaining = 0
			}
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(WriteRateLimitMaxRequests))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

			if count > WriteRateLimitMaxRequests {
				w.Header().Set("Retry-After", strconv.Itoa(int(WriteRateLimitWindow.Seconds())))
				tooManyRequests(w, "Rate limit exceeded. Please try again later.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// incrWindow bumps the counter and starts its window on the first hit.
func incrWindow(ctx context.Context, client *redis.Client, key string) (int64, error) {
	count, err := client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		if err := client.Expire(ctx, key, WriteRateLimitWindow).Err(); err != nil {
			return 0, err
		}
	}
	return count, nil
}
