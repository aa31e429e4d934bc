package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"cinema-reservation/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// tokenBucket refills KEYS[1] by ARGV[3] tokens every ARGV[4] ms up to
// ARGV[2] and takes one token. Returns {allowed, remaining, retry_after_ms}.
var tokenBucket = redis.NewScript(`
	local key = KEYS[1]
	local now_ms = tonumber(ARGV[1])
	local capacity = tonumber(ARGV[2])
	local refill_tokens = tonumber(ARGV[3])
	local interval_ms = tonumber(ARGV[4])
	local ttl_seconds = tonumber(ARGV[5])

	local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
	local tokens = tonumber(state[1])
	local last_refill = tonumber(state[2])
	if tokens == nil or last_refill == nil then
		tokens = capacity
		last_refill = now_ms
	end

	if interval_ms > 0 and refill_tokens > 0 then
		local intervals = math.floor(math.max(0, now_ms - last_refill) / interval_ms)
		if intervals > 0 then
			tokens = math.min(capacity, tokens + intervals * refill_tokens)
			last_refill = last_refill + intervals * interval_ms
		end
	end

	local allowed = 0
	local retry_after_ms = 0
	if tokens > 0 then
		allowed = 1
		tokens = tokens - 1
	else
		retry_after_ms = math.max(0, interval_ms - (now_ms - last_refill))
	end

	redis.call('HSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
	redis.call('EXPIRE', key, ttl_seconds)
	return { allowed, tokens, retry_after_ms }
`)

// RateLimit throttles each client IP per route with a Redis token bucket.
// Without a client, or when Redis fails, requests pass through.
func RateLimit(client *redis.Client, config utils.RateLimitConfig, logger *zap.Logger) func(http.Handler) http.Handler {
	if client == nil || !config.Enabled || config.Capacity <= 0 {
		return passThrough
	}

	ttl := int64(config.Interval/time.Second) * int64(config.Capacity)
	if ttl < 60 {
		ttl = 60
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := config.Prefix + ":" + clientIP(r) + ":" + r.Method + ":" + r.URL.Path

			result, err := tokenBucket.Run(r.Context(), client, []string{key},
				time.Now().UnixMilli(),
				config.Capacity,
				config.Refill,
				config.Interval.Milliseconds(),
				ttl,
			).Int64Slice()
			if err != nil || len(result) != 3 {
				logger.Warn("Rate limiter unavailable", zap.Error(err), zap.String("key", key))
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(config.Capacity))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(result[1], 10))

			if result[0] != 1 {
				retry := int(math.Ceil(float64(result[2]) / 1000))
				w.Header().Set("Retry-After", strconv.Itoa(retry))
				logger.Warn("Rate limit exceeded", zap.String("key", key))
				utils.ResponseTooManyRequests(w, "Too many requests, retry later")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func passThrough(next http.Handler) http.Handler { return next }
