package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"fmt"
	"net/http"
	"time"

	"cinema-reservation/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// captureWriter forwards the response while keeping a copy of its body.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	cw.buf.Write(b)
	return cw.ResponseWriter.Write(b)
}

// Cache serves GET responses of public listings from Redis. Only 200 JSON
// responses are stored, for config.TTL.
func Cache(client *redis.Client, config utils.CacheConfig, logger *zap.Logger) func(http.Handler) http.Handler {
	if client == nil || !config.Enabled {
		return passThrough
	}
	ttl := config.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			key := CacheKey(config.Prefix, r)
			if body, err := client.Get(r.Context(), key).Bytes(); err == nil {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-Cache", "HIT")
				w.WriteHeader(http.StatusOK)
				w.Write(body)
				return
			}

			w.Header().Set("X-Cache", "MISS")
			cw := &captureWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(cw, r)

			if cw.status == http.StatusOK {
				if err := client.Set(context.WithoutCancel(r.Context()), key, cw.buf.Bytes(), ttl).Err(); err != nil {
					logger.Warn("Failed to store cached response", zap.Error(err), zap.String("key", key))
				}
			}
		})
	}
}

// PurgeCache drops every cached listing after a successful write, so admins
// never read their own stale data back.
func PurgeCache(client *redis.Client, config utils.CacheConfig, logger *zap.Logger) func(http.Handler) http.Handler {
	if client == nil || !config.Enabled {
		return passThrough
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}

			cw := &captureWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(cw, r)
			if cw.status >= http.StatusBadRequest {
				return
			}

			ctx := context.WithoutCancel(r.Context())
			iter := client.Scan(ctx, 0, config.Prefix+":*", 100).Iterator()
			var keys []string
			for iter.Next(ctx) {
				keys = append(keys, iter.Val())
			}
			if err := iter.Err(); err != nil {
				logger.Warn("Failed to scan cache keys", zap.Error(err))
				return
			}
			if len(keys) > 0 {
				if err := client.Del(ctx, keys...).Err(); err != nil {
					logger.Warn("Failed to purge cache", zap.Error(err))
				}
			}
		})
	}
}

// CacheKey is prefix:sha1(path?query).
func CacheKey(prefix string, r *http.Request) string {
	sum := sha1.Sum([]byte(r.URL.Path + "?" + r.URL.RawQuery))
	return fmt.Sprintf("%s:%x", prefix, sum)
}
