package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"go-agency-backend/internal/delivery/http/response"
	"go-agency-backend/pkg/logger"
	appredis "go-agency-backend/pkg/redis"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Key prefix for Redis
	KeyPrefix string
}

// rateLimitEntry tracks request count for a key (in-memory fallback)
type rateLimitEntry struct {
	mu      sync.Mutex
	count   int
	resetAt time.Time
}

var (
	rateLimitStore = sync.Map{}
	cleanupOnce    sync.Once
)

// Atomic increment with TTL on first set.
// KEYS[1] = counter key, ARGV[1] = TTL in seconds
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return count
`

// startCleanup evicts expired in-memory entries in the background
func startCleanup() {
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		for range ticker.C {
			now := time.Now()
			rateLimitStore.Range(func(key, value interface{}) bool {
				entry := value.(*rateLimitEntry)
				entry.mu.Lock()
				if now.After(entry.resetAt) {
					rateLimitStore.Delete(key)
				}
				entry.mu.Unlock()
				return true
			})
		}
	}()
}

// memoryIncrement bumps the per-key counter in the in-memory store.
func memoryIncrement(key string, window time.Duration) int {
	now := time.Now()
	actual, _ := rateLimitStore.LoadOrStore(key, &rateLimitEntry{resetAt: now.Add(window)})
	entry := actual.(*rateLimitEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if now.After(entry.resetAt) {
		entry.count = 0
		entry.resetAt = now.Add(window)
	}
	entry.count++
	return entry.count
}

// RateLimit throttles requests per client IP. Redis backs the counter when
// configured so the limit holds across instances; otherwise an in-memory
// store covers the single-instance case. Redis errors fail open onto the
// memory store rather than rejecting legitimate submissions.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	cleanupOnce.Do(startCleanup)
	script := goredis.NewScript(rateLimitLuaScript)

	return func(c *gin.Context) {
		key := fmt.Sprintf("%s%s", cfg.KeyPrefix, c.ClientIP())

		var count int
		if client := appredis.Client(); client != nil {
			n, err := script.Run(c.Request.Context(), client, []string{key}, int(cfg.Window.Seconds())).Int()
			if err != nil {
				logger.Log.Warn("rate limit redis error, using in-memory fallback", "error", err)
				count = memoryIncrement(key, cfg.Window)
			} else {
				count = n
			}
		} else {
			count = memoryIncrement(key, cfg.Window)
		}

		if count > cfg.Limit {
			response.Error(c, http.StatusTooManyRequests, "Too many requests. Please try again later.")
			c.Abort()
			return
		}

		c.Next()
	}
}
