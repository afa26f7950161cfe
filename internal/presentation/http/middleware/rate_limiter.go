package middleware

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/pos-api/internal/config"
	"github.com/sangkips/pos-api/internal/presentation/http/dto/response"
	"golang.org/x/time/rate"
)

// BusinessRateLimiter limits requests per business so one busy till cannot
// starve the others. Users without a business are limited per user.
type BusinessRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	rate     rate.Limit
	burst    int
	entryTTL time.Duration
	now      func() time.Time
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewBusinessRateLimiter allows cfg.Requests requests per cfg.Duration seconds,
// with bursts of up to cfg.Requests
func NewBusinessRateLimiter(cfg config.RateLimitConfig) *BusinessRateLimiter {
	requests, seconds := cfg.Requests, cfg.Duration
	if requests <= 0 {
		requests = 100
	}
	if seconds <= 0 {
		seconds = 60
	}
	return &BusinessRateLimiter{
		limiters: make(map[string]*limiterEntry),
		rate:     rate.Limit(float64(requests) / float64(seconds)),
		burst:    requests,
		entryTTL: 10 * time.Minute,
		now:      time.Now,
	}
}

// Run drops limiters unused for a while until ctx is done
func (rl *BusinessRateLimiter) Run(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.cleanup()
		}
	}
}

func (rl *BusinessRateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, ok := rl.limiters[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[key] = entry
	}
	entry.lastSeen = rl.now()
	return entry.limiter
}

func (rl *BusinessRateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-rl.entryTTL)
	for key, entry := range rl.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(rl.limiters, key)
		}
	}
}

// Middleware applies the limiter. It must run after AuthMiddleware.
func (rl *BusinessRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := limiterKey(c)
		if key == "" {
			c.Next()
			return
		}

		limiter := rl.limiter(key)
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.burst))
		if !limiter.Allow() {
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", "1")
			response.TooManyRequests(c)
			c.Abort()
			return
		}
		c.Header("X-RateLimit-Remaining", strconv.Itoa(int(limiter.Tokens())))

		c.Next()
	}
}

func limiterKey(c *gin.Context) string {
	if id, ok := c.Get("business_id"); ok {
		if s, ok := id.(interface{ String() string }); ok {
			return "business:" + s.String()
		}
	}
	if id, ok := c.Get("user_id"); ok {
		if s, ok := id.(interface{ String() string }); ok {
			return "user:" + s.String()
		}
	}
	return ""
}
