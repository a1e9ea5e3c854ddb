package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stitchbook-dev/stitchbook/internal/types"
	"golang.org/x/time/rate"
)

const (
	maxTrackedClients = 10000
	clientIdleTimeout = 10 * time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client address.
type RateLimiter struct {
	mu      sync.Mutex
	clients  map[string]*clientLimiter
	capacity int
	limit    rate.Limit
	burst    int
	now      func() time.Time
}

// NewRateLimiter allows perMinute requests per client with the given burst.
// A non-positive perMinute disables limiting.
func NewRateLimiter(perMinute, burst int) *RateLimiter {
	limit := rate.Inf
	if perMinute > 0 {
		limit = rate.Limit(float64(perMinute) / 60)
	}
	if burst < 1 {
		burst = 1
	}

	return &RateLimiter{
		clients:  make(map[string]*clientLimiter),
		capacity: maxTrackedClients,
		limit:    limit,
		burst:    burst,
		now:      time.Now,
	}
}

func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()

	if len(rl.clients) >= rl.capacity {
		rl.prune(now)
	}

	c, ok := rl.clients[key]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[key] = c
	}
	c.lastSeen = now

	return c.limiter.AllowN(now, 1)
}

// prune drops idle clients. When every tracked client is still active the
// least recently seen one is evicted so the map stays within capacity.
func (rl *RateLimiter) prune(now time.Time) {
	var (
		oldestKey  string
		oldestSeen time.Time
	)

	for key, c := range rl.clients {
		if now.Sub(c.lastSeen) > clientIdleTimeout {
			delete(rl.clients, key)
			continue
		}
		if oldestKey == "" || c.lastSeen.Before(oldestSeen) {
			oldestKey = key
			oldestSeen = c.lastSeen
		}
	}

	if len(rl.clients) >= rl.capacity && oldestKey != "" {
		delete(rl.clients, oldestKey)
	}
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !rl.Allow(ctx.ClientIP()) {
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests", "code": types.CodeRateLimited})
			return
		}
		ctx.Next()
	}
}
