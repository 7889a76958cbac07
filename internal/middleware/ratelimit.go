package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/lumiere-studio/salon-booking/internal/httperr"
)

// Buckets refill fully within a minute, so one idle this long carries no state
// worth keeping.
const limiterIdleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter hands out one token bucket per client IP. Idle buckets are
// evicted as new requests come in.
type RateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*visitor
	lastSweep time.Time
	now       func() time.Time

	every rate.Limit
	burst int
	log   *zap.Logger
}

// NewRateLimiter allows perMinute requests per IP, all of which may arrive at
// once. perMinute <= 0 disables limiting.
func NewRateLimiter(perMinute int, log *zap.Logger) *RateLimiter {
	rl := &RateLimiter{
		limiters: make(map[string]*visitor),
		now:      time.Now,
		every:    rate.Inf,
		burst:    1,
		log:      log,
	}
	if perMinute > 0 {
		rl.every = rate.Every(time.Minute / time.Duration(perMinute))
		rl.burst = perMinute
	}
	return rl
}

func (rl *RateLimiter) limiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) >= time.Minute {
		rl.sweep(now)
	}

	v, ok := rl.limiters[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.every, rl.burst)}
		rl.limiters[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

// sweep drops idle visitors. Caller holds mu.
func (rl *RateLimiter) sweep(now time.Time) {
	for ip, v := range rl.limiters {
		if now.Sub(v.lastSeen) > limiterIdleTTL {
			delete(rl.limiters, ip)
		}
	}
	rl.lastSweep = now
}

func (rl *RateLimiter) size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limiters)
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !rl.limiter(ip).Allow() {
			rl.log.Warn("rate limit exceeded", zap.String("ip", ip), zap.String("path", c.FullPath()))
			httperr.Abort(c, http.StatusTooManyRequests, "rate_limited", "Too many requests, try again later")
			return
		}
		c.Next()
	}
}
