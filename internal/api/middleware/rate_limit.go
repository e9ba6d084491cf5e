package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/d60-Lab/commentlog/config"
	"github.com/d60-Lab/commentlog/pkg/response"
)

type limiterEntry struct {
	limiter *rate.Limiter
	expires time.Time
}

// RateLimiter 按调用方（未认证时按 IP）的令牌桶
type RateLimiter struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	limiters map[string]*limiterEntry
}

func NewRateLimiter(cfg config.RateLimitConfig) *RateLimiter {
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{limit: rate.Limit(cfg.RPS), burst: burst, limiters: map[string]*limiterEntry{}}
}

func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if who, ok := Caller(c); ok {
			key = who.String()
		}
		if !l.get(key).Allow() {
			response.TooManyRequests(c)
			return
		}
		c.Next()
	}
}

func (l *RateLimiter) get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	for k, e := range l.limiters {
		if now.After(e.expires) {
			delete(l.limiters, k)
		}
	}
	e, ok := l.limiters[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[key] = e
	}
	e.expires = now.Add(5 * time.Minute)
	return e.limiter
}
