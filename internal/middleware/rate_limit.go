// internal/middleware/rate_limit.go
package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/norruva/dpp-backend/internal/i18n"
	"github.com/norruva/dpp-backend/internal/utils"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type RateLimiter struct {
	visitors map[string]*visitor
	mtx      sync.Mutex
	rate     rate.Limit
	burst    int
	code     string
	message  string
	done     chan struct{}
}

const (
	cleanupInterval = time.Minute
	visitorTTL      = 3 * time.Minute
)

// NewRateLimiter returns a per client limiter. Idle visitors are swept every
// minute until ctx is cancelled.
func NewRateLimiter(ctx context.Context, r rate.Limit, b int) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     r,
		burst:    b,
		code:     "RATE_LIMITED",
		message:  i18n.KeyRateLimitExceeded,
		done:     make(chan struct{}),
	}

	go rl.cleanupVisitors(ctx)

	return rl
}

// Done is closed once the cleanup goroutine has exited.
func (rl *RateLimiter) Done() <-chan struct{} {
	return rl.done
}

func (rl *RateLimiter) cleanupVisitors(ctx context.Context) {
	defer close(rl.done)
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			rl.sweep(now)
		}
	}
}

func (rl *RateLimiter) sweep(now time.Time) {
	rl.mtx.Lock()
	defer rl.mtx.Unlock()
	for ip, v := range rl.visitors {
		if now.Sub(v.lastSeen) > visitorTTL {
			delete(rl.visitors, ip)
		}
	}
}

func (rl *RateLimiter) getVisitor(ip string) *rate.Limiter {
	rl.mtx.Lock()
	defer rl.mtx.Unlock()

	v, exists := rl.visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(rl.rate, rl.burst)
		rl.visitors[ip] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		limiter := rl.getVisitor(ip)

		if !limiter.Allow() {
			lang := utils.GetLangFromContext(c)
			utils.ErrorResponse(c, http.StatusTooManyRequests, rl.code, i18n.T(lang, rl.message), nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

// NewAIRateLimiter limits the model backed endpoints to perMinute requests
// per client.
func NewAIRateLimiter(ctx context.Context, perMinute int) *RateLimiter {
	if perMinute < 1 {
		perMinute = 1
	}
	rl := NewRateLimiter(ctx, rate.Every(time.Minute/time.Duration(perMinute)), perMinute)
	rl.code = "AI_RATE_LIMITED"
	rl.message = i18n.KeyAIRateLimited
	return rl
}

// GeneralRateLimit allows perSecond requests per client with a burst of
// twice that.
func GeneralRateLimit(ctx context.Context, perSecond int) gin.HandlerFunc {
	if perSecond < 1 {
		perSecond = 10
	}
	return NewRateLimiter(ctx, rate.Limit(perSecond), 2*perSecond).Middleware()
}
