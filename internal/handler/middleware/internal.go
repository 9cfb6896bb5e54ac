package middleware

import (
	"crypto/subtle"
	"net/http"
	"sync"
	"time"

	"ekicare/internal/handler/httperr"
	"ekicare/internal/pkg/clock"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const InternalTokenHeader = "X-Internal-Token"

// RequireInternalToken guards maintenance endpoints called by schedulers.
func RequireInternalToken(token string) gin.HandlerFunc {
	expected := []byte(token)
	return func(c *gin.Context) {
		got := []byte(c.GetHeader(InternalTokenHeader))
		if len(expected) == 0 || subtle.ConstantTimeCompare(got, expected) != 1 {
			httperr.AbortWithError(c, http.StatusUnauthorized, errInternalToken, "Unauthorized", nil)
			return
		}
		c.Next()
	}
}

// A bucket left untouched this long is full again and can be dropped.
const clientIdleTTL = 2 * time.Minute

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ClientRateLimiter hands out one token bucket per client IP. A bucket holds
// one minute's worth of requests. Idle buckets are pruned on access.
type ClientRateLimiter struct {
	mu        sync.Mutex
	clients   map[string]*clientBucket
	limit     rate.Limit
	burst     int
	clock     clock.Clock
	lastPrune time.Time
}

func NewClientRateLimiter(perMinute int, clk clock.Clock) *ClientRateLimiter {
	if perMinute <= 0 {
		perMinute = 1
	}
	return &ClientRateLimiter{
		clients:   make(map[string]*clientBucket),
		limit:     rate.Every(time.Minute / time.Duration(perMinute)),
		burst:     perMinute,
		clock:     clk,
		lastPrune: clk.Now(),
	}
}

func (l *ClientRateLimiter) limiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	if now.Sub(l.lastPrune) >= clientIdleTTL {
		for k, b := range l.clients {
			if now.Sub(b.lastSeen) >= clientIdleTTL {
				delete(l.clients, k)
			}
		}
		l.lastPrune = now
	}

	b, ok := l.clients[key]
	if !ok {
		b = &clientBucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = b
	}
	b.lastSeen = now
	return b.limiter
}

// Clients reports how many client buckets are currently tracked.
func (l *ClientRateLimiter) Clients() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

func (l *ClientRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.limiter(c.ClientIP()).Allow() {
			c.Header("Retry-After", "60")
			httperr.AbortWithError(c, http.StatusTooManyRequests, errRateLimited, "Too many requests", nil)
			return
		}
		c.Next()
	}
}
