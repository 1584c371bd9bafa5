package http

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/utenadev/gca4g/internal/httputil"
)

const (
	sweepInterval = 5 * time.Minute
	visitorIdle   = time.Hour
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// visitors keeps one token bucket per client IP.
type visitors struct {
	mu    sync.Mutex
	byIP  map[string]*visitor
	limit rate.Limit
	burst int
	now   func() time.Time
}

func newVisitors(rps float64, burst int) *visitors {
	return &visitors{
		byIP:  make(map[string]*visitor),
		limit: rate.Limit(rps),
		burst: burst,
		now:   time.Now,
	}
}

// reserve takes a token for ip. It returns zero when the request may proceed,
// otherwise how long the caller should wait. A refused request consumes nothing.
func (v *visitors) reserve(ip string) time.Duration {
	v.mu.Lock()
	defer v.mu.Unlock()

	now := v.now()
	vis, ok := v.byIP[ip]
	if !ok {
		vis = &visitor{limiter: rate.NewLimiter(v.limit, v.burst)}
		v.byIP[ip] = vis
	}
	vis.lastSeen = now

	r := vis.limiter.ReserveN(now, 1)
	if !r.OK() {
		return time.Duration(math.MaxInt64)
	}
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return delay
	}
	return 0
}

// sweep drops visitors idle for longer than idle and returns how many were dropped.
func (v *visitors) sweep(idle time.Duration) int {
	v.mu.Lock()
	defer v.mu.Unlock()

	cutoff := v.now().Add(-idle)
	dropped := 0
	for ip, vis := range v.byIP {
		if vis.lastSeen.Before(cutoff) {
			delete(v.byIP, ip)
			dropped++
		}
	}
	return dropped
}

func (v *visitors) run(ctx context.Context, logger *slog.Logger) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := v.sweep(visitorIdle); n > 0 {
				logger.Debug("rate limiter visitors swept", slog.Int("dropped", n))
			}
		}
	}
}

// RateLimitMiddleware limits each client IP to rps messages per second with
// the given burst. Refused requests get 429 and a Retry-After header in whole
// seconds, rounded up. Idle clients are forgotten until ctx is done.
func RateLimitMiddleware(ctx context.Context, rps float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	store := newVisitors(rps, burst)
	go store.run(ctx, logger)

	return func(c *gin.Context) {
		clientIP := c.ClientIP()

		wait := store.reserve(clientIP)
		if wait == 0 {
			c.Next()
			return
		}

		retryAfter := int(math.Ceil(wait.Seconds()))
		logger.Debug("rate limit exceeded",
			slog.String("client_ip", clientIP),
			slog.Int("retry_after", retryAfter))

		c.Header("Retry-After", strconv.Itoa(retryAfter))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, httputil.FailureResponse{
			Error: "too many requests, retry after the specified delay",
			Code:  "rate_limit_exceeded",
		})
	}
}
