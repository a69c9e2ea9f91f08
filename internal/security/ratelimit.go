package security

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// RateLimiter keeps one token bucket per client IP. Idle buckets expire from
// the cache after a few windows.
type RateLimiter struct {
	visitors *cache.Cache
	limit    rate.Limit
	burst    int
}

// NewRateLimiter allows perWindow requests per window for each client, with
// bursts up to perWindow
func NewRateLimiter(perWindow int, window time.Duration) *RateLimiter {
	if perWindow <= 0 {
		perWindow = 1
	}
	return &RateLimiter{
		visitors: cache.New(3*window, 10*window),
		limit:    rate.Every(window / time.Duration(perWindow)),
		burst:    perWindow,
	}
}

// Allow checks if a request from ip should be allowed
func (rl *RateLimiter) Allow(ip string) bool {
	limiter := rate.NewLimiter(rl.limit, rl.burst)
	// Add fails when ip already has a bucket; use the stored one then
	if err := rl.visitors.Add(ip, limiter, cache.DefaultExpiration); err != nil {
		if v, found := rl.visitors.Get(ip); found {
			limiter = v.(*rate.Limiter)
		}
	}
	rl.visitors.SetDefault(ip, limiter)
	return limiter.Allow()
}

// GetClientIP extracts the client IP from the request
func GetClientIP(r *http.Request) string {
	// first hop in X-Forwarded-For is the original client
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
