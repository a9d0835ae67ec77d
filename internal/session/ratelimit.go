package session

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter caps how many write requests one client IP may send within a
// window. A client that hits the cap is locked out until the lockout expires.
type RateLimiter struct {
	mu              sync.RWMutex
	clients         map[string]*requestRecord
	maxRequests     int
	windowDuration  time.Duration
	lockoutDuration time.Duration
	cleanupInterval time.Duration
	stopCleanup     chan struct{}
	stopOnce        sync.Once
	now             func() time.Time
}

type requestRecord struct {
	count       int
	windowStart time.Time
	lockedUntil time.Time
}

// RateLimitConfig contains configuration for the rate limiter.
type RateLimitConfig struct {
	MaxRequests     int           // Requests per window before lockout (default: 60)
	WindowDuration  time.Duration // Counting window (default: 1m)
	LockoutDuration time.Duration // Lockout after the cap is hit (default: 1m)
	CleanupInterval time.Duration // How often expired records are dropped (default: 5m)
}

// DefaultRateLimitConfig returns the limits used for book submissions.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		MaxRequests:     60,
		WindowDuration:  time.Minute,
		LockoutDuration: time.Minute,
		CleanupInterval: 5 * time.Minute,
	}
}

// NewRateLimiter creates a rate limiter and starts its cleanup loop.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	defaults := DefaultRateLimitConfig()
	if cfg.MaxRequests <= 0 {
		cfg.MaxRequests = defaults.MaxRequests
	}
	if cfg.WindowDuration <= 0 {
		cfg.WindowDuration = defaults.WindowDuration
	}
	if cfg.LockoutDuration <= 0 {
		cfg.LockoutDuration = defaults.LockoutDuration
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = defaults.CleanupInterval
	}

	rl := &RateLimiter{
		clients:         make(map[string]*requestRecord),
		maxRequests:     cfg.MaxRequests,
		windowDuration:  cfg.WindowDuration,
		lockoutDuration: cfg.LockoutDuration,
		cleanupInterval: cfg.CleanupInterval,
		stopCleanup:     make(chan struct{}),
		now:             time.Now,
	}

	go rl.cleanupLoop()

	return rl
}

// Stop stops the background cleanup goroutine. Safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCleanup) })
}

// Allow counts one request from ip and reports whether it may proceed.
// When it may not, retryAfter says how long the client stays locked out.
func (rl *RateLimiter) Allow(ip string) (bool, time.Duration) {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	record, exists := rl.clients[ip]
	if !exists {
		record = &requestRecord{windowStart: now}
		rl.clients[ip] = record
	}

	if !record.lockedUntil.IsZero() {
		if now.Before(record.lockedUntil) {
			return false, record.lockedUntil.Sub(now)
		}
		record.count = 0
		record.windowStart = now
		record.lockedUntil = time.Time{}
	}

	if now.Sub(record.windowStart) > rl.windowDuration {
		record.count = 0
		record.windowStart = now
	}

	record.count++
	if record.count > rl.maxRequests {
		record.lockedUntil = now.Add(rl.lockoutDuration)
		return false, rl.lockoutDuration
	}

	return true, 0
}

// Reset forgets everything recorded for ip.
func (rl *RateLimiter) Reset(ip string) {
	rl.mu.Lock()
	delete(rl.clients, ip)
	rl.mu.Unlock()
}

// Tracked returns how many clients currently have a record.
func (rl *RateLimiter) Tracked() int {
	rl.mu.RLock()
	defer rl.mu.RUnlock()
	return len(rl.clients)
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCleanup:
			return
		}
	}
}

// cleanup drops records whose window and lockout have both expired.
func (rl *RateLimiter) cleanup() {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for ip, record := range rl.clients {
		windowExpired := now.Sub(record.windowStart) > rl.windowDuration
		lockoutExpired := record.lockedUntil.IsZero() || now.After(record.lockedUntil)

		if windowExpired && lockoutExpired {
			delete(rl.clients, ip)
		}
	}
}

// Middleware limits POST requests per client IP. Other methods pass through.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		allowed, retryAfter := rl.Allow(c.ClientIP())
		if allowed {
			c.Next()
			return
		}

		seconds := int(retryAfter.Round(time.Second) / time.Second)
		if seconds < 1 {
			seconds = 1
		}
		c.Header("Retry-After", fmt.Sprintf("%d", seconds))

		if strings.HasPrefix(c.Request.URL.Path, "/api/") || strings.Contains(c.GetHeader("Accept"), "application/json") {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "too many submissions",
				"retry_after": retryAfter.String(),
			})
			return
		}
		c.String(http.StatusTooManyRequests, "Too many submissions, try again in %d seconds", seconds)
		c.Abort()
	}
}
