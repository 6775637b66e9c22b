package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/mathews-augusto-alves/library-api/internal/apierror"

	"github.com/gin-gonic/gin"
)

// rateEntry tracks request counts per IP within a sliding window.
type rateEntry struct {
	count     int
	windowEnd time.Time
	mu        sync.Mutex
}

type rateMap struct {
	entries map[string]*rateEntry
	mu      sync.Mutex
}

func (m *rateMap) get(ip string) *rateEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[ip]
	if !ok {
		entry = &rateEntry{}
		m.entries[ip] = entry
	}
	return entry
}

func (m *rateMap) purge() {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	for ip, entry := range m.entries {
		entry.mu.Lock()
		expired := now.After(entry.windowEnd)
		entry.mu.Unlock()
		if expired {
			delete(m.entries, ip)
		}
	}
}

var (
	apiRates   = &rateMap{entries: make(map[string]*rateEntry)}
	loginRates = &rateMap{entries: make(map[string]*rateEntry)}
)

const purgeInterval = 5 * time.Minute

func init() {
	// Drop expired IPs so the maps don't grow without bound.
	go func() {
		for range time.Tick(purgeInterval) {
			apiRates.purge()
			loginRates.purge()
		}
	}()
}

func limit(m *rateMap, max int, window time.Duration, msg string) gin.HandlerFunc {
	return func(c *gin.Context) {
		entry := m.get(c.ClientIP())

		entry.mu.Lock()
		defer entry.mu.Unlock()

		now := time.Now()
		if now.After(entry.windowEnd) {
			entry.count = 0
			entry.windowEnd = now.Add(window)
		}

		entry.count++
		if entry.count > max {
			c.Header("Retry-After", entry.windowEnd.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(msg))
			return
		}
		c.Next()
	}
}

// RateLimiter is the general-purpose per-IP sliding-window limiter.
func RateLimiter(max int, window time.Duration) gin.HandlerFunc {
	return limit(apiRates, max, window, "too many requests, slow down")
}

// LoginRateLimiter limits login attempts to 20 per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	return limit(loginRates, 20, time.Minute, "too many login attempts, try again in a minute")
}
