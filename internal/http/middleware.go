package http

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tazhibayda/posts-service/internal/domain"
	"github.com/tazhibayda/posts-service/internal/log"
	"github.com/tazhibayda/posts-service/internal/metrics"
	"github.com/tazhibayda/posts-service/internal/repo"
	"github.com/tazhibayda/posts-service/internal/security"
	"go.uber.org/zap"
)

const authUserKey = "authUser"

// AuthUser is the resolved viewer identity taken from the access token.
// It is trusted as-is; credential verification happened upstream.
type AuthUser struct {
	ID      string
	Name    string
	Surname string
	Avatar  string
}

func (u AuthUser) Owner() domain.Owner {
	return domain.Owner{ID: u.ID, Name: u.Name, Surname: u.Surname, Avatar: u.Avatar}
}

func AuthJWT(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(strings.ToLower(h), "bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer"})
			return
		}
		tok := strings.TrimSpace(h[len("Bearer "):])
		claims, err := security.ParseAccess(secret, tok)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		uid := claims.UID
		if uid == "" && claims.Subject != "" {
			uid = claims.Subject
		}
		if uid == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no uid"})
			return
		}

		c.Set(authUserKey, AuthUser{
			ID:      uid,
			Name:    claims.Name,
			Surname: claims.Surname,
			Avatar:  claims.Avatar,
		})
		c.Set("uid", uid)
		c.Next()
	}
}

func viewer(c *gin.Context) AuthUser {
	au, _ := c.Get(authUserKey)
	u, _ := au.(AuthUser)
	return u
}

type bucket struct {
	tokens  int
	updated time.Time
}

// RateLimiter is the in-process fallback used when no Redis is configured.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	rate    int
	window  time.Duration
}

func NewRateLimiter(rate int, window time.Duration) *RateLimiter {
	return &RateLimiter{buckets: make(map[string]*bucket), rate: rate, window: window}
}

func (rl *RateLimiter) Allow(key string) bool {
	now := time.Now()
	rl.mu.Lock()
	defer rl.mu.Unlock()
	b, ok := rl.buckets[key]
	if !ok || now.Sub(b.updated) > rl.window {
		rl.buckets[key] = &bucket{tokens: 1, updated: now}
		return true
	}
	if b.tokens < rl.rate {
		b.tokens++
		b.updated = now
		return true
	}
	return false
}

func ClientIP(c *gin.Context) string {
	ip := c.ClientIP()
	if ip == "" {
		ip = "unknown"
	}
	host, _, err := net.SplitHostPort(ip)
	if err == nil && host != "" {
		return host
	}
	return ip
}

// RateLimitWrites caps mutating requests per caller per minute. Keyed by uid
// when authenticated, by client IP otherwise. Backed by Redis when available,
// by the in-process limiter when not.
func RateLimitWrites(rds *repo.Redis, perMin int) gin.HandlerFunc {
	if perMin <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	local := NewRateLimiter(perMin, time.Minute)
	return func(c *gin.Context) {
		key := c.GetString("uid")
		if key == "" {
			key = ClientIP(c)
		}
		allowed := true
		if rds != nil {
			ok, err := rds.Allow(c.Request.Context(), "rl:posts:"+key, perMin, time.Minute)
			if err != nil {
				// limiter outage must not take writes down with it
				log.L().Warn("rate limiter unavailable", zap.Error(err))
			} else {
				allowed = ok
			}
		} else {
			allowed = local.Allow(key)
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}

// Observe records prometheus metrics and a zap access log line per request.
func Observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		metrics.InFlight.Inc()
		c.Next()
		metrics.InFlight.Dec()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		elapsed := time.Since(start)
		status := c.Writer.Status()
		metrics.RequestsTotal.WithLabelValues(route, c.Request.Method, strconv.Itoa(status)).Inc()
		metrics.ReqDuration.WithLabelValues(route, c.Request.Method).Observe(elapsed.Seconds())

		log.L().Info("http",
			zap.String("route", route),
			zap.String("method", c.Request.Method),
			zap.Int("status", status),
			zap.Duration("took", elapsed),
		)
	}
}
