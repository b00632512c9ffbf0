package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"famlink/internal/models"
	"famlink/internal/security"
	"famlink/internal/service"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const UserContextKey ContextKey = "user"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	authService *service.AuthService

	mu       sync.Mutex
	limiters map[string]*rateLimiterEntry
}

type rateLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(authService *service.AuthService) *Middleware {
	return &Middleware{
		authService: authService,
		limiters:    make(map[string]*rateLimiterEntry),
	}
}

// RequireAuth validates the Bearer token and puts the authenticated
// user in the request context
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			respondError(w, http.StatusUnauthorized, "unauthenticated", "Authentication required", nil)
			return
		}

		user, err := m.authService.ValidateToken(token)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "unauthenticated", "Invalid or expired token", nil)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next(w, r.WithContext(ctx))
	}
}

// UserFromContext returns the authenticated user, or nil
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(UserContextKey).(*models.User)
	return user
}

// RateLimit limits requests per client IP
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := security.GetClientIP(r)
		if !m.limiterFor(ip).Allow() {
			respondError(w, http.StatusTooManyRequests, "rate_limited", "Too many requests", nil)
			return
		}
		next(w, r)
	}
}

// limiterFor returns the per-IP limiter, evicting entries idle for an
// hour so the map does not grow without bound
func (m *Middleware) limiterFor(ip string) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for key, entry := range m.limiters {
		if now.Sub(entry.lastSeen) > time.Hour {
			delete(m.limiters, key)
		}
	}

	entry, ok := m.limiters[ip]
	if !ok {
		entry = &rateLimiterEntry{limiter: rate.NewLimiter(rate.Limit(10), 30)}
		m.limiters[ip] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s %v", security.GetClientIP(r), r.Method, r.URL.Path, time.Since(start))
	})
}
