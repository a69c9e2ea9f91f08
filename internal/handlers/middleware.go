package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"financecoach/internal/backend"
	"financecoach/internal/models"
	"financecoach/internal/security"
	"financecoach/internal/service"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	UserContextKey    ContextKey = "user"
	VisitorContextKey ContextKey = "visitor"
)

// visitorCookieLifetime keeps a visitor's quiz and CSRF identity stable
// across browser restarts
const visitorCookieLifetime = 365 * 24 * time.Hour

// Middleware holds dependencies for middleware functions
type Middleware struct {
	authService *service.AuthService
	csrf        *security.CSRFGenerator
	limiter     *security.RateLimiter
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(authService *service.AuthService, csrf *security.CSRFGenerator, limiter *security.RateLimiter) *Middleware {
	return &Middleware{
		authService: authService,
		csrf:        csrf,
		limiter:     limiter,
	}
}

// Visitor gives every browser a stable anonymous ID. Quiz sessions and CSRF
// tokens hang off it, so it exists before login.
func (m *Middleware) Visitor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		visitorID := ""
		if cookie, err := r.Cookie(VisitorCookieName); err == nil && cookie.Value != "" {
			visitorID = cookie.Value
		} else {
			visitorID = security.GenerateSessionID()
			http.SetCookie(w, security.CreateSessionCookie(r, VisitorCookieName, visitorID, time.Now().Add(visitorCookieLifetime)))
		}

		ctx := context.WithValue(r.Context(), VisitorContextKey, visitorID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// LoadUser attaches the logged-in learner, if any, to the request. Pages work
// for anonymous visitors too; RequireAuth guards the ones that do not.
func (m *Middleware) LoadUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		user, err := m.authService.ValidateSession(cookie.Value)
		if err != nil {
			http.SetCookie(w, security.CreateDeleteCookie(r, SessionCookieName))
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		ctx = backend.WithSubject(ctx, strconv.FormatInt(user.ID, 10))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth is middleware that requires a logged-in learner
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if GetUserFromContext(r.Context()) == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

// CSRFProtect rejects state-changing requests without a valid token for the
// visitor
func (m *Middleware) CSRFProtect(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(CSRFHeader)
		if token == "" {
			token = r.FormValue(CSRFFormField)
		}
		if !m.csrf.ValidateToken(GetVisitorID(r.Context()), token) {
			respondWithError(w, http.StatusForbidden, ErrForbidden, "", nil)
			return
		}
		next(w, r)
	}
}

// RateLimit throttles requests per client IP
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := security.GetClientIP(r)
		if !m.limiter.Allow(ip) {
			log.Printf("Rate limit exceeded for %s on %s", ip, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			respondWithError(w, http.StatusTooManyRequests, ErrTooManyRequests, "", nil)
			return
		}
		next(w, r)
	}
}

// CSRFToken returns the token forms on this request must carry
func (m *Middleware) CSRFToken(r *http.Request) string {
	token, err := m.csrf.GenerateToken(GetVisitorID(r.Context()))
	if err != nil {
		return ""
	}
	return token
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// GetUserFromContext retrieves the learner from the request context
func GetUserFromContext(ctx context.Context) *models.User {
	user, ok := ctx.Value(UserContextKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}

// GetVisitorID retrieves the visitor ID from the request context
func GetVisitorID(ctx context.Context) string {
	id, _ := ctx.Value(VisitorContextKey).(string)
	return id
}
