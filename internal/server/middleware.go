package server

import (
	"context"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/fwtracker/backend/internal/domain"
)

type contextKey string

const userContextKey contextKey = "currentUser"

func sessionCookieName() string {
	if v := os.Getenv("SESSION_COOKIE_NAME"); v != "" {
		return v
	}
	return "fwtracker_sess"
}

func cookieSecure() bool {
	return os.Getenv("COOKIE_SECURE") == "true"
}

func cookieSameSite() http.SameSite {
	switch strings.ToLower(os.Getenv("COOKIE_SAMESITE")) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

func setSessionCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName(),
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   cookieSecure(),
		SameSite: cookieSameSite(),
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cookieSecure(),
		SameSite: cookieSameSite(),
	})
}

// sessionToken extracts the session token from the request cookie, returning
// "" when the cookie is absent.
func sessionToken(r *http.Request) string {
	cookie, err := r.Cookie(sessionCookieName())
	if err != nil {
		return ""
	}
	return cookie.Value
}

// requireUser resolves the session cookie to a user and stores it in the
// request context. Unauthenticated requests get a 401.
func (s *Server) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := s.svc.Auth.CurrentUser(r.Context(), sessionToken(r))
		if err != nil {
			s.respondServiceError(w, r, err)
			return
		}
		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func currentUser(r *http.Request) *domain.User {
	user, _ := r.Context().Value(userContextKey).(*domain.User)
	return user
}

// secureHeaders sets baseline response headers and keeps API responses
// out of shared caches.
func secureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		if strings.HasPrefix(r.URL.Path, "/api/") {
			w.Header().Set("Cache-Control", "no-store")
		}
		next.ServeHTTP(w, r)
	})
}

const (
	rateLimitWindow = time.Minute
	rateLimitMax    = 10
)

// rateBucket is one client's fixed-window counter.
type rateBucket struct {
	windowStart time.Time
	count       int
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// allowRequest counts a request against the client's current window.
func (s *Server) allowRequest(key string, now time.Time) bool {
	s.rlMu.Lock()
	defer s.rlMu.Unlock()

	bucket, ok := s.rl[key]
	if !ok || now.Sub(bucket.windowStart) >= rateLimitWindow {
		s.rl[key] = &rateBucket{windowStart: now, count: 1}
		return true
	}
	if bucket.count >= rateLimitMax {
		return false
	}
	bucket.count++
	return true
}

// withRateLimit caps credential endpoints at a fixed number of attempts
// per client IP per minute.
func (s *Server) withRateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.Path + "|" + clientIP(r)
		if !s.allowRequest(key, time.Now()) {
			respondWithError(w, http.StatusTooManyRequests, "too many attempts, slow down")
			return
		}
		next(w, r)
	}
}
