package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"gearflow-backend/internal/domain"
	"gearflow-backend/internal/logger"
	"gearflow-backend/internal/metrics"
	"gearflow-backend/internal/repository"
	"gearflow-backend/internal/security"

	"github.com/gorilla/mux"
)

type contextKey string

const (
	contextKeyUserID contextKey = "user_id"
	contextKeyRole   contextKey = "role"
)

// UserIDFromContext returns the authenticated user's id, or "".
func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(contextKeyUserID).(string)
	return id
}

type Middleware struct {
	tokenManager security.TokenManager
	profileRepo  repository.ProfileRepository
}

func NewMiddleware(tm security.TokenManager, profileRepo repository.ProfileRepository) *Middleware {
	return &Middleware{tokenManager: tm, profileRepo: profileRepo}
}

// RequireAuth validates the Bearer token and injects the user id into the
// request context.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := extractToken(r)
		if err != nil {
			respondError(w, err)
			return
		}
		claims, err := m.tokenManager.ValidateToken(token)
		if err != nil {
			respondError(w, domain.Errorf(domain.ErrUnauthorized, "invalid token"))
			return
		}

		ctx := context.WithValue(r.Context(), contextKeyUserID, claims.UserID)
		ctx = context.WithValue(ctx, contextKeyRole, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin checks the caller's stored role, not the token claim: a role
// change must take effect before the token expires. No mutation happens past
// this point for non-admins.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := UserIDFromContext(r.Context())
		profile, err := m.profileRepo.GetByID(r.Context(), userID)
		if err != nil {
			respondError(w, domain.Errorf(domain.ErrUnauthorized, "unknown profile"))
			return
		}
		if !profile.IsAdmin() {
			respondError(w, domain.Errorf(domain.ErrForbidden, "admin role required"))
			return
		}
		next.ServeHTTP(w, r)
	}))
}

func extractToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", domain.Errorf(domain.ErrUnauthorized, "authorization header is not provided")
	}
	if len(header) > 7 && strings.EqualFold(header[0:7], "bearer ") {
		return header[7:], nil
	}
	return header, nil
}

// statusRecorder captures the response code for request metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// Instrument records per-route request counts and logs slow requests.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if current := mux.CurrentRoute(r); current != nil {
			if tpl, err := current.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()

		elapsed := time.Since(start)
		if elapsed > time.Second {
			logger.Warn("Slow request", "method", r.Method, "route", route, "elapsed", elapsed)
		}
	})
}
