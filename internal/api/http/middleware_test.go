package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	httpapi "gearflow-backend/internal/api/http"
	"gearflow-backend/internal/domain"
	"gearflow-backend/internal/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockProfileRepo struct {
	mock.Mock
}

func (m *mockProfileRepo) Create(ctx context.Context, profile *domain.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}
func (m *mockProfileRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}
func (m *mockProfileRepo) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}
func (m *mockProfileRepo) Update(ctx context.Context, profile *domain.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}
func (m *mockProfileRepo) UpdatePreferences(ctx context.Context, id string, prefs domain.NotificationPreferences) error {
	args := m.Called(ctx, id, prefs)
	return args.Error(0)
}
func (m *mockProfileRepo) ListActiveAdmins(ctx context.Context) ([]domain.Profile, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Profile), args.Error(1)
}

func profileWithRole(id string, role domain.ProfileRole) *domain.Profile {
	return &domain.Profile{ID: id, Email: id + "@example.com", Role: role, Status: domain.ProfileStatusActive}
}

func TestMiddleware_RequireAuth(t *testing.T) {
	tokens := security.NewTokenManager("test-secret", 60)
	profiles := new(mockProfileRepo)
	mw := httpapi.NewMiddleware(tokens, profiles)

	var gotUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = httpapi.UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	t.Run("Missing Header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mw.RequireAuth(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/gears", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Garbage Token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/gears", nil)
		req.Header.Set("Authorization", "Bearer nonsense")
		rec := httptest.NewRecorder()
		mw.RequireAuth(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Valid Token Injects User", func(t *testing.T) {
		token, err := tokens.GenerateAccessToken("u1", "u1@example.com", "User")
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/gears", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		mw.RequireAuth(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "u1", gotUserID)
	})
}

func TestMiddleware_RequireAdmin(t *testing.T) {
	tokens := security.NewTokenManager("test-secret", 60)

	protected := func(profiles *mockProfileRepo, called *bool) http.Handler {
		mw := httpapi.NewMiddleware(tokens, profiles)
		return mw.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*called = true
			w.WriteHeader(http.StatusOK)
		}))
	}

	t.Run("Non-Admin Gets 403 Before The Handler Runs", func(t *testing.T) {
		profiles := new(mockProfileRepo)
		profiles.On("GetByID", mock.Anything, "u1").Return(profileWithRole("u1", domain.ProfileRoleUser), nil)

		token, _ := tokens.GenerateAccessToken("u1", "u1@example.com", "User")
		req := httptest.NewRequest(http.MethodPost, "/api/admin/gears", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		called := false
		protected(profiles, &called).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.False(t, called, "handler must not run for non-admins")
	})

	t.Run("Stale Admin Claim Is Ignored", func(t *testing.T) {
		// Token says Admin, but the stored role was demoted since issuance.
		profiles := new(mockProfileRepo)
		profiles.On("GetByID", mock.Anything, "u1").Return(profileWithRole("u1", domain.ProfileRoleUser), nil)

		token, _ := tokens.GenerateAccessToken("u1", "u1@example.com", "Admin")
		req := httptest.NewRequest(http.MethodPost, "/api/admin/gears", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		called := false
		protected(profiles, &called).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.False(t, called)
	})

	t.Run("Active Admin Passes", func(t *testing.T) {
		profiles := new(mockProfileRepo)
		profiles.On("GetByID", mock.Anything, "admin1").Return(profileWithRole("admin1", domain.ProfileRoleAdmin), nil)

		token, _ := tokens.GenerateAccessToken("admin1", "admin1@example.com", "Admin")
		req := httptest.NewRequest(http.MethodPost, "/api/admin/gears", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		called := false
		protected(profiles, &called).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, called)
	})
}
