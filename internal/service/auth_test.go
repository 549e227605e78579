package service_test

import (
	"context"
	"errors"
	"testing"

	"gearflow-backend/internal/domain"
	"gearflow-backend/internal/security"
	"gearflow-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService_Signup(t *testing.T) {
	ctx := context.Background()
	tokens := security.NewTokenManager("test-secret", 60)

	t.Run("Success", func(t *testing.T) {
		profileRepo := new(MockProfileRepo)
		svc := service.NewAuthService(profileRepo, tokens)
		profileRepo.On("GetByEmail", ctx, "new@example.com").Return(nil, domain.ErrNotFound)
		profileRepo.On("Create", ctx, mock.AnythingOfType("*domain.Profile")).Return(nil)

		profile, token, err := svc.Signup(ctx, "New@Example.com ", "secret-pass", "New User")
		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "new@example.com", profile.Email)
		assert.Equal(t, domain.ProfileRoleUser, profile.Role)
		assert.Equal(t, domain.ProfileStatusActive, profile.Status)
		assert.NotNil(t, profile.Preferences)
		assert.False(t, profile.Preferences.Enabled(domain.ChannelEmail, domain.EventLogin))
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		profileRepo := new(MockProfileRepo)
		svc := service.NewAuthService(profileRepo, tokens)
		profileRepo.On("GetByEmail", ctx, "taken@example.com").Return(userProfile("u1"), nil)

		_, _, err := svc.Signup(ctx, "taken@example.com", "secret-pass", "X")
		assert.True(t, errors.Is(err, domain.ErrValidation))
		profileRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Short Password", func(t *testing.T) {
		profileRepo := new(MockProfileRepo)
		svc := service.NewAuthService(profileRepo, tokens)

		_, _, err := svc.Signup(ctx, "a@example.com", "short", "X")
		assert.True(t, errors.Is(err, domain.ErrValidation))
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	tokens := security.NewTokenManager("test-secret", 60)

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret-pass"), bcrypt.MinCost)

	t.Run("Success", func(t *testing.T) {
		profileRepo := new(MockProfileRepo)
		svc := service.NewAuthService(profileRepo, tokens)
		profile := userProfile("u1")
		profile.PasswordHash = string(hash)
		profileRepo.On("GetByEmail", ctx, "u1@example.com").Return(profile, nil)

		loggedIn, token, err := svc.Login(ctx, "u1@example.com", "secret-pass")
		assert.NoError(t, err)
		assert.Equal(t, "u1", loggedIn.ID)

		claims, err := tokens.ValidateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, "u1", claims.UserID)
		assert.Equal(t, "User", claims.Role)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		profileRepo := new(MockProfileRepo)
		svc := service.NewAuthService(profileRepo, tokens)
		profile := userProfile("u1")
		profile.PasswordHash = string(hash)
		profileRepo.On("GetByEmail", ctx, "u1@example.com").Return(profile, nil)

		_, _, err := svc.Login(ctx, "u1@example.com", "wrong")
		assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	})

	t.Run("Suspended Account", func(t *testing.T) {
		profileRepo := new(MockProfileRepo)
		svc := service.NewAuthService(profileRepo, tokens)
		profile := userProfile("u1")
		profile.PasswordHash = string(hash)
		profile.Status = domain.ProfileStatusSuspended
		profileRepo.On("GetByEmail", ctx, "u1@example.com").Return(profile, nil)

		_, _, err := svc.Login(ctx, "u1@example.com", "secret-pass")
		assert.True(t, errors.Is(err, domain.ErrForbidden))
	})
}
