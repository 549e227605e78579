package service

import (
	"context"
	"strings"

	"gearflow-backend/internal/domain"
	"gearflow-backend/internal/repository"
	"gearflow-backend/internal/security"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type authService struct {
	profileRepo  repository.ProfileRepository
	tokenManager security.TokenManager
}

func NewAuthService(profileRepo repository.ProfileRepository, tokenManager security.TokenManager) AuthService {
	return &authService{
		profileRepo:  profileRepo,
		tokenManager: tokenManager,
	}
}

func (s *authService) Signup(ctx context.Context, email, password, fullName string) (*domain.Profile, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", domain.Errorf(domain.ErrValidation, "email and password are required")
	}
	if len(password) < 8 {
		return nil, "", domain.Errorf(domain.ErrValidation, "password must be at least 8 characters")
	}
	if existing, err := s.profileRepo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, "", domain.Errorf(domain.ErrValidation, "email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	profile := &domain.Profile{
		ID:           uuid.NewString(),
		Email:        email,
		FullName:     fullName,
		PasswordHash: string(hash),
		Role:         domain.ProfileRoleUser,
		Status:       domain.ProfileStatusActive,
		Preferences:  domain.DefaultPreferences(),
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, "", err
	}

	token, err := s.tokenManager.GenerateAccessToken(profile.ID, profile.Email, string(profile.Role))
	if err != nil {
		return nil, "", err
	}
	return profile, token, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.Profile, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	profile, err := s.profileRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", domain.Errorf(domain.ErrUnauthorized, "invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.Errorf(domain.ErrUnauthorized, "invalid credentials")
	}
	if profile.Status != domain.ProfileStatusActive {
		return nil, "", domain.Errorf(domain.ErrForbidden, "account is %s", profile.Status)
	}

	token, err := s.tokenManager.GenerateAccessToken(profile.ID, profile.Email, string(profile.Role))
	if err != nil {
		return nil, "", err
	}
	return profile, token, nil
}
