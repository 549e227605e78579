package service

import (
	"context"

	"gearflow-backend/internal/domain"
	"gearflow-backend/internal/repository"
)

type profileService struct {
	profileRepo repository.ProfileRepository
}

func NewProfileService(profileRepo repository.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

func (s *profileService) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	return s.profileRepo.GetByID(ctx, userID)
}

// UpdatePreferences validates the matrix before it reaches the JSONB column,
// so unknown channel or event keys are rejected instead of stored silently.
func (s *profileService) UpdatePreferences(ctx context.Context, userID string, prefs domain.NotificationPreferences) error {
	if err := prefs.Validate(); err != nil {
		return err
	}
	return s.profileRepo.UpdatePreferences(ctx, userID, prefs)
}
