package service

import (
	"context"

	"gearflow-backend/internal/domain"
	"gearflow-backend/internal/repository"
)

// requireAdmin loads the acting profile and verifies it may perform admin
// mutations. Called before any write on admin-only paths.
func requireAdmin(ctx context.Context, profiles repository.ProfileRepository, actorID string) (*domain.Profile, error) {
	if actorID == "" {
		return nil, domain.ErrUnauthorized
	}
	actor, err := profiles.GetByID(ctx, actorID)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !actor.IsAdmin() {
		return nil, domain.Errorf(domain.ErrForbidden, "admin role required")
	}
	return actor, nil
}
