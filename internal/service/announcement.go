package service

import (
	"context"

	"gearflow-backend/internal/domain"
	"gearflow-backend/internal/logger"
	"gearflow-backend/internal/repository"

	"github.com/google/uuid"
)

type announcementService struct {
	annRepo     repository.AnnouncementRepository
	profileRepo repository.ProfileRepository
	notifySvc   NotificationService
}

func NewAnnouncementService(annRepo repository.AnnouncementRepository, profileRepo repository.ProfileRepository, notifySvc NotificationService) AnnouncementService {
	return &announcementService{
		annRepo:     annRepo,
		profileRepo: profileRepo,
		notifySvc:   notifySvc,
	}
}

func (s *announcementService) Create(ctx context.Context, adminID, title, content string) (*domain.Announcement, error) {
	admin, err := requireAdmin(ctx, s.profileRepo, adminID)
	if err != nil {
		return nil, err
	}
	if title == "" || content == "" {
		return nil, domain.Errorf(domain.ErrValidation, "title and content are required")
	}

	announcement := &domain.Announcement{
		ID:       uuid.NewString(),
		Title:    title,
		Content:  content,
		AuthorID: admin.ID,
	}
	if err := s.annRepo.Create(ctx, announcement); err != nil {
		return nil, err
	}

	if _, err := s.notifySvc.Dispatch(ctx, Event{
		Kind:         domain.EventAnnouncement,
		NotifyAdmins: true,
		Title:        title,
		Message:      content,
		Category:     "announcement",
		Priority:     "normal",
		Metadata:     map[string]string{"announcement_id": announcement.ID},
	}); err != nil {
		logger.Warn("Announcement fan-out failed", "announcement_id", announcement.ID, "error", err)
	}
	return announcement, nil
}

func (s *announcementService) List(ctx context.Context, limit int32) ([]domain.Announcement, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.annRepo.List(ctx, limit)
}

func (s *announcementService) Delete(ctx context.Context, adminID, id string) error {
	if _, err := requireAdmin(ctx, s.profileRepo, adminID); err != nil {
		return err
	}
	return s.annRepo.Delete(ctx, id)
}
