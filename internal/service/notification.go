package service

import (
	"context"
	"fmt"

	"gearflow-backend/internal/domain"
	"gearflow-backend/internal/logger"
	"gearflow-backend/internal/metrics"
	"gearflow-backend/internal/repository"

	"github.com/google/uuid"
)

type notificationService struct {
	noteRepo    repository.NotificationRepository
	profileRepo repository.ProfileRepository
	emailSvc    EmailService
	pushSvc     PushService
}

func NewNotificationService(
	noteRepo repository.NotificationRepository,
	profileRepo repository.ProfileRepository,
	emailSvc EmailService,
	pushSvc PushService,
) NotificationService {
	return &notificationService{
		noteRepo:    noteRepo,
		profileRepo: profileRepo,
		emailSvc:    emailSvc,
		pushSvc:     pushSvc,
	}
}

// Dispatch fans one event out to its targets across the in-app, email and
// push channels. The in-app row is the primary write: Dispatch fails only if
// every in-app write failed. Email and push failures are collected as
// diagnostics and never block the other channels.
func (s *notificationService) Dispatch(ctx context.Context, event Event) (*DispatchResult, error) {
	targets, err := s.resolveTargets(ctx, event)
	if err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		return &DispatchResult{}, nil
	}

	result := &DispatchResult{}
	primaryWrites := 0
	primaryFailures := 0

	for _, target := range targets {
		prefs := target.Preferences

		if prefs.Enabled(domain.ChannelInApp, event.Kind) {
			note := &domain.Notification{
				ID:       uuid.NewString(),
				UserID:   target.ID,
				Type:     string(event.Kind),
				Title:    event.Title,
				Message:  event.Message,
				Category: event.Category,
				Priority: event.Priority,
				Metadata: event.Metadata,
				Link:     event.Link,
			}
			if err := s.noteRepo.Create(ctx, note); err != nil {
				primaryFailures++
				metrics.NotificationsDispatched.WithLabelValues("in_app", "error").Inc()
				result.Errors = append(result.Errors, fmt.Sprintf("in_app %s: %v", target.ID, err))
			} else {
				primaryWrites++
				result.Delivered++
				metrics.NotificationsDispatched.WithLabelValues("in_app", "ok").Inc()
			}
		}

		if prefs.Enabled(domain.ChannelEmail, event.Kind) {
			if err := s.emailSvc.Send(ctx, target.Email, target.FullName, event.Title, event.Message, ""); err != nil {
				metrics.NotificationsDispatched.WithLabelValues("email", "error").Inc()
				logger.Warn("Notification email failed", "user_id", target.ID, "event", event.Kind, "error", err)
				result.Errors = append(result.Errors, fmt.Sprintf("email %s: %v", target.ID, err))
			} else {
				result.Delivered++
				metrics.NotificationsDispatched.WithLabelValues("email", "ok").Inc()
			}
		}

		if prefs.Enabled(domain.ChannelPush, event.Kind) {
			if err := s.pushSvc.Enqueue(ctx, target.ID, event.Title, event.Message, event.Metadata); err != nil {
				metrics.NotificationsDispatched.WithLabelValues("push", "error").Inc()
				logger.Warn("Push enqueue failed", "user_id", target.ID, "event", event.Kind, "error", err)
				result.Errors = append(result.Errors, fmt.Sprintf("push %s: %v", target.ID, err))
			} else {
				result.Delivered++
				metrics.NotificationsDispatched.WithLabelValues("push", "ok").Inc()
			}
		}
	}

	if primaryWrites == 0 && primaryFailures > 0 {
		return result, fmt.Errorf("all in-app notification writes failed: %v", result.Errors)
	}
	return result, nil
}

func (s *notificationService) resolveTargets(ctx context.Context, event Event) ([]domain.Profile, error) {
	var targets []domain.Profile
	seen := map[string]bool{}

	if event.TargetUserID != "" {
		target, err := s.profileRepo.GetByID(ctx, event.TargetUserID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve notification target: %w", err)
		}
		targets = append(targets, *target)
		seen[target.ID] = true
	}

	if event.NotifyAdmins {
		admins, err := s.profileRepo.ListActiveAdmins(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list admins: %w", err)
		}
		for _, admin := range admins {
			if !seen[admin.ID] {
				targets = append(targets, admin)
				seen[admin.ID] = true
			}
		}
	}
	return targets, nil
}

func (s *notificationService) GetNotifications(ctx context.Context, userID string, page, pageSize int32) ([]domain.Notification, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize
	return s.noteRepo.List(ctx, userID, pageSize, offset)
}

func (s *notificationService) UnreadCount(ctx context.Context, userID string) (int32, error) {
	return s.noteRepo.UnreadCount(ctx, userID)
}

func (s *notificationService) MarkAsRead(ctx context.Context, userID, notificationID string) error {
	return s.noteRepo.MarkAsRead(ctx, notificationID, userID)
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, userID string) error {
	return s.noteRepo.MarkAllAsRead(ctx, userID)
}

func (s *notificationService) AdminCreate(ctx context.Context, adminID string, note *domain.Notification) error {
	if _, err := requireAdmin(ctx, s.profileRepo, adminID); err != nil {
		return err
	}
	if note.UserID == "" || note.Title == "" {
		return domain.Errorf(domain.ErrValidation, "user_id and title are required")
	}
	if note.ID == "" {
		note.ID = uuid.NewString()
	}
	return s.noteRepo.Create(ctx, note)
}

func (s *notificationService) AdminUpdate(ctx context.Context, adminID string, note *domain.Notification) error {
	if _, err := requireAdmin(ctx, s.profileRepo, adminID); err != nil {
		return err
	}
	return s.noteRepo.Update(ctx, note)
}

func (s *notificationService) AdminDelete(ctx context.Context, adminID, noteID string) error {
	if _, err := requireAdmin(ctx, s.profileRepo, adminID); err != nil {
		return err
	}
	return s.noteRepo.Delete(ctx, noteID)
}
