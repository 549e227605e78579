package repository

import (
	"context"
	"time"

	"gearflow-backend/internal/domain"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	GetByEmail(ctx context.Context, email string) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
	UpdatePreferences(ctx context.Context, id string, prefs domain.NotificationPreferences) error
	ListActiveAdmins(ctx context.Context) ([]domain.Profile, error)
}

type GearRepository interface {
	Create(ctx context.Context, gear *domain.Gear) error
	GetByID(ctx context.Context, id string) (*domain.Gear, error)
	Update(ctx context.Context, gear *domain.Gear) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, category string, status string, page, pageSize int32) ([]domain.Gear, int32, error)
	ListAll(ctx context.Context) ([]domain.Gear, error)
}

type RequestRepository interface {
	Create(ctx context.Context, req *domain.GearRequest) error
	GetByID(ctx context.Context, id string) (*domain.GearRequest, error)
	Update(ctx context.Context, req *domain.GearRequest) error
	ListByUser(ctx context.Context, userID string, status string, page, pageSize int32) ([]domain.GearRequest, int32, error)
	ListAll(ctx context.Context, status string, page, pageSize int32) ([]domain.GearRequest, int32, error)
}

type CheckinRepository interface {
	Create(ctx context.Context, checkin *domain.Checkin) error
	GetByID(ctx context.Context, id string) (*domain.Checkin, error)
	Update(ctx context.Context, checkin *domain.Checkin) error
	ListByUser(ctx context.Context, userID string, page, pageSize int32) ([]domain.Checkin, int32, error)
	ListPending(ctx context.Context) ([]domain.Checkin, error)
	PendingGearIDs(ctx context.Context) (map[string]int32, error)
}

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.CarBooking) error
	GetByID(ctx context.Context, id string) (*domain.CarBooking, error)
	Update(ctx context.Context, booking *domain.CarBooking) error
	Delete(ctx context.Context, id string) error
	ListByRequester(ctx context.Context, requesterID string, page, pageSize int32) ([]domain.CarBooking, int32, error)
	GetAssignedCar(ctx context.Context, bookingID string) (*domain.Car, error)
	AssignCar(ctx context.Context, bookingID, carID string) error
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	GetByID(ctx context.Context, id string) (*domain.Notification, error)
	Update(ctx context.Context, note *domain.Notification) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, userID string, limit, offset int32) ([]domain.Notification, int32, error)
	UnreadCount(ctx context.Context, userID string) (int32, error)
	MarkAsRead(ctx context.Context, id, userID string) error
	MarkAllAsRead(ctx context.Context, userID string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type PushQueueRepository interface {
	Enqueue(ctx context.Context, item *domain.PushQueueItem) error
	DequeuePending(ctx context.Context, limit int32) ([]domain.PushQueueItem, error)
	MarkSent(ctx context.Context, id string) error
	MarkRetry(ctx context.Context, id string, attempts int32, lastError string) error
	MarkFailed(ctx context.Context, id string, attempts int32, lastError string) error

	// Subscriptions
	SaveSubscription(ctx context.Context, sub *domain.PushSubscription) error
	ListSubscriptions(ctx context.Context, userID string) ([]domain.PushSubscription, error)
	DeleteSubscription(ctx context.Context, id string) error
}

type AnnouncementRepository interface {
	Create(ctx context.Context, a *domain.Announcement) error
	List(ctx context.Context, limit int32) ([]domain.Announcement, error)
	Delete(ctx context.Context, id string) error
}
