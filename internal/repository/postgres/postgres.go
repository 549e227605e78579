package postgres

import (
	"database/sql"

	"gearflow-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.ProfileRepository
	repository.GearRepository
	repository.RequestRepository
	repository.CheckinRepository
	repository.BookingRepository
	repository.NotificationRepository
	repository.PushQueueRepository
	repository.AnnouncementRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		ProfileRepository:      NewProfileRepository(db),
		GearRepository:         NewGearRepository(db),
		RequestRepository:      NewRequestRepository(db),
		CheckinRepository:      NewCheckinRepository(db),
		BookingRepository:      NewBookingRepository(db),
		NotificationRepository: NewNotificationRepository(db),
		PushQueueRepository:    NewPushQueueRepository(db),
		AnnouncementRepository: NewAnnouncementRepository(db),
	}
}
