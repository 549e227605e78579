package service

import (
	"context"
	"time"

	"gearflow-backend/internal/domain"
)

type AuthService interface {
	Signup(ctx context.Context, email, password, fullName string) (*domain.Profile, string, error)
	Login(ctx context.Context, email, password string) (*domain.Profile, string, error)
}

type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
	UpdatePreferences(ctx context.Context, userID string, prefs domain.NotificationPreferences) error
}

type GearService interface {
	AddGear(ctx context.Context, adminID string, gear *domain.Gear) error
	GetGear(ctx context.Context, id string) (*domain.Gear, error)
	UpdateGear(ctx context.Context, adminID string, gear *domain.Gear) error
	RetireGear(ctx context.Context, adminID, gearID string) error
	DeleteGear(ctx context.Context, adminID, gearID string) error
	ListGears(ctx context.Context, category, status string, page, pageSize int32) ([]domain.Gear, int32, error)
}

type RequestService interface {
	SubmitRequest(ctx context.Context, userID string, lines []domain.RequestLine, dueDate *time.Time) (*domain.GearRequest, error)
	ApproveRequest(ctx context.Context, adminID, requestID string, dueDate *time.Time) (*domain.GearRequest, error)
	RejectRequest(ctx context.Context, adminID, requestID, reason string) (*domain.GearRequest, error)
	CancelRequest(ctx context.Context, actorID, requestID string) (*domain.GearRequest, error)
	GetRequest(ctx context.Context, actorID, requestID string) (*domain.GearRequest, error)
	ListRequests(ctx context.Context, actorID string, status string, page, pageSize int32) ([]domain.GearRequest, int32, error)
}

type CheckinService interface {
	SubmitCheckin(ctx context.Context, userID string, checkin *domain.Checkin) error
	ApproveCheckin(ctx context.Context, adminID, checkinID string) (*domain.Checkin, error)
	ListCheckins(ctx context.Context, userID string, page, pageSize int32) ([]domain.Checkin, int32, error)
}

type BookingService interface {
	CreateBooking(ctx context.Context, booking *domain.CarBooking) error
	ApproveBooking(ctx context.Context, adminID, bookingID, carID string) (*domain.CarBooking, error)
	RejectBooking(ctx context.Context, adminID, bookingID, reason string) (*domain.CarBooking, error)
	CompleteBooking(ctx context.Context, actorID, bookingID string) (*domain.CarBooking, error)
	DeleteBooking(ctx context.Context, actorID, bookingID string) error
	ListBookings(ctx context.Context, requesterID string, page, pageSize int32) ([]domain.CarBooking, int32, error)
}

// DashboardCounts is the recomputed equipment summary. A gear referenced by a
// pending checkin counts as pending, never available, whatever its stored
// status says.
type DashboardCounts struct {
	TotalEquipment          int32 `json:"totalEquipment"`
	AvailableEquipment      int32 `json:"availableEquipment"`
	CheckedOutEquipment     int32 `json:"checkedOutEquipment"`
	UnderRepairEquipment    int32 `json:"underRepairEquipment"`
	PendingCheckinEquipment int32 `json:"pendingCheckinEquipment"`
}

type DashboardService interface {
	Counts(ctx context.Context) (*DashboardCounts, error)
	InvalidateCache(ctx context.Context)
}

// GearQuantityFix records one reconciled gear row.
type GearQuantityFix struct {
	GearID       string            `json:"gear_id"`
	Name         string            `json:"name"`
	OldAvailable int32             `json:"old_available"`
	NewAvailable int32             `json:"new_available"`
	OldStatus    domain.GearStatus `json:"old_status"`
	NewStatus    domain.GearStatus `json:"new_status"`
}

type ReconcileService interface {
	UpdateGearAvailableQuantities(ctx context.Context) ([]GearQuantityFix, error)
	FixDashboardCounts(ctx context.Context) (*DashboardCounts, error)
}

// Event is a domain occurrence to fan out across channels.
type Event struct {
	Kind         domain.EventKind
	TargetUserID string // primary recipient; empty for admin-only events
	NotifyAdmins bool
	Title        string
	Message      string
	Category     string
	Priority     string
	Link         string
	Metadata     map[string]string
}

// DispatchResult reports the fan-out outcome. Errors from secondary channels
// are diagnostics, not failures.
type DispatchResult struct {
	Delivered int      `json:"delivered"`
	Errors    []string `json:"errors,omitempty"`
}

type NotificationService interface {
	Dispatch(ctx context.Context, event Event) (*DispatchResult, error)
	GetNotifications(ctx context.Context, userID string, page, pageSize int32) ([]domain.Notification, int32, error)
	UnreadCount(ctx context.Context, userID string) (int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID string) error
	MarkAllAsRead(ctx context.Context, userID string) error

	// Admin management of in-app rows
	AdminCreate(ctx context.Context, adminID string, note *domain.Notification) error
	AdminUpdate(ctx context.Context, adminID string, note *domain.Notification) error
	AdminDelete(ctx context.Context, adminID, noteID string) error
}

type EmailService interface {
	Send(ctx context.Context, toEmail, toName, subject, plainText, htmlContent string) error
	SendBookingReturnConfirmation(ctx context.Context, toEmail, employeeName, carLabel, dateOfUse string) error
	SendAdminBookingNotice(ctx context.Context, adminEmail, employeeName, dateOfUse string) error
}

type PushService interface {
	Enqueue(ctx context.Context, userID, title, message string, metadata map[string]string) error
	Subscribe(ctx context.Context, sub *domain.PushSubscription) error
	ProcessQueue(ctx context.Context, batchSize int32) (sent, failed int, err error)
}

type AnnouncementService interface {
	Create(ctx context.Context, adminID, title, content string) (*domain.Announcement, error)
	List(ctx context.Context, limit int32) ([]domain.Announcement, error)
	Delete(ctx context.Context, adminID, id string) error
}
