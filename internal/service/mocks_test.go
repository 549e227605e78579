package service_test

import (
	"context"
	"time"

	"gearflow-backend/internal/domain"
	"gearflow-backend/internal/service"

	"github.com/stretchr/testify/mock"
)

// MockProfileRepo
type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) Create(ctx context.Context, profile *domain.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}
func (m *MockProfileRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}
func (m *MockProfileRepo) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}
func (m *MockProfileRepo) Update(ctx context.Context, profile *domain.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}
func (m *MockProfileRepo) UpdatePreferences(ctx context.Context, id string, prefs domain.NotificationPreferences) error {
	args := m.Called(ctx, id, prefs)
	return args.Error(0)
}
func (m *MockProfileRepo) ListActiveAdmins(ctx context.Context) ([]domain.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Profile), args.Error(1)
}

// MockGearRepo
type MockGearRepo struct {
	mock.Mock
}

func (m *MockGearRepo) Create(ctx context.Context, gear *domain.Gear) error {
	args := m.Called(ctx, gear)
	return args.Error(0)
}
func (m *MockGearRepo) GetByID(ctx context.Context, id string) (*domain.Gear, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Gear), args.Error(1)
}
func (m *MockGearRepo) Update(ctx context.Context, gear *domain.Gear) error {
	args := m.Called(ctx, gear)
	return args.Error(0)
}
func (m *MockGearRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockGearRepo) List(ctx context.Context, category, status string, page, pageSize int32) ([]domain.Gear, int32, error) {
	args := m.Called(ctx, category, status, page, pageSize)
	return args.Get(0).([]domain.Gear), args.Get(1).(int32), args.Error(2)
}
func (m *MockGearRepo) ListAll(ctx context.Context) ([]domain.Gear, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Gear), args.Error(1)
}

// MockRequestRepo
type MockRequestRepo struct {
	mock.Mock
}

func (m *MockRequestRepo) Create(ctx context.Context, req *domain.GearRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockRequestRepo) GetByID(ctx context.Context, id string) (*domain.GearRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GearRequest), args.Error(1)
}
func (m *MockRequestRepo) Update(ctx context.Context, req *domain.GearRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockRequestRepo) ListByUser(ctx context.Context, userID, status string, page, pageSize int32) ([]domain.GearRequest, int32, error) {
	args := m.Called(ctx, userID, status, page, pageSize)
	return args.Get(0).([]domain.GearRequest), args.Get(1).(int32), args.Error(2)
}
func (m *MockRequestRepo) ListAll(ctx context.Context, status string, page, pageSize int32) ([]domain.GearRequest, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.GearRequest), args.Get(1).(int32), args.Error(2)
}

// MockCheckinRepo
type MockCheckinRepo struct {
	mock.Mock
}

func (m *MockCheckinRepo) Create(ctx context.Context, checkin *domain.Checkin) error {
	args := m.Called(ctx, checkin)
	return args.Error(0)
}
func (m *MockCheckinRepo) GetByID(ctx context.Context, id string) (*domain.Checkin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Checkin), args.Error(1)
}
func (m *MockCheckinRepo) Update(ctx context.Context, checkin *domain.Checkin) error {
	args := m.Called(ctx, checkin)
	return args.Error(0)
}
func (m *MockCheckinRepo) ListByUser(ctx context.Context, userID string, page, pageSize int32) ([]domain.Checkin, int32, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.Checkin), args.Get(1).(int32), args.Error(2)
}
func (m *MockCheckinRepo) ListPending(ctx context.Context) ([]domain.Checkin, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Checkin), args.Error(1)
}
func (m *MockCheckinRepo) PendingGearIDs(ctx context.Context) (map[string]int32, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int32), args.Error(1)
}

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) Create(ctx context.Context, booking *domain.CarBooking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}
func (m *MockBookingRepo) GetByID(ctx context.Context, id string) (*domain.CarBooking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CarBooking), args.Error(1)
}
func (m *MockBookingRepo) Update(ctx context.Context, booking *domain.CarBooking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}
func (m *MockBookingRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockBookingRepo) ListByRequester(ctx context.Context, requesterID string, page, pageSize int32) ([]domain.CarBooking, int32, error) {
	args := m.Called(ctx, requesterID, page, pageSize)
	return args.Get(0).([]domain.CarBooking), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookingRepo) GetAssignedCar(ctx context.Context, bookingID string) (*domain.Car, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}
func (m *MockBookingRepo) AssignCar(ctx context.Context, bookingID, carID string) error {
	args := m.Called(ctx, bookingID, carID)
	return args.Error(0)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) GetByID(ctx context.Context, id string) (*domain.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}
func (m *MockNotificationRepo) Update(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID string, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) UnreadCount(ctx context.Context, userID string) (int32, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}
func (m *MockNotificationRepo) MarkAllAsRead(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
func (m *MockNotificationRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// MockPushQueueRepo
type MockPushQueueRepo struct {
	mock.Mock
}

func (m *MockPushQueueRepo) Enqueue(ctx context.Context, item *domain.PushQueueItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockPushQueueRepo) DequeuePending(ctx context.Context, limit int32) ([]domain.PushQueueItem, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PushQueueItem), args.Error(1)
}
func (m *MockPushQueueRepo) MarkSent(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockPushQueueRepo) MarkRetry(ctx context.Context, id string, attempts int32, lastError string) error {
	args := m.Called(ctx, id, attempts, lastError)
	return args.Error(0)
}
func (m *MockPushQueueRepo) MarkFailed(ctx context.Context, id string, attempts int32, lastError string) error {
	args := m.Called(ctx, id, attempts, lastError)
	return args.Error(0)
}
func (m *MockPushQueueRepo) SaveSubscription(ctx context.Context, sub *domain.PushSubscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}
func (m *MockPushQueueRepo) ListSubscriptions(ctx context.Context, userID string) ([]domain.PushSubscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PushSubscription), args.Error(1)
}
func (m *MockPushQueueRepo) DeleteSubscription(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockNotificationService
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) Dispatch(ctx context.Context, event service.Event) (*service.DispatchResult, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DispatchResult), args.Error(1)
}
func (m *MockNotificationService) GetNotifications(ctx context.Context, userID string, page, pageSize int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationService) UnreadCount(ctx context.Context, userID string) (int32, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockNotificationService) MarkAsRead(ctx context.Context, userID, notificationID string) error {
	args := m.Called(ctx, userID, notificationID)
	return args.Error(0)
}
func (m *MockNotificationService) MarkAllAsRead(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
func (m *MockNotificationService) AdminCreate(ctx context.Context, adminID string, note *domain.Notification) error {
	args := m.Called(ctx, adminID, note)
	return args.Error(0)
}
func (m *MockNotificationService) AdminUpdate(ctx context.Context, adminID string, note *domain.Notification) error {
	args := m.Called(ctx, adminID, note)
	return args.Error(0)
}
func (m *MockNotificationService) AdminDelete(ctx context.Context, adminID, noteID string) error {
	args := m.Called(ctx, adminID, noteID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) Send(ctx context.Context, toEmail, toName, subject, plainText, htmlContent string) error {
	args := m.Called(ctx, toEmail, toName, subject, plainText, htmlContent)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingReturnConfirmation(ctx context.Context, toEmail, employeeName, carLabel, dateOfUse string) error {
	args := m.Called(ctx, toEmail, employeeName, carLabel, dateOfUse)
	return args.Error(0)
}
func (m *MockEmailService) SendAdminBookingNotice(ctx context.Context, adminEmail, employeeName, dateOfUse string) error {
	args := m.Called(ctx, adminEmail, employeeName, dateOfUse)
	return args.Error(0)
}

// MockPushService
type MockPushService struct {
	mock.Mock
}

func (m *MockPushService) Enqueue(ctx context.Context, userID, title, message string, metadata map[string]string) error {
	args := m.Called(ctx, userID, title, message, metadata)
	return args.Error(0)
}
func (m *MockPushService) Subscribe(ctx context.Context, sub *domain.PushSubscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}
func (m *MockPushService) ProcessQueue(ctx context.Context, batchSize int32) (int, int, error) {
	args := m.Called(ctx, batchSize)
	return args.Int(0), args.Int(1), args.Error(2)
}

// MockDashboard
type MockDashboard struct {
	mock.Mock
}

func (m *MockDashboard) Counts(ctx context.Context) (*service.DashboardCounts, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DashboardCounts), args.Error(1)
}
func (m *MockDashboard) InvalidateCache(ctx context.Context) {
	m.Called(ctx)
}

func adminProfile(id string) *domain.Profile {
	return &domain.Profile{
		ID:       id,
		Email:    id + "@example.com",
		FullName: "Admin " + id,
		Role:     domain.ProfileRoleAdmin,
		Status:   domain.ProfileStatusActive,
	}
}

func userProfile(id string) *domain.Profile {
	return &domain.Profile{
		ID:       id,
		Email:    id + "@example.com",
		FullName: "User " + id,
		Role:     domain.ProfileRoleUser,
		Status:   domain.ProfileStatusActive,
	}
}
