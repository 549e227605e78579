package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"gearflow-backend/internal/domain"
	"gearflow-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newBookingFixture() (*MockBookingRepo, *MockRequestRepo, *MockProfileRepo, *MockNotificationService, *MockEmailService, service.BookingService) {
	bookingRepo := new(MockBookingRepo)
	requestRepo := new(MockRequestRepo)
	profileRepo := new(MockProfileRepo)
	notifySvc := new(MockNotificationService)
	emailSvc := new(MockEmailService)
	svc := service.NewBookingService(bookingRepo, requestRepo, profileRepo, notifySvc, emailSvc)
	return bookingRepo, requestRepo, profileRepo, notifySvc, emailSvc, svc
}

func TestBookingService_ApproveBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("Approval Assigns Car And Mirrors Request", func(t *testing.T) {
		bookingRepo, requestRepo, profileRepo, notifySvc, _, svc := newBookingFixture()
		booking := &domain.CarBooking{ID: "b1", RequesterID: "u1", EmployeeName: "Jamie",
			DateOfUse: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), TimeSlot: "AM",
			Status: domain.BookingStatusPending}

		profileRepo.On("GetByID", ctx, "admin1").Return(adminProfile("admin1"), nil)
		bookingRepo.On("GetByID", ctx, "b1").Return(booking, nil)
		bookingRepo.On("AssignCar", ctx, "b1", "car1").Return(nil)
		requestRepo.On("Create", ctx, mock.AnythingOfType("*domain.GearRequest")).Return(nil)
		bookingRepo.On("Update", ctx, booking).Return(nil)
		notifySvc.On("Dispatch", ctx, mock.Anything).Return(&service.DispatchResult{Delivered: 1}, nil)

		approved, err := svc.ApproveBooking(ctx, "admin1", "b1", "car1")
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusApproved, approved.Status)
		assert.Equal(t, "car1", *approved.AssignedCarID)
		assert.NotNil(t, approved.RequestID)

		mirror := requestRepo.Calls[0].Arguments.Get(1).(*domain.GearRequest)
		assert.Equal(t, "u1", mirror.UserID)
		assert.Equal(t, domain.RequestStatusApproved, mirror.Status)
		assert.Contains(t, mirror.AdminNotes, "b1")
	})

	t.Run("Re-Approval Is Idempotent", func(t *testing.T) {
		bookingRepo, requestRepo, profileRepo, _, _, svc := newBookingFixture()
		booking := &domain.CarBooking{ID: "b1", RequesterID: "u1", Status: domain.BookingStatusApproved}
		profileRepo.On("GetByID", ctx, "admin1").Return(adminProfile("admin1"), nil)
		bookingRepo.On("GetByID", ctx, "b1").Return(booking, nil)

		approved, err := svc.ApproveBooking(ctx, "admin1", "b1", "car1")
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusApproved, approved.Status)
		bookingRepo.AssertNotCalled(t, "AssignCar", mock.Anything, mock.Anything, mock.Anything)
		bookingRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		requestRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Non-Admin Cannot Approve", func(t *testing.T) {
		bookingRepo, _, profileRepo, _, _, svc := newBookingFixture()
		profileRepo.On("GetByID", ctx, "u2").Return(userProfile("u2"), nil)

		_, err := svc.ApproveBooking(ctx, "u2", "b1", "car1")
		assert.True(t, errors.Is(err, domain.ErrForbidden))
		bookingRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestBookingService_CompleteBooking(t *testing.T) {
	ctx := context.Background()
	dateOfUse := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Completion Sends Emails To Requester And Admins", func(t *testing.T) {
		bookingRepo, _, profileRepo, notifySvc, emailSvc, svc := newBookingFixture()
		booking := &domain.CarBooking{ID: "b1", RequesterID: "u1", EmployeeName: "Jamie",
			DateOfUse: dateOfUse, Status: domain.BookingStatusApproved}

		bookingRepo.On("GetByID", ctx, "b1").Return(booking, nil)
		bookingRepo.On("Update", ctx, booking).Return(nil)
		bookingRepo.On("GetAssignedCar", ctx, "b1").Return(&domain.Car{ID: "car1", Label: "Van 3"}, nil)
		profileRepo.On("GetByID", ctx, "u1").Return(userProfile("u1"), nil)
		profileRepo.On("ListActiveAdmins", ctx).Return([]domain.Profile{*adminProfile("admin1"), *adminProfile("admin2")}, nil)
		emailSvc.On("SendBookingReturnConfirmation", ctx, "u1@example.com", "Jamie", "Van 3", "2026-09-01").Return(nil)
		emailSvc.On("SendAdminBookingNotice", ctx, "admin1@example.com", "Jamie", "2026-09-01").Return(nil)
		emailSvc.On("SendAdminBookingNotice", ctx, "admin2@example.com", "Jamie", "2026-09-01").Return(nil)
		notifySvc.On("Dispatch", ctx, mock.Anything).Return(&service.DispatchResult{Delivered: 1}, nil)

		completed, err := svc.CompleteBooking(ctx, "u1", "b1")
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusCompleted, completed.Status)
		emailSvc.AssertNumberOfCalls(t, "SendBookingReturnConfirmation", 1)
		emailSvc.AssertNumberOfCalls(t, "SendAdminBookingNotice", 2)
	})

	t.Run("Second Completion Is A No-Op", func(t *testing.T) {
		bookingRepo, _, _, _, emailSvc, svc := newBookingFixture()
		booking := &domain.CarBooking{ID: "b1", RequesterID: "u1", EmployeeName: "Jamie",
			DateOfUse: dateOfUse, Status: domain.BookingStatusCompleted}
		bookingRepo.On("GetByID", ctx, "b1").Return(booking, nil)

		completed, err := svc.CompleteBooking(ctx, "u1", "b1")
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusCompleted, completed.Status)
		bookingRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		emailSvc.AssertNotCalled(t, "SendBookingReturnConfirmation", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		emailSvc.AssertNotCalled(t, "SendAdminBookingNotice", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Unconfirmed Read Falls Back To Snapshot", func(t *testing.T) {
		bookingRepo, _, profileRepo, notifySvc, emailSvc, svc := newBookingFixture()
		booking := &domain.CarBooking{ID: "b2", RequesterID: "u1", EmployeeName: "Jamie",
			DateOfUse: dateOfUse, Status: domain.BookingStatusApproved}

		bookingRepo.On("GetByID", ctx, "b2").Return(booking, nil).Once()
		bookingRepo.On("Update", ctx, booking).Return(nil)
		bookingRepo.On("GetByID", ctx, "b2").Return(nil, domain.ErrNotFound)
		bookingRepo.On("GetAssignedCar", ctx, "b2").Return(nil, domain.ErrNotFound)
		profileRepo.On("GetByID", ctx, "u1").Return(userProfile("u1"), nil)
		profileRepo.On("ListActiveAdmins", ctx).Return([]domain.Profile{}, nil)
		emailSvc.On("SendBookingReturnConfirmation", ctx, "u1@example.com", "Jamie", "", "2026-09-01").Return(nil)
		notifySvc.On("Dispatch", ctx, mock.Anything).Return(&service.DispatchResult{Delivered: 1}, nil)

		completed, err := svc.CompleteBooking(ctx, "u1", "b2")
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusCompleted, completed.Status)
		assert.Equal(t, "b2", completed.ID)
	})

	t.Run("Stranger Cannot Complete", func(t *testing.T) {
		bookingRepo, _, profileRepo, _, _, svc := newBookingFixture()
		booking := &domain.CarBooking{ID: "b1", RequesterID: "u1", Status: domain.BookingStatusApproved}
		bookingRepo.On("GetByID", ctx, "b1").Return(booking, nil)
		profileRepo.On("GetByID", ctx, "u2").Return(userProfile("u2"), nil)

		_, err := svc.CompleteBooking(ctx, "u2", "b1")
		assert.True(t, errors.Is(err, domain.ErrForbidden))
		bookingRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}
