package service_test

import (
	"context"
	"errors"
	"testing"

	"gearflow-backend/internal/domain"
	"gearflow-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newGearFixture() (*MockGearRepo, *MockProfileRepo, *MockDashboard, service.GearService) {
	gearRepo := new(MockGearRepo)
	profileRepo := new(MockProfileRepo)
	dashboard := new(MockDashboard)
	svc := service.NewGearService(gearRepo, profileRepo, dashboard)
	return gearRepo, profileRepo, dashboard, svc
}

func TestGearService_AddGear(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		gearRepo, profileRepo, dashboard, svc := newGearFixture()
		profileRepo.On("GetByID", ctx, "admin1").Return(adminProfile("admin1"), nil)
		gearRepo.On("Create", ctx, mock.AnythingOfType("*domain.Gear")).Return(nil)
		dashboard.On("InvalidateCache", ctx).Return()

		gear := &domain.Gear{Name: "Drill", Quantity: 5}
		err := svc.AddGear(ctx, "admin1", gear)
		assert.NoError(t, err)
		assert.NotEmpty(t, gear.ID)
		assert.Equal(t, domain.GearStatusAvailable, gear.Status)
		assert.Equal(t, int32(5), gear.AvailableQuantity)
	})

	t.Run("Non-Admin Is Rejected", func(t *testing.T) {
		gearRepo, profileRepo, _, svc := newGearFixture()
		profileRepo.On("GetByID", ctx, "u1").Return(userProfile("u1"), nil)

		err := svc.AddGear(ctx, "u1", &domain.Gear{Name: "Drill", Quantity: 5})
		assert.True(t, errors.Is(err, domain.ErrForbidden))
		gearRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestGearService_UpdateGear(t *testing.T) {
	ctx := context.Background()

	t.Run("Clamps Counter And Preserves Holder", func(t *testing.T) {
		gearRepo, profileRepo, dashboard, svc := newGearFixture()
		holder := "u1"
		reqID := "r1"
		current := &domain.Gear{ID: "g1", Name: "Drill", Quantity: 5, AvailableQuantity: 2,
			CheckedOutTo: &holder, CurrentRequestID: &reqID}

		profileRepo.On("GetByID", ctx, "admin1").Return(adminProfile("admin1"), nil)
		gearRepo.On("GetByID", ctx, "g1").Return(current, nil)
		gearRepo.On("Update", ctx, mock.AnythingOfType("*domain.Gear")).Return(nil)
		dashboard.On("InvalidateCache", ctx).Return()

		edit := &domain.Gear{ID: "g1", Name: "Drill", Quantity: 4, AvailableQuantity: 9}
		err := svc.UpdateGear(ctx, "admin1", edit)
		assert.NoError(t, err)
		assert.Equal(t, int32(4), edit.AvailableQuantity)
		assert.Equal(t, &holder, edit.CheckedOutTo)
		assert.Equal(t, &reqID, edit.CurrentRequestID)
	})
}

func TestGearService_RetireGear(t *testing.T) {
	ctx := context.Background()

	gearRepo, profileRepo, dashboard, svc := newGearFixture()
	gear := &domain.Gear{ID: "g1", Name: "Drill", Status: domain.GearStatusAvailable, Quantity: 5, AvailableQuantity: 5}
	profileRepo.On("GetByID", ctx, "admin1").Return(adminProfile("admin1"), nil)
	gearRepo.On("GetByID", ctx, "g1").Return(gear, nil)
	gearRepo.On("Update", ctx, gear).Return(nil)
	dashboard.On("InvalidateCache", ctx).Return()

	err := svc.RetireGear(ctx, "admin1", "g1")
	assert.NoError(t, err)
	assert.Equal(t, domain.GearStatusRetired, gear.Status)
	assert.Equal(t, int32(0), gear.AvailableQuantity)
}
