package service_test

import (
	"context"
	"testing"

	"gearflow-backend/internal/domain"
	"gearflow-backend/internal/service"

	"github.com/stretchr/testify/assert"
)

func TestDashboardService_Counts(t *testing.T) {
	ctx := context.Background()

	t.Run("Pending Checkin Gear Is Never Available", func(t *testing.T) {
		gearRepo := new(MockGearRepo)
		checkinRepo := new(MockCheckinRepo)
		svc := service.NewDashboardService(gearRepo, checkinRepo, nil)

		gears := []domain.Gear{
			{ID: "g1", Status: domain.GearStatusAvailable, Quantity: 5, AvailableQuantity: 5},
			// Stored status says available, but a pending checkin references it.
			{ID: "g2", Status: domain.GearStatusAvailable, Quantity: 2, AvailableQuantity: 2},
			{ID: "g3", Status: domain.GearStatusCheckedOut, Quantity: 1, AvailableQuantity: 0},
			{ID: "g4", Status: domain.GearStatusUnderRepair, Quantity: 1, AvailableQuantity: 0},
			{ID: "g5", Status: domain.GearStatusRetired, Quantity: 1, AvailableQuantity: 0},
		}
		gearRepo.On("ListAll", ctx).Return(gears, nil)
		checkinRepo.On("PendingGearIDs", ctx).Return(map[string]int32{"g2": 1}, nil)

		counts, err := svc.Counts(ctx)
		assert.NoError(t, err)
		assert.Equal(t, int32(5), counts.TotalEquipment)
		assert.Equal(t, int32(1), counts.AvailableEquipment)
		assert.Equal(t, int32(1), counts.PendingCheckinEquipment)
		assert.Equal(t, int32(1), counts.CheckedOutEquipment)
		assert.Equal(t, int32(1), counts.UnderRepairEquipment, "retired and lost rows stay out of repair")
	})

	t.Run("Partially Checked Out Counts As Checked Out", func(t *testing.T) {
		gearRepo := new(MockGearRepo)
		checkinRepo := new(MockCheckinRepo)
		svc := service.NewDashboardService(gearRepo, checkinRepo, nil)

		gears := []domain.Gear{
			{ID: "g1", Status: domain.GearStatusPartiallyCheckedOut, Quantity: 5, AvailableQuantity: 2},
		}
		gearRepo.On("ListAll", ctx).Return(gears, nil)
		checkinRepo.On("PendingGearIDs", ctx).Return(map[string]int32{}, nil)

		counts, err := svc.Counts(ctx)
		assert.NoError(t, err)
		assert.Equal(t, int32(1), counts.CheckedOutEquipment)
		assert.Equal(t, int32(0), counts.AvailableEquipment)
	})
}
