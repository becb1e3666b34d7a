package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizza-club-api/models"
	"pizza-club-api/schedule"
)

func addAdmin(t *testing.T, f *fixture) models.Member {
	t.Helper()
	admin := models.Member{
		FirstName: "Club", LastName: "Admin", Username: "cadmin",
		PasswordHash: "x", IsAdmin: true,
	}
	require.NoError(t, f.db.Create(&admin).Error)
	return admin
}

func availableTimes(t *testing.T, f *fixture) []string {
	t.Helper()
	slots, err := schedule.NewResolver(f.db).
		AvailableSlots(context.Background(), f.night, testClock())
	require.NoError(t, err)
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.StartTime
	}
	return out
}

func TestSetSlotLockIsIdempotent(t *testing.T) {
	f := newFixture(t)
	addAdmin(t, f)
	ctx := context.Background()

	require.NoError(t, f.admins.SetSlotLock(ctx, "cadmin", "2025-01-10", "18:00", true))
	require.NoError(t, f.admins.SetSlotLock(ctx, "cadmin", "2025-01-10", "18:00", true))

	var locks int64
	f.db.Model(&models.SlotLock{}).Where("date = ? AND time = ?", "2025-01-10", "18:00").Count(&locks)
	assert.EqualValues(t, 1, locks)
	assert.NotContains(t, availableTimes(t, f), "18:00")

	require.NoError(t, f.admins.SetSlotLock(ctx, "cadmin", "2025-01-10", "18:00", false))
	require.NoError(t, f.admins.SetSlotLock(ctx, "cadmin", "2025-01-10", "18:00", false))

	f.db.Model(&models.SlotLock{}).Where("date = ? AND time = ?", "2025-01-10", "18:00").Count(&locks)
	assert.EqualValues(t, 0, locks)
	assert.Contains(t, availableTimes(t, f), "18:00")
}

func TestSetSlotLockRequiresAdmin(t *testing.T) {
	f := newFixture(t)

	// A regular member, even a real one, cannot lock slots.
	err := f.admins.SetSlotLock(context.Background(), "klamb", "2025-01-10", "18:00", true)
	require.Error(t, err)
	assert.Equal(t, CodeNotAuthorized, CodeOf(err))

	err = f.admins.SetSlotLock(context.Background(), "nobody", "2025-01-10", "18:00", true)
	require.Error(t, err)
	assert.Equal(t, CodeNotAuthorized, CodeOf(err))
}

func TestCancelOrderReopensSlot(t *testing.T) {
	f := newFixture(t)
	addAdmin(t, f)
	ctx := context.Background()

	order, err := f.orders.Submit(ctx, SubmitRequest{
		MemberID: f.member.ID, PizzaName: "Margherita",
		PickupDate: "2025-01-10", PickupTime: "18:00",
	})
	require.NoError(t, err)
	require.NotContains(t, availableTimes(t, f), "18:00")

	require.NoError(t, f.admins.CancelOrder(ctx, "cadmin", order.ID))

	// Hard delete: the record is gone and the slot is offerable again.
	var count int64
	f.db.Model(&models.Order{}).Where("id = ?", order.ID).Count(&count)
	assert.EqualValues(t, 0, count)
	assert.Contains(t, availableTimes(t, f), "18:00")

	// Counter cache rolled back too.
	var slot models.TimeSlot
	require.NoError(t, f.db.Where("night_id = ? AND start_time = ?", f.night.ID, "18:00").First(&slot).Error)
	assert.Equal(t, 0, slot.CurrentOrders)

	// And the slot can actually be rebooked.
	_, err = f.orders.Submit(ctx, SubmitRequest{
		MemberID: f.member.ID, PizzaName: "Pepperoni",
		PickupDate: "2025-01-10", PickupTime: "18:00",
	})
	assert.NoError(t, err)
}

func TestCancelOrderRequiresAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order, err := f.orders.Submit(ctx, SubmitRequest{
		MemberID: f.member.ID, PizzaName: "Margherita",
		PickupDate: "2025-01-10", PickupTime: "18:00",
	})
	require.NoError(t, err)

	err = f.admins.CancelOrder(ctx, "klamb", order.ID)
	require.Error(t, err)
	assert.Equal(t, CodeNotAuthorized, CodeOf(err))

	var count int64
	f.db.Model(&models.Order{}).Where("id = ?", order.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestCancelOrderUnknownOrder(t *testing.T) {
	f := newFixture(t)
	addAdmin(t, f)

	err := f.admins.CancelOrder(context.Background(), "cadmin", 4242)
	require.Error(t, err)
	assert.Equal(t, CodeOrderNotFound, CodeOf(err))
}

func TestUpdateOrderStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order, err := f.orders.Submit(ctx, SubmitRequest{
		MemberID: f.member.ID, PizzaName: "Margherita",
		PickupDate: "2025-01-10", PickupTime: "18:00",
	})
	require.NoError(t, err)

	updated, err := f.admins.UpdateOrderStatus(ctx, order.ID, models.StatusPreparing)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPreparing, updated.Status)

	var stored models.Order
	require.NoError(t, f.db.First(&stored, order.ID).Error)
	assert.Equal(t, models.StatusPreparing, stored.Status)
}

func TestOrdersForDateInSlotOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, tm := range []string{"19:00", "17:30", "18:15"} {
		_, err := f.orders.Submit(ctx, SubmitRequest{
			MemberID: f.member.ID, PizzaName: "Margherita",
			PickupDate: "2025-01-10", PickupTime: tm,
		})
		require.NoError(t, err)
	}

	list, err := f.admins.OrdersForDate(ctx, "2025-01-10")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "17:30", list[0].TimeSlot.StartTime)
	assert.Equal(t, "18:15", list[1].TimeSlot.StartTime)
	assert.Equal(t, "19:00", list[2].TimeSlot.StartTime)
	assert.Equal(t, "Kay", list[0].Member.FirstName)

	_, err = f.admins.OrdersForDate(ctx, "2025-03-07")
	require.Error(t, err)
	assert.Equal(t, CodeNightNotFound, CodeOf(err))
}

func TestLockBeatsConcurrentBooking(t *testing.T) {
	f := newFixture(t)
	addAdmin(t, f)
	ctx := context.Background()

	// Lock lands first; the submission's in-transaction re-check must see it
	// even though the UI rendered the slot as available beforehand.
	times := availableTimes(t, f)
	require.Contains(t, times, "19:15")

	require.NoError(t, f.admins.SetSlotLock(ctx, "cadmin", "2025-01-10", "19:15", true))

	_, err := f.orders.Submit(ctx, SubmitRequest{
		MemberID: f.member.ID, PizzaName: "Margherita",
		PickupDate: "2025-01-10", PickupTime: "19:15",
	})
	require.Error(t, err)
	assert.Equal(t, CodeSlotUnavailable, CodeOf(err))
}
