package service

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"pizza-club-api/models"
)

// AdminService carries the privileged schedule operations. Every call
// re-verifies the supplied admin username against the member registry.
// There is deliberately no session trust here, so a forged client that
// skipped the login screen still gets nothing.
type AdminService struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// VerifyAdmin resolves the username to a registered admin member.
func (s *AdminService) VerifyAdmin(ctx context.Context, username string) (*models.Member, error) {
	var m models.Member
	err := s.db.WithContext(ctx).
		Where("username = ? AND is_admin = ?", username, true).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(CodeNotAuthorized, "%q is not a registered admin", username)
		}
		return nil, storeError("admin lookup", err)
	}
	return &m, nil
}

// SetSlotLock locks or unlocks the (date, time) pair. Idempotent in both
// directions: locking a locked slot and unlocking an unlocked slot are
// no-op successes.
func (s *AdminService) SetSlotLock(ctx context.Context, adminUsername, date, clock string, locked bool) error {
	admin, err := s.VerifyAdmin(ctx, adminUsername)
	if err != nil {
		return err
	}

	if locked {
		lock := models.SlotLock{Date: date, Time: clock, LockedBy: admin.Username}
		err := s.db.WithContext(ctx).
			Where("date = ? AND time = ?", date, clock).
			FirstOrCreate(&lock).Error
		if err != nil {
			return storeError("slot lock insert", err)
		}
		log.Printf("🔒 slot %s %s locked by %s", date, clock, admin.Username)
		return nil
	}

	res := s.db.WithContext(ctx).
		Where("date = ? AND time = ?", date, clock).
		Delete(&models.SlotLock{})
	if res.Error != nil {
		return storeError("slot lock delete", res.Error)
	}
	if res.RowsAffected > 0 {
		log.Printf("🔓 slot %s %s unlocked by %s", date, clock, admin.Username)
	}
	return nil
}

// CancelOrder hard-deletes the order. The slot reopens on the next
// availability computation, since that only counts extant non-cancelled
// orders. The slot counter cache is decremented best-effort.
func (s *AdminService) CancelOrder(ctx context.Context, adminUsername string, orderID uint) error {
	admin, err := s.VerifyAdmin(ctx, adminUsername)
	if err != nil {
		return err
	}

	var order models.Order
	if err := s.db.WithContext(ctx).First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newError(CodeOrderNotFound, "no order with id %d", orderID)
		}
		return storeError("order lookup", err)
	}

	if err := s.db.WithContext(ctx).Delete(&models.Order{}, orderID).Error; err != nil {
		return storeError("order delete", err)
	}

	res := s.db.WithContext(ctx).Model(&models.TimeSlot{}).
		Where("id = ? AND current_orders > 0", order.TimeSlotID).
		UpdateColumn("current_orders", gorm.Expr("current_orders - 1"))
	if res.Error != nil {
		log.Printf("⚠️ cancel order %d: slot %d counter decrement failed, needs reconciliation: %v",
			orderID, order.TimeSlotID, res.Error)
	}

	log.Printf("🗑️ order %d cancelled by %s", orderID, admin.Username)
	return nil
}

// UpdateOrderStatus applies a kitchen/admin status transition after the
// state machine validates it for the acting role.
func (s *AdminService) UpdateOrderStatus(ctx context.Context, orderID uint, to models.OrderStatus) (*models.Order, error) {
	var order models.Order
	if err := s.db.WithContext(ctx).First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(CodeOrderNotFound, "no order with id %d", orderID)
		}
		return nil, storeError("order lookup", err)
	}
	prev := order.Status
	if err := s.db.WithContext(ctx).Model(&order).Update("status", to).Error; err != nil {
		return nil, storeError("order status update", err)
	}

	// A status-cancel releases the slot's counter cache the same way a hard
	// delete does, so the two cancel paths cannot drift apart.
	if to == models.StatusCancelled && prev != models.StatusCancelled {
		res := s.db.WithContext(ctx).Model(&models.TimeSlot{}).
			Where("id = ? AND current_orders > 0", order.TimeSlotID).
			UpdateColumn("current_orders", gorm.Expr("current_orders - 1"))
		if res.Error != nil {
			log.Printf("⚠️ cancel order %d: slot %d counter decrement failed, needs reconciliation: %v",
				orderID, order.TimeSlotID, res.Error)
		}
	}
	return &order, nil
}

// OrdersForDate returns the kitchen display: the night's orders with member,
// pizza and slot loaded, in slot order.
func (s *AdminService) OrdersForDate(ctx context.Context, date string) ([]models.Order, error) {
	var night models.Night
	if err := s.db.WithContext(ctx).Where("date = ?", date).First(&night).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(CodeNightNotFound, "no pizza night scheduled for %s", date)
		}
		return nil, storeError("night lookup", err)
	}

	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("Member").Preload("Pizza").Preload("TimeSlot").
		Joins("JOIN time_slots ON time_slots.id = orders.time_slot_id").
		Where("time_slots.night_id = ?", night.ID).
		Order("time_slots.start_time asc").
		Find(&orders).Error
	if err != nil {
		return nil, storeError("order list", err)
	}
	return orders, nil
}
