package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pizza-club-api/matching"
	"pizza-club-api/models"
	"pizza-club-api/notify"
)

// OrderService is the transactional core of the club: it resolves a member
// and a pizza, verifies the chosen slot inside a store transaction, commits
// the order, and fires the confirmation SMS.
type OrderService struct {
	db     *gorm.DB
	sender notify.Sender
	now    func() time.Time
}

func NewOrderService(db *gorm.DB, sender notify.Sender) *OrderService {
	return &OrderService{db: db, sender: sender, now: time.Now}
}

// WithClock overrides the service clock; tests pin it.
func (s *OrderService) WithClock(now func() time.Time) *OrderService {
	s.now = now
	return s
}

// SubmitRequest is the public submission shape: a member reference (zero if
// the client only knows the phone), the human-entered pizza name, and the
// chosen pickup date and start time.
type SubmitRequest struct {
	MemberID   uint
	Phone      string
	PizzaName  string
	PickupDate string
	PickupTime string
}

// Submit places an order. Each resolution failure is terminal for this
// attempt and carries its own code; nothing is retried with relaxed
// matching. The slot re-check and the order insert run in one store
// transaction so two racing submissions for the same slot cannot both
// succeed.
func (s *OrderService) Submit(ctx context.Context, req SubmitRequest) (*models.Order, error) {
	member, err := s.resolveMember(ctx, req.MemberID, req.Phone)
	if err != nil {
		return nil, err
	}

	pizza, err := s.resolvePizza(ctx, req.PizzaName)
	if err != nil {
		return nil, err
	}

	var night models.Night
	if err := s.db.WithContext(ctx).Where("date = ? AND is_active = ?", req.PickupDate, true).First(&night).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(CodeNightNotFound, "no pizza night scheduled for %s", req.PickupDate)
		}
		return nil, storeError("night lookup", err)
	}

	order := models.Order{
		Reference:   uuid.NewString(),
		MemberID:    member.ID,
		PizzaID:     pizza.ID,
		Fulfillment: models.FulfillmentPickup,
		Status:      models.StatusPending,
	}

	// Verify-then-insert must be one transaction: re-checking availability
	// outside it reopens the double-booking window between check and commit.
	// The conditional counter update is the arbiter: an atomic
	// compare-and-commit that at most one racing submission can win,
	// whichever server instance it lands on.
	var slot models.TimeSlot
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("night_id = ? AND start_time = ?", night.ID, req.PickupTime).
			First(&slot).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return newError(CodeSlotUnavailable, "no %s slot on %s, please re-select", req.PickupTime, night.Date)
			}
			return storeError("slot lookup", err)
		}

		var locked int64
		if err := tx.Model(&models.SlotLock{}).
			Where("date = ? AND time = ?", night.Date, slot.StartTime).
			Count(&locked).Error; err != nil {
			return storeError("slot lock check", err)
		}
		if locked > 0 {
			return newError(CodeSlotUnavailable, "slot %s on %s is locked, please re-select", slot.StartTime, night.Date)
		}

		startsAt, err := slot.StartsAt(night.Date, s.now().Location())
		if err != nil {
			return storeError("slot time parse", err)
		}
		if startsAt.Before(s.now()) {
			return newError(CodeSlotUnavailable, "slot %s on %s has already passed", slot.StartTime, night.Date)
		}

		// Orders are the truth the counter caches; a counter drifted below
		// the real occupancy must not let a booking through.
		var occupied int64
		if err := tx.Model(&models.Order{}).
			Where("time_slot_id = ? AND status <> ?", slot.ID, models.StatusCancelled).
			Count(&occupied).Error; err != nil {
			return storeError("slot occupancy check", err)
		}
		if occupied >= int64(slot.MaxOrders) {
			return newError(CodeSlotUnavailable, "slot %s on %s was just taken, please re-select", slot.StartTime, night.Date)
		}

		res := tx.Model(&models.TimeSlot{}).
			Where("id = ? AND is_available = ? AND current_orders < max_orders", slot.ID, true).
			UpdateColumn("current_orders", gorm.Expr("current_orders + 1"))
		if res.Error != nil {
			return storeError("slot claim", res.Error)
		}
		if res.RowsAffected == 0 {
			return newError(CodeSlotUnavailable, "slot %s on %s was just taken, please re-select", slot.StartTime, night.Date)
		}

		order.TimeSlotID = slot.ID
		if err := tx.Create(&order).Error; err != nil {
			return storeError("order insert", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	text := notify.Confirmation(member.FirstName, pizza.Name, night.Date, slot.StartTime)
	if !s.sender.Send(member.Phone, text) {
		log.Printf("⚠️ order %s: confirmation not delivered to member %d", order.Reference, member.ID)
	}

	return &order, nil
}

// resolveMember prefers the stable identifier; an unknown or zero id falls
// back to a phone lookup, which must match exactly one member. Ambiguity is
// treated the same as absence.
func (s *OrderService) resolveMember(ctx context.Context, memberID uint, phone string) (*models.Member, error) {
	if memberID != 0 {
		var m models.Member
		err := s.db.WithContext(ctx).First(&m, memberID).Error
		if err == nil {
			return &m, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storeError("member lookup", err)
		}
		log.Printf("member id %d not found, falling back to phone lookup", memberID)
	}

	if strings.TrimSpace(phone) == "" {
		return nil, newError(CodeMemberNotFound, "no member id and no phone number supplied")
	}

	var matches []models.Member
	if err := s.db.WithContext(ctx).Where("phone = ?", phone).Find(&matches).Error; err != nil {
		return nil, storeError("member phone lookup", err)
	}
	switch len(matches) {
	case 1:
		return &matches[0], nil
	case 0:
		return nil, newError(CodeMemberNotFound, "no member found for phone %s", phone)
	default:
		return nil, newError(CodeMemberNotFound, "phone %s matches %d members, cannot pick one", phone, len(matches))
	}
}

// resolvePizza matches the display name against the active catalog through
// the tier chain and logs which tier won. A miss reports the catalog names
// so a misspelling is diagnosable from the error alone.
func (s *OrderService) resolvePizza(ctx context.Context, name string) (*models.Pizza, error) {
	var catalog []models.Pizza
	if err := s.db.WithContext(ctx).Where("is_active = ?", true).Order("name asc").Find(&catalog).Error; err != nil {
		return nil, storeError("pizza catalog fetch", err)
	}

	match, ok := matching.Resolve(name, catalog)
	if !ok {
		names := make([]string, len(catalog))
		for i, p := range catalog {
			names[i] = p.Name
		}
		return nil, newError(CodePizzaNotFound, "no pizza matches %q; on the menu: %s",
			matching.Normalize(name), strings.Join(names, ", "))
	}
	log.Printf("pizza %q resolved to %q via %s match", name, match.Pizza.Name, match.Strategy)
	return &match.Pizza, nil
}

// ByReference loads an order with its member, pizza and slot for the
// confirmation screen.
func (s *OrderService) ByReference(ctx context.Context, ref string) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Preload("Member").Preload("Pizza").Preload("TimeSlot").
		Where("reference = ?", ref).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(CodeOrderNotFound, "no order with reference %s", ref)
		}
		return nil, storeError("order lookup", err)
	}
	return &order, nil
}

// ForMember lists a member's orders, newest first.
func (s *OrderService) ForMember(ctx context.Context, memberID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("Pizza").Preload("TimeSlot").
		Where("member_id = ?", memberID).
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		return nil, storeError("order list", err)
	}
	return orders, nil
}
