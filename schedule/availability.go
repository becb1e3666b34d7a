package schedule

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"pizza-club-api/models"
)

// Resolver computes which of a night's slots are bookable right now.
type Resolver struct {
	db *gorm.DB
}

func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db}
}

// AvailableSlots returns the night's bookable slots in ascending start-time
// order. A slot is offerable iff no non-cancelled order occupies it, no
// admin lock covers its (date, time), and its start is not already in the
// past. On any store error the resolver fails closed: no slots, plus the
// error for the caller to log. A failed lookup must never read as "nothing
// taken".
func (r *Resolver) AvailableSlots(ctx context.Context, night models.Night, now time.Time) ([]models.TimeSlot, error) {
	var slots []models.TimeSlot
	if err := r.db.WithContext(ctx).
		Where("night_id = ?", night.ID).
		Order("start_time asc").
		Find(&slots).Error; err != nil {
		return nil, fmt.Errorf("fetch slots for %s: %w", night.Date, err)
	}

	taken, err := r.takenSet(ctx, night, slots)
	if err != nil {
		return nil, err
	}

	var out []models.TimeSlot
	for _, s := range slots {
		if taken[s.StartTime] {
			continue
		}
		startsAt, err := s.StartsAt(night.Date, now.Location())
		if err != nil {
			return nil, fmt.Errorf("slot %d has malformed start time %q: %w", s.ID, s.StartTime, err)
		}
		if startsAt.Before(now) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

// takenSet collects the start times consumed by active orders or covered by
// admin locks for the night.
func (r *Resolver) takenSet(ctx context.Context, night models.Night, slots []models.TimeSlot) (map[string]bool, error) {
	taken := make(map[string]bool)

	byID := make(map[uint]string, len(slots))
	ids := make([]uint, 0, len(slots))
	for _, s := range slots {
		byID[s.ID] = s.StartTime
		ids = append(ids, s.ID)
	}

	if len(ids) > 0 {
		var orders []models.Order
		if err := r.db.WithContext(ctx).
			Where("time_slot_id IN ? AND status <> ?", ids, models.StatusCancelled).
			Find(&orders).Error; err != nil {
			return nil, fmt.Errorf("fetch orders for %s: %w", night.Date, err)
		}
		for _, o := range orders {
			taken[byID[o.TimeSlotID]] = true
		}
	}

	var locks []models.SlotLock
	if err := r.db.WithContext(ctx).
		Where("date = ?", night.Date).
		Find(&locks).Error; err != nil {
		return nil, fmt.Errorf("fetch slot locks for %s: %w", night.Date, err)
	}
	for _, l := range locks {
		taken[l.Time] = true
	}

	return taken, nil
}
