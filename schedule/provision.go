package schedule

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"pizza-club-api/models"
)

// Provisioner creates Night rows and their TimeSlot rosters. It replaces the
// club's old offline provisioning scripts with an idempotent call the admin
// screen can repeat safely.
type Provisioner struct {
	db     *gorm.DB
	roster Roster
}

func NewProvisioner(db *gorm.DB, roster Roster) *Provisioner {
	return &Provisioner{db: db, roster: roster}
}

// EnsureNight creates the night for the given date, with one slot per roster
// time, if it does not already exist. Existing nights keep their slots;
// missing slots are filled in. Only Fridays and Saturdays are valid dates.
func (p *Provisioner) EnsureNight(ctx context.Context, date string) (*models.Night, error) {
	day, err := dayFor(date)
	if err != nil {
		return nil, err
	}

	night := models.Night{Date: date, Day: day, IsActive: true, Capacity: p.roster.Size()}
	err = p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("date = ?", date).FirstOrCreate(&night).Error; err != nil {
			return err
		}

		var existing []models.TimeSlot
		if err := tx.Where("night_id = ?", night.ID).Find(&existing).Error; err != nil {
			return err
		}
		have := make(map[string]bool, len(existing))
		for _, s := range existing {
			have[s.StartTime] = true
		}

		for _, t := range p.roster.Times() {
			if have[t] {
				continue
			}
			slot := models.TimeSlot{NightID: night.ID, StartTime: t, IsAvailable: true, MaxOrders: 1}
			if err := tx.Create(&slot).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("provision night %s: %w", date, err)
	}
	return &night, nil
}

// EnsureCurrent provisions both currently offerable nights.
func (p *Provisioner) EnsureCurrent(ctx context.Context, now time.Time) ([]models.Night, error) {
	var nights []models.Night
	for _, ref := range CurrentNights(now, p.roster) {
		n, err := p.EnsureNight(ctx, ref.Date)
		if err != nil {
			return nil, err
		}
		nights = append(nights, *n)
	}
	return nights, nil
}

func dayFor(date string) (models.NightDay, error) {
	d, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return "", fmt.Errorf("invalid night date %q: %w", date, err)
	}
	switch d.Weekday() {
	case time.Friday:
		return models.DayFriday, nil
	case time.Saturday:
		return models.DaySaturday, nil
	}
	return "", fmt.Errorf("night date %s falls on a %s; pizza nights are Friday and Saturday only", date, d.Weekday())
}
