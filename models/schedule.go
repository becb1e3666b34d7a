package models

import "time"

// Dates and start times are stored as strings in these layouts so that a
// slot lock keyed by (date, time) matches a TimeSlot row exactly.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// NightDay tags a night as one of the two weekly pizza nights.
type NightDay string

const (
	DayFriday   NightDay = "friday"
	DaySaturday NightDay = "saturday"
)

type Night struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Date      string     `json:"date" gorm:"uniqueIndex;not null"`
	Day       NightDay   `json:"day" gorm:"not null"`
	IsActive  bool       `json:"is_active" gorm:"default:true"`
	Capacity  int        `json:"capacity"`
	TimeSlots []TimeSlot `json:"time_slots,omitempty" gorm:"foreignKey:NightID"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type TimeSlot struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	NightID       uint      `json:"night_id" gorm:"not null;uniqueIndex:idx_night_start"`
	Night         Night     `json:"night,omitempty" gorm:"foreignKey:NightID"`
	StartTime     string    `json:"start_time" gorm:"not null;uniqueIndex:idx_night_start"`
	IsAvailable   bool      `json:"is_available" gorm:"default:true"`
	MaxOrders     int       `json:"max_orders" gorm:"default:1"`
	CurrentOrders int       `json:"current_orders" gorm:"default:0"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SlotLock marks a (date, time) pair as administratively unbookable,
// independent of the slot's occupancy counter.
type SlotLock struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Date      string    `json:"date" gorm:"not null;uniqueIndex:idx_lock_date_time"`
	Time      string    `json:"time" gorm:"not null;uniqueIndex:idx_lock_date_time"`
	LockedBy  string    `json:"locked_by"`
	CreatedAt time.Time `json:"created_at"`
}

// StartsAt combines the owning night's date with the slot's start time into
// a wall-clock instant in the given location.
func (s TimeSlot) StartsAt(date string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+TimeLayout, date+" "+s.StartTime, loc)
}
