package models

import "time"

// OrderStatus represents the kitchen lifecycle of a pickup order
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusPickedUp  OrderStatus = "picked_up"
	StatusCancelled OrderStatus = "cancelled"
)

// Fulfillment is fixed to pickup for the club; kept as a column so the
// kitchen display doesn't need to special-case it.
const FulfillmentPickup = "pickup"

type Order struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	Reference   string      `json:"reference" gorm:"uniqueIndex;not null"`
	MemberID    uint        `json:"member_id" gorm:"not null"`
	Member      Member      `json:"member,omitempty" gorm:"foreignKey:MemberID"`
	PizzaID     uint        `json:"pizza_id" gorm:"not null"`
	Pizza       Pizza       `json:"pizza,omitempty" gorm:"foreignKey:PizzaID"`
	TimeSlotID  uint        `json:"time_slot_id" gorm:"not null;index"`
	TimeSlot    TimeSlot    `json:"time_slot,omitempty" gorm:"foreignKey:TimeSlotID"`
	Fulfillment string      `json:"fulfillment" gorm:"not null;default:'pickup'"`
	Status      OrderStatus `json:"status" gorm:"not null;default:'pending'"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
