package models

import (
	"time"

	"gorm.io/gorm"
)

// Booking statuses. A cancelled or expired booking frees its interval.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCheckedIn = "checked_in"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
	BookingStatusExpired   = "expired"
)

// Booking occupies a room for the half-open stay interval [CheckIn, CheckOut).
type Booking struct {
	gorm.Model
	PropertyID uint      `json:"propertyID" gorm:"not null;index"`
	RoomID     uint      `json:"roomID" gorm:"not null;index"`
	GuestName  string    `json:"guestName"`
	CheckIn    time.Time `json:"checkIn" gorm:"not null;index"`
	CheckOut   time.Time `json:"checkOut" gorm:"not null;index"`
	NumGuests  int       `json:"numGuests" gorm:"default:1"`
	TotalPrice float64   `json:"totalPrice"`
	Status     string    `json:"status" gorm:"type:varchar(20);default:'pending';index"` // pending, confirmed, checked_in, completed, cancelled, expired
	Source     string    `json:"source" gorm:"type:varchar(30);default:'allocation'"`    // allocation, staff, overbooking_override
	Note       string    `json:"note"`

	Room     *Room     `json:"room,omitempty" gorm:"foreignKey:RoomID"`
	Property *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
}

// Blocks reports whether the booking still occupies its interval.
func (b *Booking) Blocks() bool {
	return b.Status != BookingStatusCancelled && b.Status != BookingStatusExpired
}
