package models

import (
	"time"
)

// RoomHold mirrors a live lease from the hold store into the database so
// staff dashboards can see it. The lease store is authoritative; these rows
// are written best-effort and may describe an already-expired lease.
type RoomHold struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	LeaseID   string    `json:"leaseID" gorm:"size:64;uniqueIndex"`
	RoomID    uint      `json:"roomID" gorm:"not null;index"`
	CheckIn   time.Time `json:"checkIn" gorm:"not null"`
	CheckOut  time.Time `json:"checkOut" gorm:"not null"`
	HolderRef string    `json:"holderRef" gorm:"size:128"`
	ExpiresAt time.Time `json:"expiresAt" gorm:"index"`
	CreatedAt time.Time `json:"createdAt"`
}
