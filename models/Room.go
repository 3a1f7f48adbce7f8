package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Room condition grades.
const (
	ConditionExcellent = "excellent"
	ConditionGood      = "good"
	ConditionFair      = "fair"
	ConditionPoor      = "poor"
)

// Housekeeping statuses.
const (
	HousekeepingInspected  = "inspected"
	HousekeepingClean      = "clean"
	HousekeepingInProgress = "cleaning_in_progress"
	HousekeepingDirty      = "dirty"
)

// Operational room statuses.
const (
	RoomStatusAvailable    = "available"
	RoomStatusClean        = "clean"
	RoomStatusOccupied     = "occupied"
	RoomStatusOutOfService = "out_of_service"
)

type Room struct {
	gorm.Model
	PropertyID uint   `json:"propertyID" gorm:"not null;index"`
	RoomTypeID uint   `json:"roomTypeID" gorm:"not null;index"`
	RoomNumber string `json:"roomNumber" gorm:"not null;index"`
	Floor      int    `json:"floor" gorm:"index"`
	Wing       string `json:"wing" gorm:"type:varchar(32)"`

	ViewTags     datatypes.JSON `json:"viewTags"`  // JSON array, e.g. ["sea","garden"]
	Amenities    datatypes.JSON `json:"amenities"` // JSON array of amenity names
	IsAccessible bool           `json:"isAccessible" gorm:"default:false"`

	Condition          string `json:"condition" gorm:"type:varchar(20);default:'good'"`
	HousekeepingStatus string `json:"housekeepingStatus" gorm:"type:varchar(30);default:'clean'"`
	Status             string `json:"status" gorm:"type:varchar(20);default:'available';index"`
	IsActive           *bool  `json:"isActive" gorm:"default:true"`
	IsBookable         *bool  `json:"isBookable" gorm:"default:true"`

	OpenMaintenanceIssues  int        `json:"openMaintenanceIssues" gorm:"default:0"`
	OpenHousekeepingIssues int        `json:"openHousekeepingIssues" gorm:"default:0"`
	LastMaintainedAt       *time.Time `json:"lastMaintainedAt"`
	GuestRating            float64    `json:"guestRating" gorm:"default:0"` // average stars, 0..5

	// DynamicPricePerNight overrides the type base price when > 0.
	DynamicPricePerNight float64       `json:"dynamicPricePerNight" gorm:"default:0"`
	SpecialRates         []SpecialRate `json:"specialRates,omitempty" gorm:"foreignKey:RoomID"`

	RoomType *RoomType `json:"roomType,omitempty" gorm:"foreignKey:RoomTypeID"`
	Property *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
}

// SpecialRate is a time-boxed nightly price override. It applies to a stay
// only when its window fully contains the stay interval.
type SpecialRate struct {
	gorm.Model
	RoomID      uint      `json:"roomID" gorm:"not null;index"`
	Name        string    `json:"name"`
	StartDate   time.Time `json:"startDate" gorm:"not null"`
	EndDate     time.Time `json:"endDate" gorm:"not null"`
	NightlyRate float64   `json:"nightlyRate" gorm:"not null"`
	IsActive    bool      `json:"isActive" gorm:"default:true"`
}

// Covers reports whether the rate window fully contains [checkIn, checkOut).
func (s *SpecialRate) Covers(checkIn, checkOut time.Time) bool {
	return !checkIn.Before(s.StartDate) && !checkOut.After(s.EndDate)
}

// NightlyPrice is the effective per-night base rate before seasonal or
// special-rate adjustments.
func (r *Room) NightlyPrice() float64 {
	if r.DynamicPricePerNight > 0 {
		return r.DynamicPricePerNight
	}
	if r.RoomType != nil {
		return r.RoomType.BasePricePerNight
	}
	return 0
}

// ViewTagList decodes the jsonb view tags; a broken column decodes as empty.
func (r *Room) ViewTagList() []string {
	return decodeStringArray(r.ViewTags)
}

// AmenityList decodes the jsonb amenities; a broken column decodes as empty.
func (r *Room) AmenityList() []string {
	return decodeStringArray(r.Amenities)
}

func decodeStringArray(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return []string{}
	}
	return out
}
