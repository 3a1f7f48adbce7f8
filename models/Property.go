package models

import (
	"time"

	"gorm.io/gorm"
)

type Property struct {
	gorm.Model
	Name         string  `json:"name" gorm:"not null"`
	AddressLine1 string  `json:"addressLine1"`
	AddressLine2 string  `json:"addressLine2"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	Zip          string  `json:"zip"`
	Country      string  `json:"country"`
	Lat          float32 `json:"lat"`
	Lng          float32 `json:"lng"`
	Timezone     string  `json:"timezone" gorm:"type:varchar(64);default:'UTC'"`
	CheckInTime  string  `json:"checkInTime" gorm:"type:varchar(10);default:'15:00'"`
	CheckOutTime string  `json:"checkOutTime" gorm:"type:varchar(10);default:'11:00'"`
	IsActive     *bool   `json:"isActive" gorm:"default:true"`

	RoomTypes     []RoomType     `json:"roomTypes,omitempty" gorm:"foreignKey:PropertyID"`
	SeasonalRates []SeasonalRate `json:"seasonalRates,omitempty" gorm:"foreignKey:PropertyID"`
}

// SeasonalRate scales nightly pricing for stays starting inside its window.
// Windows are half-open on dates, like everything else in the engine.
type SeasonalRate struct {
	gorm.Model
	PropertyID uint      `json:"propertyID" gorm:"not null;index"`
	Name       string    `json:"name"` // e.g. "monsoon", "peak winter"
	StartDate  time.Time `json:"startDate" gorm:"not null"`
	EndDate    time.Time `json:"endDate" gorm:"not null"`
	Multiplier float64   `json:"multiplier" gorm:"not null;default:1"`
	IsActive   bool      `json:"isActive" gorm:"default:true"`
}

// MultiplierFor returns the seasonal multiplier applying to a stay that
// begins at checkIn, or 1.0 when no active window contains it.
func (p *Property) MultiplierFor(checkIn time.Time) float64 {
	for _, s := range p.SeasonalRates {
		if !s.IsActive {
			continue
		}
		if !checkIn.Before(s.StartDate) && checkIn.Before(s.EndDate) {
			return s.Multiplier
		}
	}
	return 1.0
}
