package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Room type categories ordered from lowest to highest tier.
const (
	CategoryEconomy      = "economy"
	CategoryStandard     = "standard"
	CategoryDeluxe       = "deluxe"
	CategorySuite        = "suite"
	CategoryPresidential = "presidential"
)

var categoryRank = map[string]int{
	CategoryEconomy:      0,
	CategoryStandard:     1,
	CategoryDeluxe:       2,
	CategorySuite:        3,
	CategoryPresidential: 4,
}

// CategoryRank returns the tier position of a category name, -1 when unknown.
func CategoryRank(category string) int {
	if r, ok := categoryRank[category]; ok {
		return r
	}
	return -1
}

type RoomType struct {
	gorm.Model
	PropertyID        uint           `json:"propertyID" gorm:"not null;index"`
	Name              string         `json:"name" gorm:"not null"`
	Description       string         `json:"description" gorm:"type:text"`
	Category          string         `json:"category" gorm:"type:varchar(20);default:'standard';index"` // economy, standard, deluxe, suite, presidential
	MaxOccupancy      int            `json:"maxOccupancy" gorm:"not null;default:2"`
	RoomSizeSqm       float64        `json:"roomSizeSqm"`
	BasePricePerNight float64        `json:"basePricePerNight" gorm:"not null"`
	Amenities         datatypes.JSON `json:"amenities"` // JSON array of amenity names
	IsActive          *bool          `json:"isActive" gorm:"default:true"`
	IsBookable        *bool          `json:"isBookable" gorm:"default:true"`

	Property *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
	Rooms    []Room    `json:"rooms,omitempty" gorm:"foreignKey:RoomTypeID"`
}

// AmenityList decodes the jsonb amenity catalog; a broken column decodes as
// empty.
func (rt *RoomType) AmenityList() []string {
	return decodeStringArray(rt.Amenities)
}
