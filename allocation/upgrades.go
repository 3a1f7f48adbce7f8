package allocation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/himmu2625/baithkaGhar-sub018/inventory"
	"github.com/himmu2625/baithkaGhar-sub018/models"

	"golang.org/x/exp/slices"
)

// Upgrader proposes higher-tier room types with open inventory for a stay.
type Upgrader struct {
	rooms      inventory.RoomRepository
	finder     *Finder
	calculator *Calculator
}

func NewUpgrader(rooms inventory.RoomRepository, finder *Finder, calculator *Calculator) *Upgrader {
	return &Upgrader{rooms: rooms, finder: finder, calculator: calculator}
}

// GetUpgradeOptions lists room types above the current one (by category
// tier or base price) that have at least one available room for the stay,
// sorted ascending by price delta.
func (u *Upgrader) GetUpgradeOptions(ctx context.Context, propertyID, currentTypeID uint, checkIn, checkOut time.Time, guestCount int) ([]UpgradeOption, error) {
	nights, err := NightCount(checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	current, err := u.rooms.GetRoomType(ctx, currentTypeID)
	if errors.Is(err, inventory.ErrNotFound) {
		return nil, ErrRoomTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("upgrade options: %w", err)
	}

	property, err := u.rooms.GetProperty(ctx, propertyID)
	if errors.Is(err, inventory.ErrNotFound) {
		return nil, ErrPropertyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("upgrade options: %w", err)
	}

	currentPrice := current.BasePricePerNight * float64(nights) * property.MultiplierFor(checkIn)

	roomTypes, err := u.rooms.FindRoomTypes(ctx, inventory.RoomTypeFilter{
		PropertyID:   propertyID,
		MinOccupancy: guestCount,
		OnlyBookable: true,
	})
	if err != nil {
		return nil, fmt.Errorf("upgrade options: %w", err)
	}

	options := []UpgradeOption{}
	for i := range roomTypes {
		rt := &roomTypes[i]
		if rt.ID == current.ID || !isUpgrade(current, rt) {
			continue
		}

		candidates, err := u.finder.FindCandidates(ctx, StayRequest{
			PropertyID:  propertyID,
			CheckIn:     checkIn,
			CheckOut:    checkOut,
			GuestCount:  guestCount,
			Preferences: &Preferences{RoomTypeID: rt.ID},
		}, nil)
		if err != nil {
			return nil, err
		}
		if len(candidates) == 0 {
			continue
		}

		room := &candidates[0]
		quote, err := u.calculator.CalculatePrice(ctx, room.ID, checkIn, checkOut)
		if err != nil {
			return nil, err
		}

		options = append(options, UpgradeOption{
			RoomID:          room.ID,
			RoomNumber:      room.RoomNumber,
			RoomTypeID:      rt.ID,
			TypeName:        rt.Name,
			CurrentPrice:    currentPrice,
			UpgradePrice:    quote.TotalPrice,
			PriceDifference: quote.TotalPrice - currentPrice,
			Benefits:        upgradeBenefits(current, rt),
			Available:       true,
		})
	}

	slices.SortStableFunc(options, func(a, b UpgradeOption) int {
		switch {
		case a.PriceDifference < b.PriceDifference:
			return -1
		case a.PriceDifference > b.PriceDifference:
			return 1
		}
		return 0
	})
	return options, nil
}

// isUpgrade: strictly higher tier, or higher base price at the same tier.
func isUpgrade(current, other *models.RoomType) bool {
	cr, or := models.CategoryRank(current.Category), models.CategoryRank(other.Category)
	if or > cr {
		return true
	}
	return other.BasePricePerNight > current.BasePricePerNight
}

// upgradeBenefits states the derived facts as human-readable strings.
func upgradeBenefits(current, other *models.RoomType) []string {
	benefits := []string{}
	if other.RoomSizeSqm > current.RoomSizeSqm {
		benefits = append(benefits, fmt.Sprintf("%.0f sqm larger room", other.RoomSizeSqm-current.RoomSizeSqm))
	}
	if other.MaxOccupancy > current.MaxOccupancy {
		benefits = append(benefits, fmt.Sprintf("sleeps up to %d guests", other.MaxOccupancy))
	}
	currentAmenities := len(current.AmenityList())
	otherAmenities := len(other.AmenityList())
	if otherAmenities > currentAmenities {
		benefits = append(benefits, fmt.Sprintf("%d additional amenities", otherAmenities-currentAmenities))
	}
	if models.CategoryRank(other.Category) > models.CategoryRank(current.Category) {
		benefits = append(benefits, fmt.Sprintf("%s category instead of %s", other.Category, current.Category))
	}
	return benefits
}
