package allocation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/himmu2625/baithkaGhar-sub018/inventory"
	"github.com/himmu2625/baithkaGhar-sub018/models"
)

// Calculator prices a stay from base rate, seasonal multiplier and
// special-rate windows.
type Calculator struct {
	rooms inventory.RoomRepository
}

func NewCalculator(rooms inventory.RoomRepository) *Calculator {
	return &Calculator{rooms: rooms}
}

// NightCount is ceil(checkOut - checkIn) in days; anything below one night
// is an invalid range.
func NightCount(checkIn, checkOut time.Time) (int, error) {
	nights := int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
	if nights < 1 {
		return 0, ErrInvalidDateRange
	}
	return nights, nil
}

// CalculatePrice fetches fresh room and property state and prices the stay.
// A special rate applies only when its window fully contains the stay; the
// lowest applicable rate wins and replaces the seasonal multiplier.
func (c *Calculator) CalculatePrice(ctx context.Context, roomID uint, checkIn, checkOut time.Time) (*PriceQuote, error) {
	nights, err := NightCount(checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	room, err := c.rooms.GetRoom(ctx, roomID)
	if errors.Is(err, inventory.ErrNotFound) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("price room %d: %w", roomID, err)
	}

	property, err := c.rooms.GetProperty(ctx, room.PropertyID)
	if errors.Is(err, inventory.ErrNotFound) {
		return nil, ErrPropertyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("price room %d: %w", roomID, err)
	}

	return QuoteRoom(room, property, checkIn, checkOut, nights), nil
}

// QuoteRoom is the pure pricing core, shared with the upgrade advisor.
func QuoteRoom(room *models.Room, property *models.Property, checkIn, checkOut time.Time, nights int) *PriceQuote {
	quote := &PriceQuote{
		RoomID:              room.ID,
		BaseRate:            room.NightlyPrice(),
		Nights:              nights,
		SeasonalMultiplier:  property.MultiplierFor(checkIn),
		AppliedSpecialRates: []string{},
	}

	best := 0.0
	for i := range room.SpecialRates {
		sr := &room.SpecialRates[i]
		if !sr.IsActive || !sr.Covers(checkIn, checkOut) {
			continue
		}
		if len(quote.AppliedSpecialRates) == 0 || sr.NightlyRate < best {
			best = sr.NightlyRate
		}
		quote.AppliedSpecialRates = append(quote.AppliedSpecialRates, sr.Name)
	}

	if len(quote.AppliedSpecialRates) > 0 {
		// special rates override seasonal pricing, they do not compound
		quote.TotalPrice = best * float64(nights)
	} else {
		quote.TotalPrice = quote.BaseRate * float64(nights) * quote.SeasonalMultiplier
	}
	quote.PricePerNight = quote.TotalPrice / float64(nights)
	return quote
}
