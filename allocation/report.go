package allocation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/himmu2625/baithkaGhar-sub018/inventory"
	"github.com/himmu2625/baithkaGhar-sub018/models"
)

// GetAvailabilityReport aggregates per-room occupancy, hold state and
// revenue projection over [start, end) for staff dashboards.
func (e *Engine) GetAvailabilityReport(ctx context.Context, propertyID uint, start, end time.Time) (*Report, error) {
	nights, err := NightCount(start, end)
	if err != nil {
		return nil, err
	}

	if _, err := e.inv.GetProperty(ctx, propertyID); err != nil {
		if errors.Is(err, inventory.ErrNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, fmt.Errorf("availability report: %w", err)
	}

	rooms, err := e.inv.FindRooms(ctx, inventory.RoomFilter{
		PropertyID: propertyID,
		ActiveOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("availability report: %w", err)
	}

	bookings, err := e.inv.FindBookings(ctx, inventory.BookingFilter{
		PropertyID:      propertyID,
		ExcludeStatuses: []string{models.BookingStatusCancelled, models.BookingStatusExpired},
		From:            start,
		To:              end,
	})
	if err != nil {
		return nil, fmt.Errorf("availability report: %w", err)
	}

	byRoom := map[uint][]models.Booking{}
	for _, b := range bookings {
		byRoom[b.RoomID] = append(byRoom[b.RoomID], b)
	}

	report := &Report{
		PropertyID: propertyID,
		Start:      start,
		End:        end,
		Nights:     nights,
		TotalRooms: len(rooms),
		Rooms:      make([]RoomOccupancy, 0, len(rooms)),
	}

	bookedNightsTotal := 0
	for i := range rooms {
		room := &rooms[i]

		booked := 0
		for _, b := range byRoom[room.ID] {
			booked += overlapNights(b.CheckIn, b.CheckOut, start, end)
		}
		if booked > nights {
			booked = nights
		}

		lease, err := e.holds.Get(ctx, room.ID)
		if err != nil {
			return nil, fmt.Errorf("availability report: %w", err)
		}
		onHold := lease != nil && Overlaps(lease.CheckIn, lease.CheckOut, start, end)

		occ := RoomOccupancy{
			RoomID:           room.ID,
			RoomNumber:       room.RoomNumber,
			TypeName:         typeName(room),
			Floor:            room.Floor,
			NightsBooked:     booked,
			OccupancyRate:    float64(booked) / float64(nights),
			ProjectedRevenue: room.NightlyPrice() * float64(booked),
			OnHold:           onHold,
			FullyAvailable:   booked == 0 && !onHold,
		}
		report.Rooms = append(report.Rooms, occ)

		bookedNightsTotal += booked
		report.ProjectedRevenue += occ.ProjectedRevenue
		if occ.FullyAvailable {
			report.FullyAvailable++
		}
		if onHold {
			report.HeldRooms++
		}
	}

	if len(rooms) > 0 {
		report.OccupancyRate = float64(bookedNightsTotal) / float64(nights*len(rooms))
	}
	return report, nil
}

// overlapNights counts whole nights in the intersection of two half-open
// intervals.
func overlapNights(aStart, aEnd, bStart, bEnd time.Time) int {
	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	if !end.After(start) {
		return 0
	}
	return int(end.Sub(start).Hours() / 24)
}
