package allocation

import (
	"context"
	"fmt"

	"github.com/himmu2625/baithkaGhar-sub018/inventory"
	"github.com/himmu2625/baithkaGhar-sub018/models"

	"golang.org/x/exp/slices"
)

// Finder resolves the rooms that satisfy a request's hard constraints and
// pass the availability check.
type Finder struct {
	rooms   inventory.RoomRepository
	checker *Checker
}

func NewFinder(rooms inventory.RoomRepository, checker *Checker) *Finder {
	return &Finder{rooms: rooms, checker: checker}
}

// FindCandidates returns qualifying rooms ordered by floor then room number.
// An empty result is not an error; the orchestrator treats it as exhausted.
// Rooms whose id appears in exclude are skipped (hold-conflict retries).
func (f *Finder) FindCandidates(ctx context.Context, req StayRequest, exclude map[uint]bool) ([]models.Room, error) {
	typeFilter := inventory.RoomTypeFilter{
		PropertyID:   req.PropertyID,
		MinOccupancy: req.GuestCount,
		OnlyBookable: true,
	}
	if req.Preferences != nil {
		typeFilter.RoomTypeID = req.Preferences.RoomTypeID
	}
	roomTypes, err := f.rooms.FindRoomTypes(ctx, typeFilter)
	if err != nil {
		return nil, fmt.Errorf("find candidates: %w", err)
	}
	if len(roomTypes) == 0 {
		return nil, nil
	}

	typeIDs := make([]uint, 0, len(roomTypes))
	for _, rt := range roomTypes {
		typeIDs = append(typeIDs, rt.ID)
	}

	roomFilter := inventory.RoomFilter{
		PropertyID:   req.PropertyID,
		RoomTypeIDs:  typeIDs,
		Statuses:     []string{models.RoomStatusAvailable, models.RoomStatusClean},
		ActiveOnly:   true,
		OnlyBookable: true,
	}
	if p := req.Preferences; p != nil {
		roomFilter.Floor = p.Floor
		roomFilter.Wing = p.Wing
		roomFilter.Amenities = p.Amenities
		roomFilter.Views = p.Views
		if p.Accessible {
			accessible := true
			roomFilter.Accessible = &accessible
		}
	}
	rooms, err := f.rooms.FindRooms(ctx, roomFilter)
	if err != nil {
		return nil, fmt.Errorf("find candidates: %w", err)
	}

	// deterministic order before scoring: floor, then room number
	slices.SortStableFunc(rooms, func(a, b models.Room) int {
		if a.Floor != b.Floor {
			return a.Floor - b.Floor
		}
		switch {
		case a.RoomNumber < b.RoomNumber:
			return -1
		case a.RoomNumber > b.RoomNumber:
			return 1
		}
		return 0
	})

	candidates := make([]models.Room, 0, len(rooms))
	for i := range rooms {
		if exclude[rooms[i].ID] {
			continue
		}
		free, err := f.checker.IsAvailable(ctx, rooms[i].ID, req.CheckIn, req.CheckOut)
		if err != nil {
			return nil, err
		}
		if free {
			candidates = append(candidates, rooms[i])
		}
	}
	return candidates, nil
}
