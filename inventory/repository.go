package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/himmu2625/baithkaGhar-sub018/models"
)

// ErrNotFound is returned when a referenced id does not resolve.
var ErrNotFound = errors.New("inventory: record not found")

// RoomTypeFilter narrows room type lookups.
type RoomTypeFilter struct {
	PropertyID   uint
	RoomTypeID   uint // 0 = any
	MinOccupancy int
	OnlyBookable bool
}

// RoomFilter narrows room lookups. Amenities are AND-combined: a room must
// carry every requested amenity. Views match when the room has at least one
// of the requested tags.
type RoomFilter struct {
	PropertyID   uint
	RoomTypeIDs  []uint
	Statuses     []string
	Floor        *int
	Wing         string
	Accessible   *bool
	Amenities    []string
	Views        []string
	ActiveOnly   bool
	OnlyBookable bool
}

// BookingFilter narrows booking lookups. When From/To are both set, only
// bookings overlapping [From, To) are returned.
type BookingFilter struct {
	PropertyID      uint
	RoomID          uint
	ExcludeStatuses []string
	From            time.Time
	To              time.Time
}

// RoomPatch is the writable subset of a room used by the admin surface.
// Nil fields are left untouched.
type RoomPatch struct {
	Status                 *string
	HousekeepingStatus     *string
	Condition              *string
	IsBookable             *bool
	OpenMaintenanceIssues  *int
	OpenHousekeepingIssues *int
}

// RoomRepository is the engine's read/write view of rooms, room types and
// properties. Implementations must not cache across calls; allocation
// correctness depends on reading fresh state.
type RoomRepository interface {
	GetProperty(ctx context.Context, id uint) (*models.Property, error)
	FindRoomTypes(ctx context.Context, f RoomTypeFilter) ([]models.RoomType, error)
	GetRoomType(ctx context.Context, id uint) (*models.RoomType, error)
	FindRooms(ctx context.Context, f RoomFilter) ([]models.Room, error)
	GetRoom(ctx context.Context, id uint) (*models.Room, error)
	UpdateRoom(ctx context.Context, id uint, patch RoomPatch) error
	SaveHoldMirror(ctx context.Context, hold *models.RoomHold) error
}

// BookingRepository is the engine's view of bookings.
type BookingRepository interface {
	FindBookings(ctx context.Context, f BookingFilter) ([]models.Booking, error)
	CreateBooking(ctx context.Context, booking *models.Booking) error
}

// Inventory bundles both repositories; the gorm and in-memory
// implementations satisfy it.
type Inventory interface {
	RoomRepository
	BookingRepository
}

// roomMatches applies the Go-side part of a RoomFilter (amenity AND-match,
// view any-match). SQL-expressible narrowing happens in each implementation.
func roomMatches(room *models.Room, f RoomFilter) bool {
	if len(f.Amenities) > 0 {
		have := map[string]bool{}
		for _, a := range room.AmenityList() {
			have[a] = true
		}
		for _, want := range f.Amenities {
			if !have[want] {
				return false
			}
		}
	}
	if len(f.Views) > 0 {
		have := map[string]bool{}
		for _, v := range room.ViewTagList() {
			have[v] = true
		}
		found := false
		for _, want := range f.Views {
			if have[want] {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
