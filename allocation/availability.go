package allocation

import (
	"context"
	"fmt"
	"time"

	"github.com/himmu2625/baithkaGhar-sub018/inventory"
	"github.com/himmu2625/baithkaGhar-sub018/models"
)

// Checker answers "is this room free for this interval" against bookings
// and live holds. Read-only.
type Checker struct {
	bookings inventory.BookingRepository
	holds    HoldStore
}

func NewChecker(bookings inventory.BookingRepository, holds HoldStore) *Checker {
	return &Checker{bookings: bookings, holds: holds}
}

// IsAvailable reports whether the room has no non-cancelled booking and no
// live foreign hold overlapping [checkIn, checkOut).
func (c *Checker) IsAvailable(ctx context.Context, roomID uint, checkIn, checkOut time.Time) (bool, error) {
	return c.isAvailableFor(ctx, roomID, checkIn, checkOut, "")
}

// isAvailableFor is the holder-aware variant: the holder of ownLeaseID may
// confirm through its own hold, so that lease does not count against it.
func (c *Checker) isAvailableFor(ctx context.Context, roomID uint, checkIn, checkOut time.Time, ownLeaseID string) (bool, error) {
	bookings, err := c.bookings.FindBookings(ctx, inventory.BookingFilter{
		RoomID:          roomID,
		ExcludeStatuses: []string{models.BookingStatusCancelled, models.BookingStatusExpired},
		From:            checkIn,
		To:              checkOut,
	})
	if err != nil {
		return false, fmt.Errorf("availability check for room %d: %w", roomID, err)
	}
	for i := range bookings {
		// repositories may return a superset of the window; re-check the inequality
		if Overlaps(bookings[i].CheckIn, bookings[i].CheckOut, checkIn, checkOut) && bookings[i].Blocks() {
			return false, nil
		}
	}

	lease, err := c.holds.Get(ctx, roomID)
	if err != nil {
		return false, fmt.Errorf("availability check for room %d: %w", roomID, err)
	}
	if lease != nil && lease.ID != ownLeaseID && Overlaps(lease.CheckIn, lease.CheckOut, checkIn, checkOut) {
		return false, nil
	}
	return true, nil
}
