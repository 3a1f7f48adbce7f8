package allocation

import (
	"context"
	"errors"
	"testing"

	"github.com/himmu2625/baithkaGhar-sub018/inventory"
	"github.com/himmu2625/baithkaGhar-sub018/models"
)

func TestConfirmBookingConsumesLease(t *testing.T) {
	inv := inventory.NewMemoryInventory()
	propID, _ := seedProperty(inv, models.Room{RoomNumber: "101", Floor: 1})

	holds := NewMemoryHoldStore()
	engine := NewEngine(inv, holds)
	ctx := context.Background()

	result, err := engine.AllocateRoom(ctx, stay(propID, 10, 13))
	if err != nil || !result.Success {
		t.Fatalf("allocate: %v %+v", err, result)
	}
	roomID := result.Room.RoomID

	booking, err := engine.ConfirmBooking(ctx, roomID, result.Lease.ID, "Asha Rao", 2)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if booking.Status != models.BookingStatusConfirmed {
		t.Fatalf("status = %q, want confirmed", booking.Status)
	}
	if booking.TotalPrice != 3000 {
		t.Fatalf("total = %v, want 3000", booking.TotalPrice)
	}
	if !booking.CheckIn.Equal(day(2025, 7, 10)) || !booking.CheckOut.Equal(day(2025, 7, 13)) {
		t.Fatalf("booking interval %v..%v does not match the lease", booking.CheckIn, booking.CheckOut)
	}

	// the lease is consumed
	lease, err := holds.Get(ctx, roomID)
	if err != nil {
		t.Fatalf("get hold: %v", err)
	}
	if lease != nil {
		t.Fatalf("lease should be released after confirmation, got %+v", lease)
	}
	if _, err := engine.ConfirmBooking(ctx, roomID, result.Lease.ID, "Asha Rao", 2); !errors.Is(err, ErrLeaseNotFound) {
		t.Fatalf("second confirm err = %v, want ErrLeaseNotFound", err)
	}

	// the booking, not the hold, now blocks the interval
	free, err := engine.Checker().IsAvailable(ctx, roomID, day(2025, 7, 11), day(2025, 7, 12))
	if err != nil {
		t.Fatalf("availability: %v", err)
	}
	if free {
		t.Fatal("confirmed booking must block its interval")
	}
	next, err := engine.AllocateRoom(ctx, stay(propID, 10, 13))
	if err != nil {
		t.Fatalf("re-allocate: %v", err)
	}
	if next.Success {
		t.Fatal("allocation must fail while the confirmed booking occupies the room")
	}
}

func TestConfirmBookingWrongLeaseID(t *testing.T) {
	inv := inventory.NewMemoryInventory()
	propID, _ := seedProperty(inv, models.Room{RoomNumber: "101", Floor: 1})

	holds := NewMemoryHoldStore()
	engine := NewEngine(inv, holds)
	ctx := context.Background()

	result, err := engine.AllocateRoom(ctx, stay(propID, 10, 13))
	if err != nil || !result.Success {
		t.Fatalf("allocate: %v %+v", err, result)
	}

	if _, err := engine.ConfirmBooking(ctx, result.Room.RoomID, "not-the-lease", "", 1); !errors.Is(err, ErrLeaseNotFound) {
		t.Fatalf("err = %v, want ErrLeaseNotFound", err)
	}

	// the real lease survives a bad confirmation attempt
	lease, err := holds.Get(ctx, result.Room.RoomID)
	if err != nil {
		t.Fatalf("get hold: %v", err)
	}
	if lease == nil || lease.ID != result.Lease.ID {
		t.Fatalf("lease = %+v, want the original to remain live", lease)
	}
}
