package allocation

import (
	"context"
	"errors"
	"testing"

	"github.com/himmu2625/baithkaGhar-sub018/inventory"
	"github.com/himmu2625/baithkaGhar-sub018/models"
)

func seedUpgradeInventory(t *testing.T) (*inventory.MemoryInventory, uint, uint) {
	t.Helper()
	inv := inventory.NewMemoryInventory()
	propID := inv.AddProperty(models.Property{Name: "Baithka Ghar Shimla"})

	standard := inv.AddRoomType(models.RoomType{
		PropertyID: propID, Name: "Standard", Category: models.CategoryStandard,
		MaxOccupancy: 2, RoomSizeSqm: 20, BasePricePerNight: 1000,
		Amenities: []byte(`["wifi"]`),
	})
	deluxe := inv.AddRoomType(models.RoomType{
		PropertyID: propID, Name: "Deluxe", Category: models.CategoryDeluxe,
		MaxOccupancy: 3, RoomSizeSqm: 30, BasePricePerNight: 1200,
		Amenities: []byte(`["wifi","minibar"]`),
	})
	suite := inv.AddRoomType(models.RoomType{
		PropertyID: propID, Name: "Suite", Category: models.CategorySuite,
		MaxOccupancy: 4, RoomSizeSqm: 45, BasePricePerNight: 1500,
		Amenities: []byte(`["wifi","minibar","bathtub"]`),
	})

	inv.AddRoom(models.Room{PropertyID: propID, RoomTypeID: standard, RoomNumber: "101", Floor: 1, Status: models.RoomStatusAvailable})
	inv.AddRoom(models.Room{PropertyID: propID, RoomTypeID: deluxe, RoomNumber: "201", Floor: 2, Status: models.RoomStatusAvailable})
	inv.AddRoom(models.Room{PropertyID: propID, RoomTypeID: suite, RoomNumber: "301", Floor: 3, Status: models.RoomStatusAvailable})

	return inv, propID, standard
}

func TestGetUpgradeOptionsOrderedByPriceDelta(t *testing.T) {
	inv, propID, standard := seedUpgradeInventory(t)
	engine := NewEngine(inv, NewMemoryHoldStore())

	// one night: current 1000, deluxe 1200, suite 1500
	options, err := engine.GetUpgradeOptions(context.Background(), propID, standard, day(2025, 7, 10), day(2025, 7, 11), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(options) != 2 {
		t.Fatalf("expected 2 upgrade options, got %d", len(options))
	}
	if options[0].PriceDifference != 200 || options[1].PriceDifference != 500 {
		t.Fatalf("deltas = [%v, %v], want [200, 500]",
			options[0].PriceDifference, options[1].PriceDifference)
	}
	if options[0].TypeName != "Deluxe" || options[1].TypeName != "Suite" {
		t.Fatalf("order = [%s, %s]", options[0].TypeName, options[1].TypeName)
	}
	for _, opt := range options {
		if !opt.Available {
			t.Fatalf("reported options must have open inventory: %+v", opt)
		}
	}
}

func TestGetUpgradeOptionsBenefits(t *testing.T) {
	inv, propID, standard := seedUpgradeInventory(t)
	engine := NewEngine(inv, NewMemoryHoldStore())

	options, err := engine.GetUpgradeOptions(context.Background(), propID, standard, day(2025, 7, 10), day(2025, 7, 11), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(options) == 0 {
		t.Fatal("expected options")
	}
	deluxe := options[0]
	if len(deluxe.Benefits) != 4 {
		t.Fatalf("benefits = %v, want size, occupancy, amenities and category facts", deluxe.Benefits)
	}
}

func TestGetUpgradeOptionsSkipsFullTiers(t *testing.T) {
	inv, propID, standard := seedUpgradeInventory(t)
	// occupy the deluxe room for the window
	inv.AddBooking(models.Booking{
		PropertyID: propID, RoomID: 6,
		CheckIn: day(2025, 7, 9), CheckOut: day(2025, 7, 12),
		Status: models.BookingStatusConfirmed,
	})

	engine := NewEngine(inv, NewMemoryHoldStore())
	options, err := engine.GetUpgradeOptions(context.Background(), propID, standard, day(2025, 7, 10), day(2025, 7, 11), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(options) != 1 || options[0].TypeName != "Suite" {
		t.Fatalf("options = %+v, want only the suite", options)
	}
}

func TestGetUpgradeOptionsUnknownType(t *testing.T) {
	inv, propID, _ := seedUpgradeInventory(t)
	engine := NewEngine(inv, NewMemoryHoldStore())

	_, err := engine.GetUpgradeOptions(context.Background(), propID, 999, day(2025, 7, 10), day(2025, 7, 11), 2)
	if !errors.Is(err, ErrRoomTypeNotFound) {
		t.Fatalf("err = %v, want ErrRoomTypeNotFound", err)
	}
}
