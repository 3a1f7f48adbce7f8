package allocation

import (
	"time"
)

// Preferences are soft and hard constraints carried by a stay request.
// RoomTypeID, Floor, Wing, Amenities and Accessible narrow the candidate
// set; Floor, Wing and Views additionally feed the scoring heuristic.
type Preferences struct {
	RoomTypeID uint     `json:"roomTypeID,omitempty"`
	Floor      *int     `json:"floor,omitempty"`
	Wing       string   `json:"wing,omitempty"`
	Amenities  []string `json:"amenities,omitempty"`
	Views      []string `json:"views,omitempty"`
	Accessible bool     `json:"accessible,omitempty"`
}

// StayRequest is immutable once submitted; the engine never mutates it.
type StayRequest struct {
	PropertyID     uint         `json:"propertyID"`
	CheckIn        time.Time    `json:"checkIn"`
	CheckOut       time.Time    `json:"checkOut"`
	GuestCount     int          `json:"guestCount"`
	Preferences    *Preferences `json:"preferences,omitempty"`
	SpecialRequest string       `json:"specialRequest,omitempty"`
	HolderRef      string       `json:"holderRef,omitempty"` // opaque caller reference stamped onto the hold
}

// Validate enforces the date and guest-count invariants before any I/O.
func (r *StayRequest) Validate() error {
	if !r.CheckOut.After(r.CheckIn) {
		return ErrInvalidDateRange
	}
	if r.GuestCount < 1 {
		return ErrInvalidDateRange
	}
	return nil
}

// PriceQuote is the pricing breakdown for one room and stay interval.
type PriceQuote struct {
	RoomID              uint     `json:"roomID"`
	BaseRate            float64  `json:"baseRate"`
	Nights              int      `json:"nights"`
	SeasonalMultiplier  float64  `json:"seasonalMultiplier"`
	TotalPrice          float64  `json:"totalPrice"`
	PricePerNight       float64  `json:"pricePerNight"`
	AppliedSpecialRates []string `json:"appliedSpecialRates"`
}

// AllocatedRoom is the successful-allocation payload.
type AllocatedRoom struct {
	RoomID       uint     `json:"roomID"`
	RoomNumber   string   `json:"roomNumber"`
	RoomTypeName string   `json:"roomTypeName"`
	Floor        int      `json:"floor"`
	Wing         string   `json:"wing,omitempty"`
	Amenities    []string `json:"amenities"`
	TotalPrice   float64  `json:"totalPrice"`
}

// Alternative is a non-allocated suggestion: a runner-up candidate on
// success, or a best-effort overbooking proposal on failure.
type Alternative struct {
	RoomID       uint   `json:"roomID"`
	RoomNumber   string `json:"roomNumber"`
	RoomTypeName string `json:"roomTypeName"`
	Floor        int    `json:"floor"`
	Reason       string `json:"reason,omitempty"`
}

// AllocationResult is the terminal state of one AllocateRoom call. On
// failure the alternatives list is always present, possibly empty, so the
// caller can render a consistent response.
type AllocationResult struct {
	Success            bool           `json:"success"`
	Room               *AllocatedRoom `json:"room,omitempty"`
	Price              *PriceQuote    `json:"price,omitempty"`
	Lease              *Lease         `json:"lease,omitempty"`
	Alternatives       []Alternative  `json:"alternatives"`
	OverbookingWarning bool           `json:"overbookingWarning"`
	Error              string         `json:"error,omitempty"`
	Message            string         `json:"message,omitempty"`
}

// UpgradeOption describes one higher-tier room type with open inventory.
type UpgradeOption struct {
	RoomID          uint     `json:"roomID"`
	RoomNumber      string   `json:"roomNumber"`
	RoomTypeID      uint     `json:"roomTypeID"`
	TypeName        string   `json:"typeName"`
	CurrentPrice    float64  `json:"currentPrice"`
	UpgradePrice    float64  `json:"upgradePrice"`
	PriceDifference float64  `json:"priceDifference"`
	Benefits        []string `json:"benefits"`
	Available       bool     `json:"available"`
}

// RoomOccupancy is one row of the staff availability report.
type RoomOccupancy struct {
	RoomID           uint    `json:"roomID"`
	RoomNumber       string  `json:"roomNumber"`
	TypeName         string  `json:"typeName"`
	Floor            int     `json:"floor"`
	NightsBooked     int     `json:"nightsBooked"`
	OccupancyRate    float64 `json:"occupancyRate"`
	ProjectedRevenue float64 `json:"projectedRevenue"`
	OnHold           bool    `json:"onHold"`
	FullyAvailable   bool    `json:"fullyAvailable"`
}

// Report aggregates per-room occupancy over [Start, End).
type Report struct {
	PropertyID       uint            `json:"propertyID"`
	Start            time.Time       `json:"start"`
	End              time.Time       `json:"end"`
	Nights           int             `json:"nights"`
	TotalRooms       int             `json:"totalRooms"`
	FullyAvailable   int             `json:"fullyAvailable"`
	HeldRooms        int             `json:"heldRooms"`
	OccupancyRate    float64         `json:"occupancyRate"`
	ProjectedRevenue float64         `json:"projectedRevenue"`
	Rooms            []RoomOccupancy `json:"rooms"`
}

// Overlaps reports whether half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. The single inequality covers all four
// symmetric cases.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
