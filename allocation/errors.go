package allocation

import "errors"

// Engine error taxonomy. Repository failures are wrapped and propagated
// unchanged; everything else maps to one of these sentinels.
var (
	// ErrInvalidDateRange rejects a stay whose check-out is not strictly
	// after its check-in. Raised before any repository I/O.
	ErrInvalidDateRange = errors.New("allocation: check-out must be after check-in")

	// ErrNoAvailability means the candidate finder came back empty. Not
	// fatal: the caller gets overbooking alternatives alongside it.
	ErrNoAvailability = errors.New("allocation: no rooms available")

	// ErrHoldConflict means another allocation won the check-and-hold race
	// for the selected room.
	ErrHoldConflict = errors.New("allocation: room already held")

	// ErrLeaseNotFound means the lease id does not match a live hold on
	// the room; it has expired, been released, or never existed.
	ErrLeaseNotFound = errors.New("allocation: lease not found")

	ErrPropertyNotFound = errors.New("allocation: property not found")
	ErrRoomNotFound     = errors.New("allocation: room not found")
	ErrRoomTypeNotFound = errors.New("allocation: room type not found")
)
