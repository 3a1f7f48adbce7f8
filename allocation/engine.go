package allocation

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/himmu2625/baithkaGhar-sub018/inventory"
	"github.com/himmu2625/baithkaGhar-sub018/models"
)

// maxHoldRetries bounds how often a lost check-and-hold race triggers
// re-selection before the request degrades to the overbooking path.
const maxHoldRetries = 3

// Engine composes the allocation pipeline: find candidates, score, price,
// hold. The single public entry point used by the booking workflow is
// AllocateRoom.
type Engine struct {
	inv        inventory.Inventory
	holds      HoldStore
	checker    *Checker
	finder     *Finder
	calculator *Calculator
	advisor    *Advisor
	upgrader   *Upgrader
	holdTTL    time.Duration
	now        func() time.Time
}

// Option tweaks engine construction.
type Option func(*Engine)

// WithHoldTTL overrides the default 5 minute hold lifetime.
func WithHoldTTL(ttl time.Duration) Option {
	return func(e *Engine) { e.holdTTL = ttl }
}

// WithClock swaps the time source; tests use it for deterministic scoring
// and TTL math.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func NewEngine(inv inventory.Inventory, holds HoldStore, opts ...Option) *Engine {
	e := &Engine{
		inv:     inv,
		holds:   holds,
		holdTTL: DefaultHoldTTL,
		now:     time.Now,
	}
	e.checker = NewChecker(inv, holds)
	e.finder = NewFinder(inv, e.checker)
	e.calculator = NewCalculator(inv)
	e.advisor = NewAdvisor(inv)
	e.upgrader = NewUpgrader(inv, e.finder, e.calculator)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Checker exposes the availability checker for callers that need a bare
// room/interval lookup (reports, booking confirmation).
func (e *Engine) Checker() *Checker { return e.checker }

// AllocateRoom runs the full pipeline for one stay request. Losing the
// check-and-hold race excludes the contested room and retries selection, up
// to maxHoldRetries times; exhaustion and an empty candidate set both fall
// through to the overbooking advisor. The hold is placed last, so a pricing
// failure never leaves a partial hold behind.
func (e *Engine) AllocateRoom(ctx context.Context, req StayRequest) (*AllocationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	excluded := map[uint]bool{}
	for attempt := 0; attempt < maxHoldRetries; attempt++ {
		candidates, err := e.finder.FindCandidates(ctx, req, excluded)
		if err != nil {
			return nil, err
		}
		if len(candidates) == 0 {
			return e.noAvailability(ctx, req)
		}

		ranked := RankCandidates(candidates, &req, e.now())
		best := &ranked[0]

		quote, err := e.calculator.CalculatePrice(ctx, best.ID, req.CheckIn, req.CheckOut)
		if err != nil {
			return nil, err
		}

		lease := Lease{
			ID:        uuid.NewString(),
			RoomID:    best.ID,
			CheckIn:   req.CheckIn,
			CheckOut:  req.CheckOut,
			HolderRef: req.HolderRef,
			ExpiresAt: e.now().Add(e.holdTTL),
		}
		if err := e.holds.Acquire(ctx, lease, e.holdTTL); err != nil {
			if errors.Is(err, ErrHoldConflict) {
				log.Printf("allocation: room %d hold contested, retrying (attempt %d)", best.ID, attempt+1)
				excluded[best.ID] = true
				continue
			}
			return nil, err
		}

		e.mirrorHold(ctx, &lease)

		return &AllocationResult{
			Success: true,
			Room: &AllocatedRoom{
				RoomID:       best.ID,
				RoomNumber:   best.RoomNumber,
				RoomTypeName: typeName(best),
				Floor:        best.Floor,
				Wing:         best.Wing,
				Amenities:    best.AmenityList(),
				TotalPrice:   quote.TotalPrice,
			},
			Price:        quote,
			Lease:        &lease,
			Alternatives: runnersUp(ranked),
		}, nil
	}

	// every selection lost its race; treat as exhausted
	return e.noAvailability(ctx, req)
}

// ReleaseHold gives callers an idempotent way to drop a lease early, e.g.
// when a guest abandons checkout. Expired or already-consumed leases are a
// no-op.
func (e *Engine) ReleaseHold(ctx context.Context, roomID uint, leaseID string) error {
	return e.holds.Release(ctx, roomID, leaseID)
}

// ConfirmBooking converts a live lease into a confirmed booking and
// consumes the lease. The holder's own lease does not count against the
// availability re-check; a foreign booking that slipped in does.
func (e *Engine) ConfirmBooking(ctx context.Context, roomID uint, leaseID, guestName string, numGuests int) (*models.Booking, error) {
	lease, err := e.holds.Get(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if lease == nil || lease.ID != leaseID {
		return nil, ErrLeaseNotFound
	}

	free, err := e.checker.isAvailableFor(ctx, roomID, lease.CheckIn, lease.CheckOut, leaseID)
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, ErrHoldConflict
	}

	room, err := e.inv.GetRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, inventory.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	quote, err := e.calculator.CalculatePrice(ctx, roomID, lease.CheckIn, lease.CheckOut)
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		PropertyID: room.PropertyID,
		RoomID:     roomID,
		GuestName:  guestName,
		CheckIn:    lease.CheckIn,
		CheckOut:   lease.CheckOut,
		NumGuests:  numGuests,
		TotalPrice: quote.TotalPrice,
		Status:     models.BookingStatusConfirmed,
		Source:     "allocation",
	}
	if err := e.inv.CreateBooking(ctx, booking); err != nil {
		return nil, err
	}

	if err := e.holds.Release(ctx, roomID, leaseID); err != nil {
		log.Printf("allocation: release of consumed lease %s failed: %v", leaseID, err)
	}
	return booking, nil
}

// GetUpgradeOptions delegates to the upgrade advisor.
func (e *Engine) GetUpgradeOptions(ctx context.Context, propertyID, currentTypeID uint, checkIn, checkOut time.Time, guestCount int) ([]UpgradeOption, error) {
	return e.upgrader.GetUpgradeOptions(ctx, propertyID, currentTypeID, checkIn, checkOut, guestCount)
}

func (e *Engine) noAvailability(ctx context.Context, req StayRequest) (*AllocationResult, error) {
	alternatives, err := e.advisor.ProposeOverbooking(ctx, req)
	if err != nil {
		return nil, err
	}
	if alternatives == nil {
		alternatives = []Alternative{}
	}
	return &AllocationResult{
		Success:            false,
		Alternatives:       alternatives,
		OverbookingWarning: true,
		Error:              "no_availability",
		Message:            "no rooms available for the requested dates",
	}, nil
}

// mirrorHold writes the dashboard row for a live lease. Best-effort: the
// lease store stays authoritative and a failed mirror only loses
// visibility.
func (e *Engine) mirrorHold(ctx context.Context, lease *Lease) {
	err := e.inv.SaveHoldMirror(ctx, &models.RoomHold{
		LeaseID:   lease.ID,
		RoomID:    lease.RoomID,
		CheckIn:   lease.CheckIn,
		CheckOut:  lease.CheckOut,
		HolderRef: lease.HolderRef,
		ExpiresAt: lease.ExpiresAt,
	})
	if err != nil {
		log.Printf("allocation: hold mirror for lease %s failed: %v", lease.ID, err)
	}
}

// runnersUp returns up to three ranked candidates after the winner.
func runnersUp(ranked []models.Room) []Alternative {
	alternatives := []Alternative{}
	for i := 1; i < len(ranked) && len(alternatives) < 3; i++ {
		alternatives = append(alternatives, Alternative{
			RoomID:       ranked[i].ID,
			RoomNumber:   ranked[i].RoomNumber,
			RoomTypeName: typeName(&ranked[i]),
			Floor:        ranked[i].Floor,
		})
	}
	return alternatives
}
