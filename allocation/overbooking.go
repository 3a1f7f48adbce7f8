package allocation

import (
	"context"
	"fmt"

	"github.com/himmu2625/baithkaGhar-sub018/inventory"
	"github.com/himmu2625/baithkaGhar-sub018/models"
)

// maxOverbookingAlternatives caps the suggestion list for staff override.
const maxOverbookingAlternatives = 3

// Advisor proposes "subject to availability" rooms once the candidate
// finder has come back empty. The proposals may be occupied for the
// requested interval; no hold is ever placed through this path.
type Advisor struct {
	rooms inventory.RoomRepository
}

func NewAdvisor(rooms inventory.RoomRepository) *Advisor {
	return &Advisor{rooms: rooms}
}

// ProposeOverbooking returns up to three active rooms at the property,
// capacity-compatible rooms first, each tagged with reason text.
func (a *Advisor) ProposeOverbooking(ctx context.Context, req StayRequest) ([]Alternative, error) {
	rooms, err := a.rooms.FindRooms(ctx, inventory.RoomFilter{
		PropertyID: req.PropertyID,
		ActiveOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("propose overbooking: %w", err)
	}

	fits := func(r *models.Room) bool {
		return r.RoomType != nil && r.RoomType.MaxOccupancy >= req.GuestCount
	}

	alternatives := make([]Alternative, 0, maxOverbookingAlternatives)
	appendRoom := func(r *models.Room, reason string) {
		alternatives = append(alternatives, Alternative{
			RoomID:       r.ID,
			RoomNumber:   r.RoomNumber,
			RoomTypeName: typeName(r),
			Floor:        r.Floor,
			Reason:       reason,
		})
	}

	for i := range rooms {
		if len(alternatives) == maxOverbookingAlternatives {
			break
		}
		if fits(&rooms[i]) {
			appendRoom(&rooms[i], "subject to availability; may be occupied for the requested dates")
		}
	}
	for i := range rooms {
		if len(alternatives) == maxOverbookingAlternatives {
			break
		}
		if !fits(&rooms[i]) {
			appendRoom(&rooms[i], "below requested capacity; staff override required")
		}
	}
	return alternatives, nil
}

func typeName(r *models.Room) string {
	if r.RoomType != nil {
		return r.RoomType.Name
	}
	return ""
}
