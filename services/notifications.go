package services

import (
	"context"
	"log"

	"github.com/himmu2625/baithkaGhar-sub018/allocation"
)

// Notifier is the boundary to the external messaging stack (email, SMS,
// WhatsApp). Delivery is someone else's problem; the engine only emits
// events.
type Notifier interface {
	AllocationSucceeded(ctx context.Context, result *allocation.AllocationResult)
	AllocationExhausted(ctx context.Context, propertyID uint, alternatives int)
}

// LogNotifier is the default Notifier: it writes the event to the process
// log and nothing else.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) AllocationSucceeded(ctx context.Context, result *allocation.AllocationResult) {
	if result.Room == nil || result.Lease == nil {
		return
	}
	log.Printf("📣 allocation: room %s (%d) held until %s, total %.2f",
		result.Room.RoomNumber, result.Room.RoomID,
		result.Lease.ExpiresAt.Format("15:04:05"), result.Room.TotalPrice)
}

func (n *LogNotifier) AllocationExhausted(ctx context.Context, propertyID uint, alternatives int) {
	log.Printf("📣 allocation: property %d exhausted, %d overbooking alternatives proposed", propertyID, alternatives)
}
