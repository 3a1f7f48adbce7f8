package routes

import (
	"github.com/himmu2625/baithkaGhar-sub018/allocation"
	"github.com/himmu2625/baithkaGhar-sub018/inventory"
	"github.com/himmu2625/baithkaGhar-sub018/services"
)

// Route handlers share one engine instance, wired by main at boot.
var (
	engine   *allocation.Engine
	inv      inventory.Inventory
	notifier services.Notifier
)

// InitializeEngine hands the allocation engine, its inventory and the
// notifier to the route layer. Call once before route registration.
func InitializeEngine(e *allocation.Engine, i inventory.Inventory, n services.Notifier) {
	engine = e
	inv = i
	notifier = n
}

const dateLayout = "2006-01-02"
