package inventory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/himmu2625/baithkaGhar-sub018/models"
)

// MemoryInventory is an in-process Inventory used by tests and single-node
// development. Behavior mirrors GormInventory, including ordering.
type MemoryInventory struct {
	mu         sync.RWMutex
	properties map[uint]models.Property
	roomTypes  map[uint]models.RoomType
	rooms      map[uint]models.Room
	bookings   []models.Booking
	holds      map[string]models.RoomHold
	nextID     uint
}

func NewMemoryInventory() *MemoryInventory {
	return &MemoryInventory{
		properties: map[uint]models.Property{},
		roomTypes:  map[uint]models.RoomType{},
		rooms:      map[uint]models.Room{},
		holds:      map[string]models.RoomHold{},
		nextID:     1,
	}
}

func (m *MemoryInventory) allocID() uint {
	id := m.nextID
	m.nextID++
	return id
}

// AddProperty seeds a property and returns its id.
func (m *MemoryInventory) AddProperty(p models.Property) uint {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == 0 {
		p.ID = m.allocID()
	}
	m.properties[p.ID] = p
	return p.ID
}

// AddRoomType seeds a room type and returns its id.
func (m *MemoryInventory) AddRoomType(rt models.RoomType) uint {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rt.ID == 0 {
		rt.ID = m.allocID()
	}
	m.roomTypes[rt.ID] = rt
	return rt.ID
}

// AddRoom seeds a room and returns its id.
func (m *MemoryInventory) AddRoom(r models.Room) uint {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.ID == 0 {
		r.ID = m.allocID()
	}
	m.rooms[r.ID] = r
	return r.ID
}

// AddBooking seeds a booking and returns its id.
func (m *MemoryInventory) AddBooking(b models.Booking) uint {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b.ID == 0 {
		b.ID = m.allocID()
	}
	m.bookings = append(m.bookings, b)
	return b.ID
}

func (m *MemoryInventory) GetProperty(ctx context.Context, id uint) (*models.Property, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.properties[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := p
	return &out, nil
}

func (m *MemoryInventory) FindRoomTypes(ctx context.Context, f RoomTypeFilter) ([]models.RoomType, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var types []models.RoomType
	for _, rt := range m.roomTypes {
		if rt.PropertyID != f.PropertyID {
			continue
		}
		if rt.IsActive != nil && !*rt.IsActive {
			continue
		}
		if f.OnlyBookable && rt.IsBookable != nil && !*rt.IsBookable {
			continue
		}
		if f.MinOccupancy > 0 && rt.MaxOccupancy < f.MinOccupancy {
			continue
		}
		if f.RoomTypeID != 0 && rt.ID != f.RoomTypeID {
			continue
		}
		types = append(types, rt)
	}
	sort.Slice(types, func(i, j int) bool { return types[i].ID < types[j].ID })
	return types, nil
}

func (m *MemoryInventory) GetRoomType(ctx context.Context, id uint) (*models.RoomType, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rt, ok := m.roomTypes[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := rt
	return &out, nil
}

func (m *MemoryInventory) FindRooms(ctx context.Context, f RoomFilter) ([]models.Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var rooms []models.Room
	for _, r := range m.rooms {
		if r.PropertyID != f.PropertyID {
			continue
		}
		if f.ActiveOnly && r.IsActive != nil && !*r.IsActive {
			continue
		}
		if f.OnlyBookable && r.IsBookable != nil && !*r.IsBookable {
			continue
		}
		if len(f.RoomTypeIDs) > 0 && !containsUint(f.RoomTypeIDs, r.RoomTypeID) {
			continue
		}
		if len(f.Statuses) > 0 && !containsString(f.Statuses, r.Status) {
			continue
		}
		if f.Floor != nil && r.Floor != *f.Floor {
			continue
		}
		if f.Wing != "" && !strings.EqualFold(r.Wing, f.Wing) {
			continue
		}
		if f.Accessible != nil && *f.Accessible && !r.IsAccessible {
			continue
		}
		room := r
		if rt, ok := m.roomTypes[r.RoomTypeID]; ok {
			rtCopy := rt
			room.RoomType = &rtCopy
		}
		if !roomMatches(&room, f) {
			continue
		}
		rooms = append(rooms, room)
	}
	sort.Slice(rooms, func(i, j int) bool {
		if rooms[i].Floor != rooms[j].Floor {
			return rooms[i].Floor < rooms[j].Floor
		}
		return rooms[i].RoomNumber < rooms[j].RoomNumber
	})
	return rooms, nil
}

func (m *MemoryInventory) GetRoom(ctx context.Context, id uint) (*models.Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[id]
	if !ok {
		return nil, ErrNotFound
	}
	room := r
	if rt, ok := m.roomTypes[r.RoomTypeID]; ok {
		rtCopy := rt
		room.RoomType = &rtCopy
	}
	return &room, nil
}

func (m *MemoryInventory) UpdateRoom(ctx context.Context, id uint, patch RoomPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	if !ok {
		return ErrNotFound
	}
	if patch.Status != nil {
		r.Status = *patch.Status
	}
	if patch.HousekeepingStatus != nil {
		r.HousekeepingStatus = *patch.HousekeepingStatus
	}
	if patch.Condition != nil {
		r.Condition = *patch.Condition
	}
	if patch.IsBookable != nil {
		b := *patch.IsBookable
		r.IsBookable = &b
	}
	if patch.OpenMaintenanceIssues != nil {
		r.OpenMaintenanceIssues = *patch.OpenMaintenanceIssues
	}
	if patch.OpenHousekeepingIssues != nil {
		r.OpenHousekeepingIssues = *patch.OpenHousekeepingIssues
	}
	m.rooms[id] = r
	return nil
}

func (m *MemoryInventory) SaveHoldMirror(ctx context.Context, hold *models.RoomHold) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.holds[hold.LeaseID] = *hold
	return nil
}

func (m *MemoryInventory) FindBookings(ctx context.Context, f BookingFilter) ([]models.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var bookings []models.Booking
	for _, b := range m.bookings {
		if f.PropertyID != 0 && b.PropertyID != f.PropertyID {
			continue
		}
		if f.RoomID != 0 && b.RoomID != f.RoomID {
			continue
		}
		if containsString(f.ExcludeStatuses, b.Status) {
			continue
		}
		if !f.From.IsZero() && !f.To.IsZero() {
			if !(b.CheckIn.Before(f.To) && f.From.Before(b.CheckOut)) {
				continue
			}
		}
		bookings = append(bookings, b)
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].CheckIn.Before(bookings[j].CheckIn) })
	return bookings, nil
}

func (m *MemoryInventory) CreateBooking(ctx context.Context, booking *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if booking.ID == 0 {
		booking.ID = m.allocID()
	}
	m.bookings = append(m.bookings, *booking)
	return nil
}

func containsUint(xs []uint, v uint) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

func containsString(xs []string, v string) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
