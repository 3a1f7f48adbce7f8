package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/himmu2625/baithkaGhar-sub018/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInventory runs the repository contracts against Postgres.
type GormInventory struct {
	db *gorm.DB
}

func NewGormInventory(db *gorm.DB) *GormInventory {
	return &GormInventory{db: db}
}

func (g *GormInventory) GetProperty(ctx context.Context, id uint) (*models.Property, error) {
	var property models.Property
	err := g.db.WithContext(ctx).Preload("SeasonalRates").First(&property, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get property %d: %w", id, err)
	}
	return &property, nil
}

func (g *GormInventory) FindRoomTypes(ctx context.Context, f RoomTypeFilter) ([]models.RoomType, error) {
	q := g.db.WithContext(ctx).Model(&models.RoomType{}).
		Where("property_id = ?", f.PropertyID).
		Where("COALESCE(is_active, ?) = ?", true, true)
	if f.OnlyBookable {
		q = q.Where("COALESCE(is_bookable, ?) = ?", true, true)
	}
	if f.MinOccupancy > 0 {
		q = q.Where("max_occupancy >= ?", f.MinOccupancy)
	}
	if f.RoomTypeID != 0 {
		q = q.Where("id = ?", f.RoomTypeID)
	}

	var types []models.RoomType
	if err := q.Order("id ASC").Find(&types).Error; err != nil {
		return nil, fmt.Errorf("find room types: %w", err)
	}
	return types, nil
}

func (g *GormInventory) GetRoomType(ctx context.Context, id uint) (*models.RoomType, error) {
	var roomType models.RoomType
	err := g.db.WithContext(ctx).First(&roomType, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get room type %d: %w", id, err)
	}
	return &roomType, nil
}

func (g *GormInventory) FindRooms(ctx context.Context, f RoomFilter) ([]models.Room, error) {
	q := g.db.WithContext(ctx).Model(&models.Room{}).
		Preload("RoomType").Preload("SpecialRates").
		Where("property_id = ?", f.PropertyID)
	if f.ActiveOnly {
		q = q.Where("COALESCE(is_active, ?) = ?", true, true)
	}
	if f.OnlyBookable {
		q = q.Where("COALESCE(is_bookable, ?) = ?", true, true)
	}
	if len(f.RoomTypeIDs) > 0 {
		q = q.Where("room_type_id IN (?)", f.RoomTypeIDs)
	}
	if len(f.Statuses) > 0 {
		q = q.Where("status IN (?)", f.Statuses)
	}
	if f.Floor != nil {
		q = q.Where("floor = ?", *f.Floor)
	}
	if f.Wing != "" {
		q = q.Where("LOWER(wing) = LOWER(?)", f.Wing)
	}
	if f.Accessible != nil && *f.Accessible {
		q = q.Where("is_accessible = ?", true)
	}

	var rooms []models.Room
	if err := q.Order("floor ASC").Order("room_number ASC").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("find rooms: %w", err)
	}

	// Amenity/view narrowing stays in Go so both implementations agree.
	out := rooms[:0]
	for i := range rooms {
		if roomMatches(&rooms[i], f) {
			out = append(out, rooms[i])
		}
	}
	return out, nil
}

func (g *GormInventory) GetRoom(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	err := g.db.WithContext(ctx).Preload("RoomType").Preload("SpecialRates").First(&room, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get room %d: %w", id, err)
	}
	return &room, nil
}

func (g *GormInventory) UpdateRoom(ctx context.Context, id uint, patch RoomPatch) error {
	updates := map[string]interface{}{}
	if patch.Status != nil {
		updates["status"] = *patch.Status
	}
	if patch.HousekeepingStatus != nil {
		updates["housekeeping_status"] = *patch.HousekeepingStatus
	}
	if patch.Condition != nil {
		updates["condition"] = *patch.Condition
	}
	if patch.IsBookable != nil {
		updates["is_bookable"] = *patch.IsBookable
	}
	if patch.OpenMaintenanceIssues != nil {
		updates["open_maintenance_issues"] = *patch.OpenMaintenanceIssues
	}
	if patch.OpenHousekeepingIssues != nil {
		updates["open_housekeeping_issues"] = *patch.OpenHousekeepingIssues
	}
	if len(updates) == 0 {
		return nil
	}

	res := g.db.WithContext(ctx).Model(&models.Room{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("update room %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *GormInventory) SaveHoldMirror(ctx context.Context, hold *models.RoomHold) error {
	err := g.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "lease_id"}},
			UpdateAll: true,
		}).
		Create(hold).Error
	if err != nil {
		return fmt.Errorf("save hold mirror: %w", err)
	}
	return nil
}

func (g *GormInventory) FindBookings(ctx context.Context, f BookingFilter) ([]models.Booking, error) {
	q := g.db.WithContext(ctx).Model(&models.Booking{})
	if f.PropertyID != 0 {
		q = q.Where("property_id = ?", f.PropertyID)
	}
	if f.RoomID != 0 {
		q = q.Where("room_id = ?", f.RoomID)
	}
	if len(f.ExcludeStatuses) > 0 {
		q = q.Where("status NOT IN (?)", f.ExcludeStatuses)
	}
	if !f.From.IsZero() && !f.To.IsZero() {
		// half-open overlap: booking [in,out) intersects [From,To)
		q = q.Where("check_in < ? AND check_out > ?", f.To, f.From)
	}

	var bookings []models.Booking
	if err := q.Order("check_in ASC").Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("find bookings: %w", err)
	}
	return bookings, nil
}

func (g *GormInventory) CreateBooking(ctx context.Context, booking *models.Booking) error {
	if err := g.db.WithContext(ctx).Create(booking).Error; err != nil {
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}
