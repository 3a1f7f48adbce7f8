package routes

import (
	"errors"
	"strings"

	"github.com/himmu2625/baithkaGhar-sub018/inventory"
	"github.com/himmu2625/baithkaGhar-sub018/models"
	"github.com/himmu2625/baithkaGhar-sub018/storage"
	"github.com/himmu2625/baithkaGhar-sub018/utils"

	"github.com/kataras/iris/v12"
)

// AdminListRooms pages through a property's rooms with optional status and
// floor filters.
func AdminListRooms(ctx iris.Context) {
	q := storage.DB.Model(&models.Room{}).Preload("RoomType")

	if propertyID := ctx.URLParamUint64("propertyID"); propertyID > 0 {
		q = q.Where("property_id = ?", propertyID)
	}
	if status := strings.TrimSpace(ctx.URLParam("status")); status != "" {
		q = q.Where("status = ?", status)
	}
	if floor, err := ctx.URLParamInt("floor"); err == nil {
		q = q.Where("floor = ?", floor)
	}
	if hk := strings.TrimSpace(ctx.URLParam("housekeepingStatus")); hk != "" {
		q = q.Where("housekeeping_status = ?", hk)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 50)
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 200 {
		perPage = 50
	}

	var rooms []models.Room
	err := q.Order("floor ASC").Order("room_number ASC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&rooms).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, rooms, page, perPage, total)
}

type RoomStatusInput struct {
	Status                 *string `json:"status" validate:"omitempty,oneof=available clean occupied out_of_service"`
	HousekeepingStatus     *string `json:"housekeepingStatus" validate:"omitempty,oneof=inspected clean cleaning_in_progress dirty"`
	Condition              *string `json:"condition" validate:"omitempty,oneof=excellent good fair poor"`
	IsBookable             *bool   `json:"isBookable"`
	OpenMaintenanceIssues  *int    `json:"openMaintenanceIssues" validate:"omitempty,min=0"`
	OpenHousekeepingIssues *int    `json:"openHousekeepingIssues" validate:"omitempty,min=0"`
}

// AdminUpdateRoomStatus patches a room's operational state and records the
// change in the audit log.
func AdminUpdateRoomStatus(ctx iris.Context) {
	roomID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "bad_request", "invalid room id")
		return
	}

	var input RoomStatusInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var before models.Room
	if err := storage.DB.First(&before, roomID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	patch := inventory.RoomPatch{
		Status:                 input.Status,
		HousekeepingStatus:     input.HousekeepingStatus,
		Condition:              input.Condition,
		IsBookable:             input.IsBookable,
		OpenMaintenanceIssues:  input.OpenMaintenanceIssues,
		OpenHousekeepingIssues: input.OpenHousekeepingIssues,
	}
	if patch == (inventory.RoomPatch{}) {
		utils.JSONError(ctx, iris.StatusBadRequest, "bad_request", "no fields to update")
		return
	}

	if err := inv.UpdateRoom(ctx.Request().Context(), roomID, patch); err != nil {
		if errors.Is(err, inventory.ErrNotFound) {
			utils.CreateNotFound(ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	var after models.Room
	storage.DB.First(&after, roomID)
	utils.Audit(ctx, "room.status_update", "room", uint(roomID), before, after)

	ctx.JSON(iris.Map{"success": true, "data": after})
}

// AdminListHolds shows the mirrored lease rows that have not lapsed yet.
func AdminListHolds(ctx iris.Context) {
	q := storage.DB.Model(&models.RoomHold{}).Where("expires_at > NOW()")
	if propertyID := ctx.URLParamUint64("propertyID"); propertyID > 0 {
		q = q.Joins("JOIN rooms ON rooms.id = room_holds.room_id").
			Where("rooms.property_id = ?", propertyID)
	}

	var holds []models.RoomHold
	if err := q.Order("expires_at ASC").Find(&holds).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"data": holds})
}
