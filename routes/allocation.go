package routes

import (
	"errors"
	"time"

	"github.com/himmu2625/baithkaGhar-sub018/allocation"
	"github.com/himmu2625/baithkaGhar-sub018/utils"

	"github.com/kataras/iris/v12"
)

type AllocationPreferencesInput struct {
	RoomTypeID uint     `json:"roomTypeID"`
	Floor      *int     `json:"floor"`
	Wing       string   `json:"wing"`
	Amenities  []string `json:"amenities"`
	Views      []string `json:"views"`
	Accessible bool     `json:"accessible"`
}

type AllocateRoomInput struct {
	PropertyID     uint                        `json:"propertyID" validate:"required"`
	CheckIn        string                      `json:"checkIn" validate:"required"`
	CheckOut       string                      `json:"checkOut" validate:"required"`
	GuestCount     int                         `json:"guestCount" validate:"required,min=1"`
	Preferences    *AllocationPreferencesInput `json:"preferences"`
	SpecialRequest string                      `json:"specialRequest"`
	HolderRef      string                      `json:"holderRef"`
}

// AllocateRoom is the booking workflow's entry point: find, score, price
// and hold a room for the requested stay.
func AllocateRoom(ctx iris.Context) {
	var input AllocateRoomInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	checkIn, err := time.Parse(dateLayout, input.CheckIn)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "bad_request", "invalid checkIn date format")
		return
	}
	checkOut, err := time.Parse(dateLayout, input.CheckOut)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "bad_request", "invalid checkOut date format")
		return
	}

	req := allocation.StayRequest{
		PropertyID:     input.PropertyID,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		GuestCount:     input.GuestCount,
		SpecialRequest: input.SpecialRequest,
		HolderRef:      input.HolderRef,
	}
	if p := input.Preferences; p != nil {
		req.Preferences = &allocation.Preferences{
			RoomTypeID: p.RoomTypeID,
			Floor:      p.Floor,
			Wing:       p.Wing,
			Amenities:  p.Amenities,
			Views:      p.Views,
			Accessible: p.Accessible,
		}
	}

	result, err := engine.AllocateRoom(ctx.Request().Context(), req)
	if err != nil {
		writeEngineError(ctx, err)
		return
	}

	if !result.Success {
		notifier.AllocationExhausted(ctx.Request().Context(), req.PropertyID, len(result.Alternatives))
		ctx.StatusCode(iris.StatusConflict)
		ctx.JSON(result)
		return
	}

	notifier.AllocationSucceeded(ctx.Request().Context(), result)
	ctx.JSON(result)
}

// ReleaseHold drops a lease before its TTL. The lease id is the capability;
// releasing an expired or already-consumed lease is a no-op.
func ReleaseHold(ctx iris.Context) {
	roomID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "bad_request", "invalid room id")
		return
	}
	leaseID := ctx.URLParam("leaseID")
	if leaseID == "" {
		utils.JSONError(ctx, iris.StatusBadRequest, "bad_request", "leaseID is required")
		return
	}

	if err := engine.ReleaseHold(ctx.Request().Context(), uint(roomID), leaseID); err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"success": true})
}

type ConfirmBookingInput struct {
	RoomID    uint   `json:"roomID" validate:"required"`
	LeaseID   string `json:"leaseID" validate:"required"`
	GuestName string `json:"guestName"`
	NumGuests int    `json:"numGuests" validate:"omitempty,min=1"`
}

// ConfirmBooking turns a live lease into a confirmed booking. The lease id
// is the capability, as with ReleaseHold.
func ConfirmBooking(ctx iris.Context) {
	var input ConfirmBookingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if input.NumGuests == 0 {
		input.NumGuests = 1
	}

	booking, err := engine.ConfirmBooking(ctx.Request().Context(), input.RoomID, input.LeaseID, input.GuestName, input.NumGuests)
	if err != nil {
		switch {
		case errors.Is(err, allocation.ErrLeaseNotFound):
			utils.JSONError(ctx, iris.StatusConflict, "lease_not_found", err.Error())
		case errors.Is(err, allocation.ErrHoldConflict):
			utils.JSONError(ctx, iris.StatusConflict, "hold_conflict", err.Error())
		default:
			writeEngineError(ctx, err)
		}
		return
	}
	ctx.JSON(iris.Map{"success": true, "data": booking})
}

// GetUpgradeOptions lists higher-tier room types with open inventory for
// the stay, cheapest delta first.
func GetUpgradeOptions(ctx iris.Context) {
	propertyID := uint(ctx.URLParamUint64("propertyID"))
	currentTypeID := uint(ctx.URLParamUint64("currentRoomTypeID"))
	if propertyID == 0 || currentTypeID == 0 {
		utils.JSONError(ctx, iris.StatusBadRequest, "bad_request", "propertyID and currentRoomTypeID are required")
		return
	}

	checkIn, err := time.Parse(dateLayout, ctx.URLParam("checkIn"))
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "bad_request", "invalid checkIn date format")
		return
	}
	checkOut, err := time.Parse(dateLayout, ctx.URLParam("checkOut"))
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "bad_request", "invalid checkOut date format")
		return
	}
	guests := ctx.URLParamIntDefault("guestCount", 1)

	options, err := engine.GetUpgradeOptions(ctx.Request().Context(), propertyID, currentTypeID, checkIn, checkOut, guests)
	if err != nil {
		writeEngineError(ctx, err)
		return
	}
	ctx.JSON(iris.Map{"data": options})
}

// writeEngineError maps the engine taxonomy onto HTTP statuses.
func writeEngineError(ctx iris.Context, err error) {
	switch {
	case errors.Is(err, allocation.ErrInvalidDateRange):
		utils.JSONError(ctx, iris.StatusUnprocessableEntity, "invalid_date_range", err.Error())
	case errors.Is(err, allocation.ErrPropertyNotFound),
		errors.Is(err, allocation.ErrRoomNotFound),
		errors.Is(err, allocation.ErrRoomTypeNotFound):
		utils.JSONError(ctx, iris.StatusNotFound, "not_found", err.Error())
	default:
		utils.CreateInternalServerError(ctx)
	}
}
