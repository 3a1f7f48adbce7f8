package routes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"

	"github.com/himmu2625/baithkaGhar-sub018/allocation"
	"github.com/himmu2625/baithkaGhar-sub018/inventory"
	"github.com/himmu2625/baithkaGhar-sub018/models"
	"github.com/himmu2625/baithkaGhar-sub018/services"
	"github.com/himmu2625/baithkaGhar-sub018/utils"
)

// buildTestApp creates a minimal Iris app backed by an in-memory engine,
// with the public allocation routes and the JWT-guarded report route.
func buildTestApp(inv *inventory.MemoryInventory) *iris.Application {
	os.Setenv("ACCESS_TOKEN_SECRET", "testsecret")

	engine := allocation.NewEngine(inv, allocation.NewMemoryHoldStore())
	InitializeEngine(engine, inv, services.NewLogNotifier())

	app := iris.New()
	app.Validator = validator.New()

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} { return new(utils.AccessToken) })

	allocations := app.Party("/api/allocations")
	{
		allocations.Post("/", AllocateRoom)
		allocations.Post("/confirm", ConfirmBooking)
		allocations.Get("/upgrade-options", GetUpgradeOptions)
	}

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.StaffOnlyMiddleware)
	{
		admin.Get("/reports/availability", GetAvailabilityReport)
	}

	app.Build()
	return app
}

// signTestToken returns a signed JWT with the given role
func signTestToken(t *testing.T, role string) string {
	t.Helper()
	token, err := utils.CreateStaffToken(1, role, time.Hour)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func seedSingleRoomProperty(inv *inventory.MemoryInventory) uint {
	propID := inv.AddProperty(models.Property{Name: "Baithka Ghar Jaipur"})
	typeID := inv.AddRoomType(models.RoomType{
		PropertyID: propID, Name: "Standard", Category: models.CategoryStandard,
		MaxOccupancy: 2, BasePricePerNight: 1000,
	})
	inv.AddRoom(models.Room{
		PropertyID: propID, RoomTypeID: typeID, RoomNumber: "101", Floor: 1,
		Status: models.RoomStatusAvailable, Condition: models.ConditionGood,
		HousekeepingStatus: models.HousekeepingClean,
	})
	return propID
}

func postJSON(app *iris.Application, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	return resp
}

func TestAllocateRoomEndpoint(t *testing.T) {
	inv := inventory.NewMemoryInventory()
	seedSingleRoomProperty(inv)
	app := buildTestApp(inv)

	body := `{"propertyID":1,"checkIn":"2025-07-10","checkOut":"2025-07-13","guestCount":2}`

	resp := postJSON(app, "/api/allocations", body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var result allocation.AllocationResult
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !result.Success || result.Room == nil || result.Room.RoomNumber != "101" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.Lease == nil || result.Lease.ID == "" {
		t.Fatal("success response must carry the lease")
	}
	if result.Price == nil || result.Price.TotalPrice != 3000 {
		t.Fatalf("price = %+v, want total 3000", result.Price)
	}

	// the only room is now held, so the same stay gets a 409 with the
	// overbooking payload
	resp2 := postJSON(app, "/api/allocations", body)
	if resp2.Code != http.StatusConflict {
		t.Fatalf("expected 409 once the room is held, got %d: %s", resp2.Code, resp2.Body.String())
	}

	var conflict allocation.AllocationResult
	if err := json.Unmarshal(resp2.Body.Bytes(), &conflict); err != nil {
		t.Fatalf("decode conflict response: %v", err)
	}
	if conflict.Success || !conflict.OverbookingWarning {
		t.Fatalf("unexpected conflict result: %+v", conflict)
	}
	if conflict.Alternatives == nil {
		t.Fatal("alternatives must be present on failure, even when empty")
	}
}

func TestConfirmBookingEndpoint(t *testing.T) {
	inv := inventory.NewMemoryInventory()
	seedSingleRoomProperty(inv)
	app := buildTestApp(inv)

	resp := postJSON(app, "/api/allocations",
		`{"propertyID":1,"checkIn":"2025-07-10","checkOut":"2025-07-13","guestCount":2}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("allocate: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var result allocation.AllocationResult
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode allocation: %v", err)
	}

	confirmBody := fmt.Sprintf(`{"roomID":%d,"leaseID":%q,"guestName":"Asha Rao","numGuests":2}`,
		result.Room.RoomID, result.Lease.ID)
	resp2 := postJSON(app, "/api/allocations/confirm", confirmBody)
	if resp2.Code != http.StatusOK {
		t.Fatalf("confirm: expected 200, got %d: %s", resp2.Code, resp2.Body.String())
	}

	var envelope struct {
		Success bool           `json:"success"`
		Data    models.Booking `json:"data"`
	}
	if err := json.Unmarshal(resp2.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode confirmation: %v", err)
	}
	if !envelope.Success || envelope.Data.Status != models.BookingStatusConfirmed {
		t.Fatalf("unexpected confirmation: %+v", envelope)
	}
	if envelope.Data.TotalPrice != 3000 {
		t.Fatalf("booking total = %v, want 3000", envelope.Data.TotalPrice)
	}

	// the lease is consumed: confirming again is a 409
	resp3 := postJSON(app, "/api/allocations/confirm", confirmBody)
	if resp3.Code != http.StatusConflict {
		t.Fatalf("expected 409 for a consumed lease, got %d: %s", resp3.Code, resp3.Body.String())
	}
}

func TestAllocateRoomEndpointBadDate(t *testing.T) {
	inv := inventory.NewMemoryInventory()
	seedSingleRoomProperty(inv)
	app := buildTestApp(inv)

	body := `{"propertyID":1,"checkIn":"10-07-2025","checkOut":"2025-07-13","guestCount":2}`
	resp := postJSON(app, "/api/allocations", body)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed date, got %d", resp.Code)
	}
}

func TestAllocateRoomEndpointValidation(t *testing.T) {
	inv := inventory.NewMemoryInventory()
	seedSingleRoomProperty(inv)
	app := buildTestApp(inv)

	// guestCount missing
	body := `{"propertyID":1,"checkIn":"2025-07-10","checkOut":"2025-07-13"}`
	resp := postJSON(app, "/api/allocations", body)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for missing guestCount, got %d", resp.Code)
	}
}

func TestAvailabilityReportRBAC(t *testing.T) {
	inv := inventory.NewMemoryInventory()
	seedSingleRoomProperty(inv)
	app := buildTestApp(inv)

	url := "/api/admin/reports/availability?propertyID=1&startDate=2025-07-10&endDate=2025-07-13"

	// No token
	req := httptest.NewRequest(http.MethodGet, url, nil)
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	if resp.Code == http.StatusOK {
		t.Fatalf("expected non-200 without token, got %d", resp.Code)
	}

	// Guest role -> 403
	req2 := httptest.NewRequest(http.MethodGet, url, nil)
	req2.Header.Set("Authorization", "Bearer "+signTestToken(t, "guest"))
	resp2 := httptest.NewRecorder()
	app.ServeHTTP(resp2, req2)
	if resp2.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for guest role, got %d", resp2.Code)
	}

	// Staff role -> 200
	req3 := httptest.NewRequest(http.MethodGet, url, nil)
	req3.Header.Set("Authorization", "Bearer "+signTestToken(t, "staff"))
	resp3 := httptest.NewRecorder()
	app.ServeHTTP(resp3, req3)
	if resp3.Code != http.StatusOK {
		t.Fatalf("expected 200 for staff role, got %d", resp3.Code)
	}
}
