package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/himmu2625/baithkaGhar-sub018/allocation"
	"github.com/himmu2625/baithkaGhar-sub018/inventory"
	"github.com/himmu2625/baithkaGhar-sub018/routes"
	"github.com/himmu2625/baithkaGhar-sub018/services"
	"github.com/himmu2625/baithkaGhar-sub018/storage"
	"github.com/himmu2625/baithkaGhar-sub018/utils"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	godotenv.Load()
	db := storage.InitializeDB()
	storage.InitializeRedis()

	inv := inventory.NewGormInventory(db)
	holds := allocation.NewRedisHoldStore(storage.Redis)

	engineOpts := []allocation.Option{}
	if ttlMin, err := strconv.Atoi(os.Getenv("HOLD_TTL_MINUTES")); err == nil && ttlMin > 0 {
		engineOpts = append(engineOpts, allocation.WithHoldTTL(time.Duration(ttlMin)*time.Minute))
	}
	engine := allocation.NewEngine(inv, holds, engineOpts...)
	routes.InitializeEngine(engine, inv, services.NewLogNotifier())

	app := iris.New()
	app.Validator = validator.New()

	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	allocations := app.Party("/api/allocations")
	{
		allocations.Post("/", routes.AllocateRoom)
		allocations.Post("/confirm", routes.ConfirmBooking)
		allocations.Get("/upgrade-options", routes.GetUpgradeOptions)
		allocations.Delete("/holds/{id:uint}", routes.ReleaseHold)
	}

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.StaffOnlyMiddleware)
	{
		admin.Get("/reports/availability", routes.GetAvailabilityReport)
		admin.Get("/reports/availability/export", routes.ExportAvailabilityReport)
		admin.Get("/rooms", routes.AdminListRooms)
		admin.Get("/holds", routes.AdminListHolds)
		admin.Patch("/rooms/{id:uint}/status", utils.AdminOnlyMiddleware, routes.AdminUpdateRoomStatus)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	log.Println("🚀 allocation service listening on port", port)
	app.Listen(":" + port)
}
