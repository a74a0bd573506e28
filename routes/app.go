package routes

import (
	"carrental-server/middleware"
	"carrental-server/services"
	"carrental-server/utils"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/logger"
	irisrecover "github.com/kataras/iris/v12/middleware/recover"
	"gorm.io/gorm"
)

// App carries the dependencies the handlers share.
type App struct {
	DB           *gorm.DB
	Accounts     *services.Accounts
	Cars         *services.CarCatalog
	Reservations *services.Reservations
	Tokens       *utils.TokenManager

	CORSOrigins []string
	RequestLog  bool
}

func (a *App) handle(fn func(iris.Context, *App)) iris.Handler {
	return func(ctx iris.Context) {
		fn(ctx, a)
	}
}

func NewApplication(a *App) *iris.Application {
	app := iris.New()

	app.UseRouter(irisrecover.New())
	if a.RequestLog {
		app.UseRouter(logger.New())
	}
	app.UseRouter(middleware.CORS(a.CORSOrigins))

	app.OnErrorCode(iris.StatusNotFound, func(ctx iris.Context) {
		ctx.JSON(iris.Map{"message": "Route not found"})
	})

	app.Get("/", func(ctx iris.Context) {
		ctx.WriteString("Car Rental API is running")
	})
	app.Get("/test", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"message": "API test successful"})
	})
	app.Get("/healthcheck", a.handle(Healthcheck))

	api := app.Party("/api")

	auth := api.Party("/auth")
	auth.Post("/signup", a.handle(Signup))
	auth.Post("/login", a.handle(Login))

	cars := api.Party("/cars")
	cars.Get("/", a.handle(ListCars))
	cars.Get("/{id:uint}", a.handle(GetCar))

	reservations := api.Party("/reservations", middleware.RequireAuth(a.Tokens))
	reservations.Get("/", middleware.RequireAdmin, a.handle(ListAllReservations))
	reservations.Post("/", a.handle(CreateReservation))
	reservations.Get("/user/{userId:uint}", a.handle(GetReservationsByUserID))
	reservations.Put("/user/{id:uint}", a.handle(UpdateReservationSchedule))
	reservations.Put("/{id:uint}", middleware.RequireAdmin, a.handle(UpdateReservationStatus))
	reservations.Delete("/{id:uint}", a.handle(DeleteReservation))

	return app
}

func Healthcheck(ctx iris.Context, a *App) {
	sqlDB, err := a.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx.Request().Context())
	}
	if err != nil {
		ctx.Application().Logger().Errorf("healthcheck: %v", err)
		ctx.StopWithJSON(iris.StatusServiceUnavailable, iris.Map{"status": "unavailable"})
		return
	}
	ctx.JSON(iris.Map{"status": "ok"})
}
