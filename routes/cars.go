package routes

import (
	"github.com/kataras/iris/v12"
)

func ListCars(ctx iris.Context, a *App) {
	cars, err := a.Cars.List(ctx.Request().Context())
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	ctx.JSON(cars)
}

func GetCar(ctx iris.Context, a *App) {
	id := ctx.Params().GetUintDefault("id", 0)

	car, err := a.Cars.Get(ctx.Request().Context(), id)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	ctx.JSON(car)
}
