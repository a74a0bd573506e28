// routes/reservation.go
package routes

import (
	"net/http"

	"carrental-server/middleware"
	"carrental-server/services"

	"github.com/kataras/iris/v12"
)

func CreateReservation(ctx iris.Context, a *App) {
	var req services.CreateReservationInput
	if !readRequest(ctx, &req) {
		return
	}

	reservation, err := a.Reservations.Create(ctx.Request().Context(), middleware.GetCaller(ctx), req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	ctx.StatusCode(http.StatusCreated)
	ctx.JSON(reservation)
}

func GetReservationsByUserID(ctx iris.Context, a *App) {
	userID := ctx.Params().GetUintDefault("userId", 0)

	reservations, err := a.Reservations.ListForUser(ctx.Request().Context(), middleware.GetCaller(ctx), userID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	ctx.JSON(reservations)
}

func ListAllReservations(ctx iris.Context, a *App) {
	reservations, err := a.Reservations.ListAll(ctx.Request().Context(), middleware.GetCaller(ctx))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	ctx.JSON(reservations)
}

func UpdateReservationStatus(ctx iris.Context, a *App) {
	id := ctx.Params().GetUintDefault("id", 0)

	var req services.AdminUpdateInput
	if !readRequest(ctx, &req) {
		return
	}

	reservation, err := a.Reservations.UpdateByAdmin(ctx.Request().Context(), middleware.GetCaller(ctx), id, req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	ctx.JSON(reservation)
}

func UpdateReservationSchedule(ctx iris.Context, a *App) {
	id := ctx.Params().GetUintDefault("id", 0)

	var req services.ScheduleInput
	if !readRequest(ctx, &req) {
		return
	}

	reservation, err := a.Reservations.UpdateSchedule(ctx.Request().Context(), middleware.GetCaller(ctx), id, req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	ctx.JSON(reservation)
}

func DeleteReservation(ctx iris.Context, a *App) {
	id := ctx.Params().GetUintDefault("id", 0)

	reservation, err := a.Reservations.Delete(ctx.Request().Context(), middleware.GetCaller(ctx), id)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{
		"message":     "Reservation deleted successfully",
		"reservation": reservation,
	})
}
