package routes

import (
	"context"
	"errors"

	"carrental-server/services"
	"carrental-server/utils"

	"github.com/kataras/iris/v12"
)

// readRequest decodes and validates a JSON body, answering 400 itself on
// failure.
func readRequest(ctx iris.Context, dst any) bool {
	if err := ctx.ReadJSON(dst); err != nil {
		utils.CreateBadRequest(ctx, "Invalid request payload")
		return false
	}
	if err := utils.ValidateStruct(dst); err != nil {
		utils.CreateBadRequest(ctx, utils.ValidationMessage(err))
		return false
	}
	return true
}

func handleServiceError(ctx iris.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserExists):
		utils.CreateBadRequest(ctx, "User already exists")
	case errors.Is(err, services.ErrAdminSignup):
		utils.CreateForbidden(ctx, "Admin accounts cannot be created through signup")
	case errors.Is(err, services.ErrPasswordTooLong):
		utils.CreateBadRequest(ctx, "password must be at most 72 bytes")
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.CreateUnauthorized(ctx, "Invalid credentials")
	case errors.Is(err, services.ErrCarNotFound):
		utils.CreateNotFound(ctx, "Car not found")
	case errors.Is(err, services.ErrReservationNotFound):
		utils.CreateNotFound(ctx, "Reservation not found")
	case errors.Is(err, services.ErrAccessDenied):
		utils.CreateForbidden(ctx, "Access denied")
	case errors.Is(err, services.ErrUnauthorizedAction):
		utils.CreateForbidden(ctx, "Unauthorized action")
	case errors.Is(err, services.ErrNotPending):
		utils.CreateBadRequest(ctx, "Only pending reservations can be updated")
	case errors.Is(err, context.Canceled):
		// client went away
		ctx.StopExecution()
	default:
		ctx.Application().Logger().Errorf("%s %s: %v", ctx.Method(), ctx.Path(), err)
		utils.CreateInternalServerError(ctx)
	}
}
