package routes

import (
	"net/http"

	"carrental-server/services"
	"carrental-server/utils"

	"github.com/kataras/iris/v12"
)

func Signup(ctx iris.Context, a *App) {
	var req services.SignupInput
	if !readRequest(ctx, &req) {
		return
	}

	user, err := a.Accounts.Signup(ctx.Request().Context(), req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	ctx.StatusCode(http.StatusCreated)
	ctx.JSON(iris.Map{"user": user})
}

func Login(ctx iris.Context, a *App) {
	var req services.LoginInput
	if !readRequest(ctx, &req) {
		return
	}

	user, err := a.Accounts.Login(ctx.Request().Context(), req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	token, expiresAt, err := a.Tokens.Issue(user.UserID, string(user.Role))
	if err != nil {
		ctx.Application().Logger().Errorf("login: issue token for user %d: %v", user.UserID, err)
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"user":       user,
		"token":      token,
		"expires_at": expiresAt,
	})
}
