package utils

import (
	"net/http"

	"github.com/kataras/iris/v12"
)

// Client errors answer {message}; server errors answer {error} and never
// carry driver text.

func CreateError(ctx iris.Context, statusCode int, message string) {
	ctx.StopWithJSON(statusCode, iris.Map{"message": message})
}

func CreateBadRequest(ctx iris.Context, message string) {
	CreateError(ctx, http.StatusBadRequest, message)
}

func CreateUnauthorized(ctx iris.Context, message string) {
	CreateError(ctx, http.StatusUnauthorized, message)
}

func CreateForbidden(ctx iris.Context, message string) {
	CreateError(ctx, http.StatusForbidden, message)
}

func CreateNotFound(ctx iris.Context, message string) {
	CreateError(ctx, http.StatusNotFound, message)
}

func CreateInternalServerError(ctx iris.Context) {
	ctx.StopWithJSON(http.StatusInternalServerError, iris.Map{"error": "Internal server error"})
}
