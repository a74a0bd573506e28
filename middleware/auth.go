package middleware

import (
	"strings"

	"carrental-server/models"
	"carrental-server/services"
	"carrental-server/utils"

	"github.com/kataras/iris/v12"
)

const (
	userIDKey = "userID"
	roleKey   = "role"
)

// RequireAuth rejects requests without a valid bearer token and stores the
// token's user id and role in the request values.
func RequireAuth(tokens *utils.TokenManager) iris.Handler {
	return func(ctx iris.Context) {
		token, ok := bearerToken(ctx.GetHeader("Authorization"))
		if !ok {
			utils.CreateUnauthorized(ctx, "Unauthorized: login required")
			return
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			ctx.Application().Logger().Debugf("auth: %s %s: %v", ctx.Method(), ctx.Path(), err)
			utils.CreateUnauthorized(ctx, "Unauthorized: invalid token")
			return
		}

		ctx.Values().Set(userIDKey, claims.UserID)
		ctx.Values().Set(roleKey, claims.Role)
		ctx.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin(ctx iris.Context) {
	if ctx.Values().GetString(roleKey) != string(models.RoleAdmin) {
		utils.CreateForbidden(ctx, "Forbidden: admin access only")
		return
	}
	ctx.Next()
}

func GetCaller(ctx iris.Context) services.Caller {
	id, _ := ctx.Values().Get(userIDKey).(uint)
	return services.Caller{
		UserID: id,
		Role:   models.Role(ctx.Values().GetString(roleKey)),
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
