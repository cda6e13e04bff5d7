package http

import (
	"net/http"
	"strings"

	"cafeteria/internal/core/domain/model/user"
	"cafeteria/internal/core/ports"

	"github.com/labstack/echo/v4"
)

// actingUserKey is the echo context key holding the resolved acting user.
const actingUserKey = "actingUser"

// NewAuthMiddleware resolves the caller into a user identity before any
// handler runs. The token is taken from the Authorization header as a
// bearer token; a missing or unknown token ends the request with 401 and
// no core operation is invoked. Handlers trust the resolved identity
// completely.
func NewAuthMiddleware(users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			token := bearerToken(ctx.Request().Header.Get(echo.HeaderAuthorization))
			if token == "" {
				return ctx.JSON(http.StatusUnauthorized, Error{
					Code:    http.StatusUnauthorized,
					Message: "Missing access token",
				})
			}

			actingUser, err := users.GetByAccessToken(ctx.Request().Context(), token)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, Error{
					Code:    http.StatusUnauthorized,
					Message: "Invalid access token",
				})
			}

			ctx.Set(actingUserKey, actingUser)
			return next(ctx)
		}
	}
}

// actingUser returns the user resolved by the auth middleware, or nil when
// the middleware did not run.
func actingUser(ctx echo.Context) *user.User {
	u, _ := ctx.Get(actingUserKey).(*user.User)
	return u
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}
