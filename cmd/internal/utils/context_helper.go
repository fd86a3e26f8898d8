package utils

import (
	"byteapi/cmd/internal/domain/entity"
	"byteapi/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

const UserContextKey = "user"

// GetUserFromContext returns the caller resolved by the auth middleware.
func GetUserFromContext(c echo.Context) (*entity.User, apierror.ErrorResponse) {
	val := c.Get(UserContextKey)
	if val == nil {
		log.Warnf("route %s attempted to read nil user from context", c.Request().URL)
		return nil, apierror.UnauthorizedError
	}

	user, ok := val.(*entity.User)
	if !ok {
		log.Warnf("expected user type at '%s' context key, got %T", UserContextKey, val)
		return nil, apierror.InternalServerError
	}
	return user, nil
}

// OptionalUserFromContext is GetUserFromContext for public routes, where an
// anonymous caller is not an error.
func OptionalUserFromContext(c echo.Context) *entity.User {
	user, _ := c.Get(UserContextKey).(*entity.User)
	return user
}

func SetUser(c echo.Context, user *entity.User) {
	c.Set(UserContextKey, user)
}
