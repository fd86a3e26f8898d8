package handler

import (
	"context"
	"net/http"

	"byteapi/cmd/internal/contract"
	"byteapi/cmd/internal/domain/entity"
	"byteapi/cmd/internal/domain/store"
	"byteapi/cmd/internal/utils"
	"byteapi/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type UserService interface {
	ResourceService
	Me(ctx context.Context, actor *entity.User) (store.Record, apierror.ErrorResponse)
}

type DefaultUserRoute struct {
	*DefaultResourceRoute
	UserService UserService
}

func NewUserRoute(service UserService) *DefaultUserRoute {
	return &DefaultUserRoute{
		DefaultResourceRoute: NewResourceRoute(service),
		UserService:          service,
	}
}

func (u *DefaultUserRoute) GetMe(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	profile, apierr := u.UserService.Me(c.Request().Context(), user)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, contract.Data(profile))
}
