package handler

import (
	"context"
	"net/http"
	"net/url"

	"byteapi/cmd/internal/contract"
	"byteapi/cmd/internal/domain/entity"
	"byteapi/cmd/internal/domain/store"
	"byteapi/cmd/internal/utils"
	"byteapi/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

// ResourceService is the CRUD template every resource route delegates to.
type ResourceService interface {
	List(ctx context.Context, params url.Values) ([]store.Record, apierror.ErrorResponse)
	Get(ctx context.Context, id string) (store.Record, apierror.ErrorResponse)
	Create(ctx context.Context, actor *entity.User, body store.Record) (store.Record, apierror.ErrorResponse)
	Update(ctx context.Context, actor *entity.User, id string, body store.Record) (store.Record, apierror.ErrorResponse)
	Delete(ctx context.Context, id string) apierror.ErrorResponse

	CreatedMessage() string
	UpdatedMessage() string
	DeletedMessage() string
}

type DefaultResourceRoute struct {
	Service ResourceService
}

func NewResourceRoute(service ResourceService) *DefaultResourceRoute {
	return &DefaultResourceRoute{Service: service}
}

func (r *DefaultResourceRoute) GetAll(c echo.Context) error {
	rows, apierr := r.Service.List(c.Request().Context(), c.QueryParams())
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, contract.Data(rows))
}

func (r *DefaultResourceRoute) GetOne(c echo.Context) error {
	row, apierr := r.Service.Get(c.Request().Context(), c.Param("id"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, contract.Data(row))
}

func (r *DefaultResourceRoute) Create(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	body, apierr := readBody(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	row, apierr := r.Service.Create(c.Request().Context(), user, body)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, contract.MessageData(r.Service.CreatedMessage(), row))
}

// Update serves both PUT and PATCH, each is a partial update.
func (r *DefaultResourceRoute) Update(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	body, apierr := readBody(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	row, apierr := r.Service.Update(c.Request().Context(), user, c.Param("id"), body)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, contract.MessageData(r.Service.UpdatedMessage(), row))
}

func (r *DefaultResourceRoute) Delete(c echo.Context) error {
	apierr := r.Service.Delete(c.Request().Context(), c.Param("id"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, contract.Message(r.Service.DeletedMessage()))
}

func respondRows(c echo.Context, rows []store.Record, apierr apierror.ErrorResponse) error {
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, contract.Data(rows))
}
