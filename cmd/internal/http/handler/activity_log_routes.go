package handler

import (
	"context"

	"byteapi/cmd/internal/domain/store"
	"byteapi/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type ActivityLogService interface {
	ResourceService
	ByUser(ctx context.Context, userID, rawLimit string) ([]store.Record, apierror.ErrorResponse)
	ByCollection(ctx context.Context, collection, rawLimit string) ([]store.Record, apierror.ErrorResponse)
	ByDocument(ctx context.Context, collection, documentID string) ([]store.Record, apierror.ErrorResponse)
}

type DefaultActivityLogRoute struct {
	*DefaultResourceRoute
	ActivityLogService ActivityLogService
}

func NewActivityLogRoute(service ActivityLogService) *DefaultActivityLogRoute {
	return &DefaultActivityLogRoute{
		DefaultResourceRoute: NewResourceRoute(service),
		ActivityLogService:   service,
	}
}

func (a *DefaultActivityLogRoute) GetByUser(c echo.Context) error {
	rows, apierr := a.ActivityLogService.ByUser(c.Request().Context(), c.Param("user_id"), c.QueryParam("limit"))
	return respondRows(c, rows, apierr)
}

func (a *DefaultActivityLogRoute) GetByCollection(c echo.Context) error {
	rows, apierr := a.ActivityLogService.ByCollection(c.Request().Context(), c.Param("collection"), c.QueryParam("limit"))
	return respondRows(c, rows, apierr)
}

func (a *DefaultActivityLogRoute) GetByDocument(c echo.Context) error {
	rows, apierr := a.ActivityLogService.ByDocument(c.Request().Context(), c.Param("collection"), c.Param("document_id"))
	return respondRows(c, rows, apierr)
}
