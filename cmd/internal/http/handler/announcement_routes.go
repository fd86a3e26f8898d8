package handler

import (
	"context"

	"byteapi/cmd/internal/domain/store"
	"byteapi/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type AnnouncementService interface {
	ResourceService
	Recent(ctx context.Context, rawLimit string) ([]store.Record, apierror.ErrorResponse)
}

type DefaultAnnouncementRoute struct {
	*DefaultResourceRoute
	AnnouncementService AnnouncementService
}

func NewAnnouncementRoute(service AnnouncementService) *DefaultAnnouncementRoute {
	return &DefaultAnnouncementRoute{
		DefaultResourceRoute: NewResourceRoute(service),
		AnnouncementService:  service,
	}
}

func (a *DefaultAnnouncementRoute) GetRecent(c echo.Context) error {
	rows, apierr := a.AnnouncementService.Recent(c.Request().Context(), c.QueryParam("limit"))
	return respondRows(c, rows, apierr)
}
