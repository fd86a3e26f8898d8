package handler

import (
	"context"

	"byteapi/cmd/internal/domain/store"
	"byteapi/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type EventService interface {
	ResourceService
	Upcoming(ctx context.Context) ([]store.Record, apierror.ErrorResponse)
	Past(ctx context.Context) ([]store.Record, apierror.ErrorResponse)
}

type DefaultEventRoute struct {
	*DefaultResourceRoute
	EventService EventService
}

func NewEventRoute(service EventService) *DefaultEventRoute {
	return &DefaultEventRoute{
		DefaultResourceRoute: NewResourceRoute(service),
		EventService:         service,
	}
}

func (e *DefaultEventRoute) GetUpcoming(c echo.Context) error {
	rows, apierr := e.EventService.Upcoming(c.Request().Context())
	return respondRows(c, rows, apierr)
}

func (e *DefaultEventRoute) GetPast(c echo.Context) error {
	rows, apierr := e.EventService.Past(c.Request().Context())
	return respondRows(c, rows, apierr)
}
