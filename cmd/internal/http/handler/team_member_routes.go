package handler

import (
	"context"

	"byteapi/cmd/internal/domain/store"
	"byteapi/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type TeamMemberService interface {
	ResourceService
	ByCategory(ctx context.Context, category string) ([]store.Record, apierror.ErrorResponse)
}

type DefaultTeamMemberRoute struct {
	*DefaultResourceRoute
	TeamMemberService TeamMemberService
}

func NewTeamMemberRoute(service TeamMemberService) *DefaultTeamMemberRoute {
	return &DefaultTeamMemberRoute{
		DefaultResourceRoute: NewResourceRoute(service),
		TeamMemberService:    service,
	}
}

func (t *DefaultTeamMemberRoute) GetByCategory(c echo.Context) error {
	rows, apierr := t.TeamMemberService.ByCategory(c.Request().Context(), c.Param("category"))
	return respondRows(c, rows, apierr)
}
