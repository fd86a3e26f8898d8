package handler

import (
	"context"
	"strings"

	"byteapi/cmd/internal/domain/store"
	"byteapi/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type ProjectService interface {
	ResourceService
	ByType(ctx context.Context, projectType string) ([]store.Record, apierror.ErrorResponse)
}

type DefaultProjectRoute struct {
	*DefaultResourceRoute
	ProjectService ProjectService
}

func NewProjectRoute(service ProjectService) *DefaultProjectRoute {
	return &DefaultProjectRoute{
		DefaultResourceRoute: NewResourceRoute(service),
		ProjectService:       service,
	}
}

func (p *DefaultProjectRoute) GetByType(c echo.Context) error {
	projectType := strings.TrimSpace(c.Param("type"))
	rows, apierr := p.ProjectService.ByType(c.Request().Context(), projectType)
	return respondRows(c, rows, apierr)
}
