package service

import (
	"context"

	"byteapi/cmd/internal/domain/entity"
	"byteapi/cmd/internal/domain/store"
	"byteapi/cmd/internal/utils/apierror"
	"byteapi/cmd/internal/utils/validators"

	"github.com/go-playground/validator/v10"
)

var projectTypes = []string{entity.ProjectTypeCurrent, entity.ProjectTypePast}

var ProjectResource = &Resource{
	Label:     "Project",
	Plural:    "projects",
	Table:     entity.TableProjects,
	Key:       "id",
	Required:  []string{"id", "title", "status", "description", "technologies", "github_url", "type"},
	Optional:  []string{"image_url"},
	Updatable: []string{"title", "status", "description", "technologies", "github_url", "image_url", "type"},
	Rules: []validators.Rule{
		{
			Field:   "status",
			Check:   validators.OneOf(entity.ProjectStatusOngoing, entity.ProjectStatusCompleted),
			Message: "status must be 'On-going' or 'Completed'",
		},
		{
			Field:   "type",
			Check:   validators.OneOf(projectTypes...),
			Message: "type must be 'current' or 'past'",
		},
		{
			Field:   "technologies",
			Check:   validators.Array(false),
			Message: "technologies must be an array",
		},
		{
			Field:   "github_url",
			Check:   validators.Tag(validators.TagHTTPURL),
			Message: "github_url must be a valid URL",
		},
	},
	// Projects keep their author, updates do not re-stamp it.
	Attribution: "created_by",
	Filters: []ListFilter{
		{Param: "type", Field: "type"},
		{Param: "status", Field: "status"},
	},
	Order:  &store.Order{Field: "updated_at", Desc: true},
	Access: contentAccess,
}

var InvalidProjectTypeError = apierror.NewBadRequest("Invalid project type. Must be 'current' or 'past'")

type ProjectService struct {
	*ResourceService
}

func NewProjectService(s store.Store, validate *validator.Validate) *ProjectService {
	return &ProjectService{NewResourceService(ProjectResource, s, validate)}
}

func (p *ProjectService) ByType(ctx context.Context, projectType string) ([]store.Record, apierror.ErrorResponse) {
	if projectType != entity.ProjectTypeCurrent && projectType != entity.ProjectTypePast {
		return nil, InvalidProjectTypeError
	}

	q := p.Query().Eq("type", projectType)
	return p.Fetch(ctx, q, "projects by type")
}
