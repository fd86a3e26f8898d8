package service

import (
	"context"

	"byteapi/cmd/internal/domain/entity"
	"byteapi/cmd/internal/domain/store"
	"byteapi/cmd/internal/utils/apierror"
	"byteapi/cmd/internal/utils/validators"

	"github.com/go-playground/validator/v10"
)

var TeamMemberResource = &Resource{
	Label:    "Team member",
	Plural:   "team members",
	Table:    entity.TableTeamMembers,
	Key:      "id",
	Required: []string{"id", "name", "position", "profile_pic_url", "rank", "categories"},
	Optional: []string{"connections"},
	Defaults: func() store.Record {
		return store.Record{"connections": []any{}}
	},
	Updatable: []string{"name", "position", "profile_pic_url", "rank", "categories", "connections"},
	Rules: []validators.Rule{
		{
			Field:   "categories",
			Check:   validators.Array(true),
			Message: "categories must be a non-empty array",
		},
	},
	Attribution:       "updated_by",
	AttributeOnUpdate: true,
	Filters: []ListFilter{
		{Param: "category", Field: "categories", Kind: FilterContains},
	},
	Order:  &store.Order{Field: "rank", Desc: true},
	Access: contentAccess,
}

type TeamMemberService struct {
	*ResourceService
}

func NewTeamMemberService(s store.Store, validate *validator.Validate) *TeamMemberService {
	return &TeamMemberService{NewResourceService(TeamMemberResource, s, validate)}
}

func (t *TeamMemberService) ByCategory(ctx context.Context, category string) ([]store.Record, apierror.ErrorResponse) {
	q := t.Query().Contains("categories", category)
	return t.Fetch(ctx, q, "team members by category")
}
