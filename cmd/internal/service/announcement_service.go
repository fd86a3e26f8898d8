package service

import (
	"context"

	"byteapi/cmd/internal/domain/entity"
	"byteapi/cmd/internal/domain/store"
	"byteapi/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
)

var AnnouncementResource = &Resource{
	Label:             "Announcement",
	Plural:            "announcements",
	Table:             entity.TableAnnouncements,
	Key:               "id",
	Required:          []string{"id", "date", "title", "description"},
	Optional:          []string{"image_url"},
	Updatable:         []string{"date", "title", "description", "image_url"},
	Attribution:       "updated_by",
	AttributeOnUpdate: true,
	Order:             &store.Order{Field: "created_at", Desc: true},
	Access:            contentAccess,
}

var recentAnnouncementsLimit = LimitRule{Default: 10, Min: 1, Max: 100}

type AnnouncementService struct {
	*ResourceService
}

func NewAnnouncementService(s store.Store, validate *validator.Validate) *AnnouncementService {
	return &AnnouncementService{NewResourceService(AnnouncementResource, s, validate)}
}

func (a *AnnouncementService) Recent(ctx context.Context, rawLimit string) ([]store.Record, apierror.ErrorResponse) {
	limit, apierr := ParseLimit(rawLimit, recentAnnouncementsLimit)
	if apierr != nil {
		return nil, apierr
	}
	return a.Fetch(ctx, a.Query().WithLimit(limit), "recent announcements")
}
