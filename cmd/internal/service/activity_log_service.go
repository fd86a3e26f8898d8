package service

import (
	"context"

	"byteapi/cmd/internal/domain/entity"
	"byteapi/cmd/internal/domain/store"
	"byteapi/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
)

var (
	activityLogLimit     = LimitRule{Default: 100, Min: 1, Max: 1000}
	userActivityLogLimit = LimitRule{Default: 50, Min: 1, Max: 500}
)

var ActivityLogResource = &Resource{
	Label:       "Activity log",
	Plural:      "activity logs",
	Table:       entity.TableActivityLog,
	Key:         "id",
	Required:    []string{"action", "collection", "document_id"},
	Optional:    []string{"changes", "metadata"},
	Updatable:   []string{"action", "collection", "document_id", "changes", "metadata"},
	Attribution: "user_id",
	Filters: []ListFilter{
		{Param: "user_id", Field: "user_id"},
		{Param: "collection", Field: "collection"},
		{Param: "action", Field: "action"},
	},
	Order: &store.Order{Field: "timestamp", Desc: true},
	Limit: &activityLogLimit,
	Access: Access{
		Read:   entity.CapabilityAdmin,
		Create: entity.CapabilityAdmin,
		Update: entity.CapabilityOwner,
		Delete: entity.CapabilityOwner,
	},
}

type ActivityLogService struct {
	*ResourceService
}

func NewActivityLogService(s store.Store, validate *validator.Validate) *ActivityLogService {
	return &ActivityLogService{NewResourceService(ActivityLogResource, s, validate)}
}

func (a *ActivityLogService) ByUser(ctx context.Context, userID, rawLimit string) ([]store.Record, apierror.ErrorResponse) {
	limit, apierr := ParseLimit(rawLimit, userActivityLogLimit)
	if apierr != nil {
		return nil, apierr
	}

	q := a.Query().Eq("user_id", userID).WithLimit(limit)
	return a.Fetch(ctx, q, "user activity logs")
}

func (a *ActivityLogService) ByCollection(ctx context.Context, collection, rawLimit string) ([]store.Record, apierror.ErrorResponse) {
	limit, apierr := ParseLimit(rawLimit, activityLogLimit)
	if apierr != nil {
		return nil, apierr
	}

	q := a.Query().Eq("collection", collection).WithLimit(limit)
	return a.Fetch(ctx, q, "collection activity logs")
}

// ByDocument returns the full history of one document, newest first.
func (a *ActivityLogService) ByDocument(ctx context.Context, collection, documentID string) ([]store.Record, apierror.ErrorResponse) {
	q := a.Query().
		Eq("collection", collection).
		Eq("document_id", documentID)
	return a.Fetch(ctx, q, "document activity logs")
}
