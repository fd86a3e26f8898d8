package service

import (
	"context"
	"strings"

	"byteapi/cmd/internal/domain/entity"
	"byteapi/cmd/internal/domain/store"
	"byteapi/cmd/internal/utils/apierror"
	"byteapi/cmd/internal/utils/validators"

	"github.com/go-playground/validator/v10"
)

var EventResource = &Resource{
	Label:    "Event",
	Plural:   "events",
	Table:    entity.TableEvents,
	Key:      "id",
	Required: []string{"id", "title", "date", "description"},
	Optional: []string{"image_url", "location", "type", "registration_url", "recap_url", "recap"},
	Updatable: []string{
		"title", "date", "description", "image_url", "location",
		"type", "registration_url", "recap_url", "recap",
	},
	Rules: []validators.Rule{
		{
			Field:   "date",
			Check:   validators.Tag("datetime=" + entity.EventDateLayout),
			Message: "date must be in YYYY-MM-DD format",
		},
		{
			Field:     "type",
			Check:     validators.OneOf(entity.EventTypes...),
			Message:   "type must be one of: " + strings.Join(entity.EventTypes, ", "),
			SkipEmpty: true,
		},
		{
			Field:     "registration_url",
			Check:     validators.Tag(validators.TagHTTPURL),
			Message:   "registration_url must be a valid URL",
			SkipEmpty: true,
		},
		{
			Field:     "recap_url",
			Check:     validators.Tag(validators.TagHTTPURL),
			Message:   "recap_url must be a valid URL",
			SkipEmpty: true,
		},
	},
	Attribution:       "updated_by",
	AttributeOnUpdate: true,
	Filters: []ListFilter{
		{Param: "is_past", Field: "is_past", Kind: FilterBool},
		{Param: "type", Field: "type"},
	},
	Order:  &store.Order{Field: "date", Desc: true},
	Access: contentAccess,
}

// contentAccess is shared by the public site content tables.
var contentAccess = Access{
	Read:   entity.CapabilityPublic,
	Create: entity.CapabilityAdmin,
	Update: entity.CapabilityAdmin,
	Delete: entity.CapabilityAdmin,
}

type EventService struct {
	*ResourceService
}

func NewEventService(s store.Store, validate *validator.Validate) *EventService {
	return &EventService{NewResourceService(EventResource, s, validate)}
}

// Upcoming lists events that have not happened yet, soonest first.
func (e *EventService) Upcoming(ctx context.Context) ([]store.Record, apierror.ErrorResponse) {
	q := store.From(entity.TableEvents).
		Eq("is_past", false).
		OrderBy("date", false)
	return e.Fetch(ctx, q, "upcoming events")
}

func (e *EventService) Past(ctx context.Context) ([]store.Record, apierror.ErrorResponse) {
	q := store.From(entity.TableEvents).
		Eq("is_past", true).
		OrderBy("date", true)
	return e.Fetch(ctx, q, "past events")
}
