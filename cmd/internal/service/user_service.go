package service

import (
	"context"

	"byteapi/cmd/internal/domain/entity"
	"byteapi/cmd/internal/domain/store"
	"byteapi/cmd/internal/utils/apierror"
	"byteapi/cmd/internal/utils/validators"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

// UserResource manages the profile rows that back identity-provider accounts.
// The uid is normally the provider subject and may be supplied on create.
var UserResource = &Resource{
	Label:    "User",
	Plural:   "users",
	Table:    entity.TableUsers,
	Key:      "uid",
	Required: []string{"username", "email"},
	Optional: []string{"uid", "role", "is_admin", "is_owner", "status", "email_verified"},
	Defaults: func() store.Record {
		return store.Record{
			"role":           "member",
			"is_admin":       false,
			"is_owner":       false,
			"status":         "active",
			"email_verified": false,
		}
	},
	Updatable: []string{"username", "email", "role", "is_admin", "is_owner", "status", "email_verified"},
	Rules: []validators.Rule{
		{
			Field:   "email",
			Check:   validators.Tag("required," + validators.TagHasAt),
			Message: "Invalid email format",
		},
	},
	Access: Access{
		Read:   entity.CapabilityAdmin,
		Create: entity.CapabilityAdmin,
		Update: entity.CapabilityOwner,
		Delete: entity.CapabilityOwner,
	},
}

type UserService struct {
	*ResourceService
}

func NewUserService(s store.Store, validate *validator.Validate) *UserService {
	return &UserService{NewResourceService(UserResource, s, validate)}
}

// Me returns the stored profile of the resolved caller.
func (u *UserService) Me(ctx context.Context, actor *entity.User) (store.Record, apierror.ErrorResponse) {
	row, err := u.find(ctx, actor.UID)
	if err != nil {
		log.Errorf("failed to fetch profile of %s: %v", actor.UID, err)
		return nil, apierror.NewServerError("Failed to fetch user profile")
	}

	if row == nil {
		return nil, u.notFound()
	}
	return row, nil
}
