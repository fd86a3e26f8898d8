package policy

import (
	"byteapi/cmd/internal/domain/entity"
	"byteapi/cmd/internal/utils/apierror"
)

// Authorize is the single role check behind every protected route.
// It returns apierror.ErrorResponse directly for seamless integration with handlers.
//
// A nil user is always reported as unauthorized, whatever the capability,
// since only the middleware decides when anonymous callers are acceptable.
func Authorize(user *entity.User, capability entity.Capability) apierror.ErrorResponse {
	if capability == entity.CapabilityPublic {
		return nil
	}

	if user == nil {
		return apierror.UnauthorizedError
	}

	if capability.Satisfies(user) {
		return nil
	}
	return forbiddenError(capability)
}

func forbiddenError(capability entity.Capability) *apierror.APIError {
	if capability == entity.CapabilityOwner {
		return apierror.OwnerRequiredError
	}
	return apierror.AdminRequiredError
}
