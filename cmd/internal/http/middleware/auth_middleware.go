package middleware

import (
	"context"
	"strings"

	"byteapi/cmd/internal/domain/entity"
	"byteapi/cmd/internal/domain/policy"
	"byteapi/cmd/internal/utils"
	"byteapi/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// IdentityProvider turns a bearer token into the subject it was issued for.
type IdentityProvider interface {
	ResolveUser(ctx context.Context, token string) (*entity.Identity, error)
}

type UserRepository interface {
	FindByUID(ctx context.Context, uid string) (*entity.User, error)
}

type AuthMiddlewareConfig struct {
	Provider IdentityProvider
	UserRepo UserRepository
}

type Authenticator struct {
	provider IdentityProvider
	users    UserRepository
}

// NewAuthenticator creates the middleware factory with dependencies injected
func NewAuthenticator(cfg *AuthMiddlewareConfig) *Authenticator {
	return &Authenticator{
		provider: cfg.Provider,
		users:    cfg.UserRepo,
	}
}

// Require guards a route with capability. Public routes still resolve the
// caller when an Authorization header is sent, failures there are ignored.
func (a *Authenticator) Require(capability entity.Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if capability == entity.CapabilityPublic {
				a.resolveOptional(c)
				return next(c)
			}

			user, apiErr := a.resolve(c)
			if apiErr != nil {
				return c.JSON(apiErr.Code(), apiErr)
			}

			if apiErr = policy.Authorize(user, capability); apiErr != nil {
				log.Infof("user %s denied on %s %s: %s required", user.UID, c.Request().Method, c.Path(), capability)
				return c.JSON(apiErr.Code(), apiErr)
			}
			return next(c)
		}
	}
}

func (a *Authenticator) resolveOptional(c echo.Context) {
	if c.Request().Header.Get(echo.HeaderAuthorization) == "" {
		return
	}
	_, _ = a.resolve(c)
}

// resolve runs token extraction, verification and user lookup once per
// request. Every failure maps to the same 401 body.
func (a *Authenticator) resolve(c echo.Context) (*entity.User, apierror.ErrorResponse) {
	if user := utils.OptionalUserFromContext(c); user != nil {
		return user, nil
	}

	token, ok := ExtractBearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
	if !ok {
		log.Debugf("missing or malformed bearer token on %s", c.Request().URL.Path)
		return nil, apierror.UnauthorizedError
	}

	ctx := c.Request().Context()
	identity, err := a.provider.ResolveUser(ctx, token)
	if err != nil {
		log.Warnf("token verification failed: %v", err)
		return nil, apierror.UnauthorizedError
	}

	user, err := a.users.FindByUID(ctx, identity.Subject)
	if err != nil {
		log.Errorf("failed to fetch user %s: %v", identity.Subject, err)
		return nil, apierror.UnauthorizedError
	}

	if user == nil {
		// Valid token, but the account was never provisioned in the users table
		log.Warnf("no user row for authenticated subject %s", identity.Subject)
		return nil, apierror.UnauthorizedError
	}

	utils.SetUser(c, user)
	return user, nil
}

// ExtractBearerToken accepts exactly "<bearer> <token>", scheme in any casing.
func ExtractBearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}
