package utils

import (
	"context"
	"errors"
	"fmt"

	"byteapi/cmd/internal/domain/entity"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/gommon/log"
)

var ErrInvalidToken = errors.New("invalid token")

// JWTResolver verifies bearer tokens locally, either against a shared HS256
// secret or against the keys published at a JWKS endpoint.
type JWTResolver struct {
	keyfunc jwt.Keyfunc
	parser  *jwt.Parser
}

func NewHMACResolver(secret string) (*JWTResolver, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must not be empty")
	}

	key := []byte(secret)
	return &JWTResolver{
		keyfunc: func(*jwt.Token) (any, error) { return key, nil },
		parser:  jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired()),
	}, nil
}

// NewJWKSResolver fetches and keeps refreshing the key set until ctx is done.
func NewJWKSResolver(ctx context.Context, jwksURL string) (*JWTResolver, error) {
	jwks, err := keyfunc.NewDefaultCtx(ctx, []string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("failed to create JWKS from resource at %s: %w", jwksURL, err)
	}

	log.Infof("JWKS initialized. Keys loaded from %s", jwksURL)
	return &JWTResolver{
		keyfunc: jwks.Keyfunc,
		parser:  jwt.NewParser(jwt.WithExpirationRequired()),
	}, nil
}

// ResolveUser parses AND validates the signature locally.
func (r *JWTResolver) ResolveUser(_ context.Context, token string) (*entity.Identity, error) {
	parsed, err := r.parser.Parse(token, r.keyfunc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: invalid claims format", ErrInvalidToken)
	}

	sub := getValue(claims, "sub")
	if sub == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return &entity.Identity{
		Subject: sub,
		Email:   getValue(claims, "email"),
	}, nil
}

func getValue(claims jwt.MapClaims, key string) string {
	if val, ok := claims[key].(string); ok {
		return val
	}
	return ""
}
