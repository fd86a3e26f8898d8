package testutil

import (
	"context"
	"errors"
	"testing"

	"byteapi/cmd/internal/domain/entity"
	"byteapi/cmd/internal/domain/store"
	"byteapi/cmd/internal/utils/validators"

	"github.com/go-playground/validator/v10"
	jwt "github.com/golang-jwt/jwt/v5"
)

var ErrTokenRejected = errors.New("token rejected")

// StaticProvider resolves tokens from a fixed table and counts lookups.
type StaticProvider struct {
	Tokens map[string]*entity.Identity
	// Err, when set, is returned for every token.
	Err   error
	Calls int
}

func NewStaticProvider() *StaticProvider {
	return &StaticProvider{Tokens: make(map[string]*entity.Identity)}
}

func (p *StaticProvider) Add(token, subject string) {
	p.Tokens[token] = &entity.Identity{Subject: subject, Email: subject + "@example.com"}
}

func (p *StaticProvider) ResolveUser(_ context.Context, token string) (*entity.Identity, error) {
	p.Calls++
	if p.Err != nil {
		return nil, p.Err
	}

	identity, ok := p.Tokens[token]
	if !ok {
		return nil, ErrTokenRejected
	}
	return identity, nil
}

func NewValidator() *validator.Validate {
	v := validator.New()
	validators.Register(v)
	return v
}

// UserRecord builds a users row with the given flags.
func UserRecord(uid string, isAdmin, isOwner bool) store.Record {
	return store.Record{
		"uid":            uid,
		"username":       uid,
		"email":          uid + "@example.com",
		"role":           "member",
		"is_admin":       isAdmin,
		"is_owner":       isOwner,
		"status":         "active",
		"email_verified": true,
	}
}

// GenerateJWTHS256 returns a signed token carrying sub and email claims.
func GenerateJWTHS256(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}
