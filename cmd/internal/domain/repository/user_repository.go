package repository

import (
	"context"
	"fmt"

	"byteapi/cmd/internal/domain/entity"
	"byteapi/cmd/internal/domain/store"
)

type DefaultUserRepository struct {
	store store.Store
}

func NewUserRepository(s store.Store) *DefaultUserRepository {
	return &DefaultUserRepository{store: s}
}

// FindByUID returns (nil, nil) when no row matches.
func (u *DefaultUserRepository) FindByUID(ctx context.Context, uid string) (*entity.User, error) {
	q := store.From(entity.TableUsers).
		Eq("uid", uid).
		WithLimit(1)

	rows, err := u.store.Select(ctx, q)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, nil
	}

	// Timestamp formats differ between backends and nothing downstream of
	// authentication reads them.
	rec := rows[0]
	delete(rec, "created_at")
	delete(rec, "updated_at")

	var user entity.User
	if err = store.Decode(rec, &user); err != nil {
		return nil, fmt.Errorf("decode user %s: %w", uid, err)
	}
	return &user, nil
}
