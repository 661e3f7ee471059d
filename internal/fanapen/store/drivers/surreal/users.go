package surreal

import (
	"context"
	"fmt"
	"time"

	"github.com/MasFana/fanapen/internal/fanapen/domain"
	"github.com/MasFana/fanapen/internal/fanapen/store"
	"github.com/MasFana/fanapen/pkg/idx"
)

const userTable = "user"

type usersRepo struct {
	s *Store
}

func (r *usersRepo) Create(ctx context.Context, username, passwordHash string) (domain.User, error) {
	rec, err := queryOne[userRecord](ctx, r.s, "CREATE type::thing($table, $id) CONTENT $data", map[string]any{
		"table": userTable,
		"id":    idx.New().String(),
		"data": map[string]any{
			"username":     username,
			"passwordHash": passwordHash,
			"createdAt":    wireTime(time.Now()),
		},
	})
	if err != nil {
		return domain.User{}, err
	}
	if rec == nil {
		return domain.User{}, fmt.Errorf("create user: %w", store.ErrCreateFailed)
	}
	return rec.toDomain(), nil
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	table, key := splitRecordID(id, userTable)
	rec, err := queryOne[userRecord](ctx, r.s, "SELECT * FROM type::record($table, $id)", map[string]any{
		"table": table,
		"id":    key,
	})
	if err != nil || rec == nil {
		return nil, err
	}

	u := rec.toDomain()
	return &u, nil
}

func (r *usersRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	rec, err := queryOne[userRecord](ctx, r.s, "SELECT * FROM user WHERE username = $username LIMIT 1", map[string]any{
		"username": username,
	})
	if err != nil || rec == nil {
		return nil, err
	}

	u := rec.toDomain()
	return &u, nil
}
