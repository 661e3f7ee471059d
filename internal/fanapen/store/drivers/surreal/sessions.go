package surreal

import (
	"context"
	"fmt"
	"time"

	"github.com/MasFana/fanapen/internal/fanapen/domain"
	"github.com/MasFana/fanapen/internal/fanapen/store"
	"github.com/MasFana/fanapen/pkg/idx"
)

const sessionTable = "session"

type sessionsRepo struct {
	s *Store
}

func (r *sessionsRepo) Create(ctx context.Context, userID string) (domain.UserSession, error) {
	rec, err := queryOne[sessionRecord](ctx, r.s, "CREATE type::thing($table, $id) CONTENT $data", map[string]any{
		"table": sessionTable,
		"id":    idx.New().String(),
		"data": map[string]any{
			"userId":    userID,
			"expiresAt": wireTime(time.Now().Add(domain.SessionTTL)),
		},
	})
	if err != nil {
		return domain.UserSession{}, err
	}
	if rec == nil {
		return domain.UserSession{}, fmt.Errorf("create session: %w", store.ErrCreateFailed)
	}
	return rec.toDomain(), nil
}

// Get enforces expiry lazily: a session read past its expiry is purged as a
// side effect and reported as absent. There is no background sweep.
func (r *sessionsRepo) Get(ctx context.Context, id string) (*domain.UserSession, error) {
	table, key := splitRecordID(id, sessionTable)
	rec, err := queryOne[sessionRecord](ctx, r.s, "SELECT * FROM type::record($table, $id)", map[string]any{
		"table": table,
		"id":    key,
	})
	if err != nil || rec == nil {
		return nil, err
	}

	sess := rec.toDomain()
	if sess.Expired(time.Now()) {
		r.s.log.Debug("purging expired session", "session", sess.ID)
		if err := r.Delete(ctx, sess.ID); err != nil {
			return nil, err
		}
		return nil, nil
	}

	return &sess, nil
}

func (r *sessionsRepo) Delete(ctx context.Context, id string) error {
	table, key := splitRecordID(id, sessionTable)
	// Deleting an absent session is a no-op, not an error.
	return r.s.exec(ctx, "DELETE type::record($table, $id)", map[string]any{
		"table": table,
		"id":    key,
	})
}
