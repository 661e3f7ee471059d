package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/MasFana/fanapen/internal/fanapen/domain"
	"github.com/MasFana/fanapen/pkg/idx"
)

type sessionsRepo struct {
	db  *sql.DB
	log *slog.Logger
}

func (r *sessionsRepo) Create(ctx context.Context, userID string) (domain.UserSession, error) {
	session := domain.UserSession{
		ID:        idx.New().String(),
		UserID:    userID,
		ExpiresAt: time.Now().UTC().Add(domain.SessionTTL),
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (id, user_id, expires_at) VALUES (?, ?, ?)`,
		session.ID, session.UserID, wireTime(session.ExpiresAt),
	)
	if err != nil {
		return domain.UserSession{}, err
	}
	return session, nil
}

// Get returns the live session, or nil for unknown ids. Expired sessions are
// purged on the way out so the table does not need a background sweeper.
func (r *sessionsRepo) Get(ctx context.Context, id string) (*domain.UserSession, error) {
	var session domain.UserSession
	var expiresAt string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, expires_at FROM sessions WHERE id = ?`, id,
	).Scan(&session.ID, &session.UserID, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	session.ExpiresAt = parseTime(expiresAt)

	if session.Expired(time.Now()) {
		r.log.DebugContext(ctx, "purging expired session", "session_id", id)
		if err := r.Delete(ctx, id); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return &session, nil
}

func (r *sessionsRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	return err
}
