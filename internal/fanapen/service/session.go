package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/MasFana/fanapen/internal/fanapen/domain"
	"github.com/MasFana/fanapen/internal/fanapen/store"
	"github.com/MasFana/fanapen/pkg/slogx"
)

var ErrUserNotFound = errors.New("user not found")

type SessionService struct {
	Store store.Store
}

// Start opens a session for an existing user and returns the cookie-ready
// session record.
func (s *SessionService) Start(ctx context.Context, userID string) (domain.UserSession, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetByID(ctx, userID)
	if err != nil {
		log.Error("failed to fetch user", slog.Any("error", err))
		return domain.UserSession{}, err
	}
	if user == nil {
		log.Warn("attempted to start session for unknown user", slog.String("user_id", userID))
		return domain.UserSession{}, ErrUserNotFound
	}

	return s.Store.Sessions().Create(ctx, user.ID)
}

// Resolve maps a session id from a cookie to its user. An unknown, expired
// or orphaned session resolves to nil without error; the caller treats that
// as "not signed in".
func (s *SessionService) Resolve(ctx context.Context, sessionID string) (*domain.User, error) {
	log := slogx.FromContext(ctx)

	session, err := s.Store.Sessions().Get(ctx, sessionID)
	if err != nil {
		log.Error("failed to fetch session", slog.Any("error", err))
		return nil, err
	}
	if session == nil {
		return nil, nil
	}

	user, err := s.Store.Users().GetByID(ctx, session.UserID)
	if err != nil {
		log.Error("failed to fetch session user", slog.Any("error", err))
		return nil, err
	}
	if user == nil {
		// The owning user is gone; the session is garbage now.
		log.Warn("dropping orphaned session", slog.String("session_id", sessionID))
		if err := s.Store.Sessions().Delete(ctx, sessionID); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return user, nil
}

// End terminates a session. Ending an unknown session is a no-op.
func (s *SessionService) End(ctx context.Context, sessionID string) error {
	return s.Store.Sessions().Delete(ctx, sessionID)
}
