// Package surreal implements the fanapen store contract against a remote
// SurrealDB instance. The connection is established lazily on first use and
// shared by every repository; concurrent first uses share a single dial.
package surreal

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/MasFana/fanapen/internal/fanapen/store"
)

type connState int

const (
	connIdle connState = iota
	connConnecting
	connReady
)

// Store is the surreal-backed implementation of store.Store. It owns the
// single transport handle and guards it with an explicit
// {idle, connecting, ready} state machine rather than ad hoc flags.
type Store struct {
	cfg  Config
	conn Conn
	log  *slog.Logger

	mu      sync.Mutex
	state   connState
	attempt chan struct{} // closed when the in-flight dial finishes
	dialErr error         // outcome of the last finished dial
}

var _ store.Store = (*Store)(nil)

type Option func(*Store)

// WithConn swaps the transport. Tests use this to script responses.
func WithConn(conn Conn) Option {
	return func(s *Store) { s.conn = conn }
}

// WithLogger sets the logger; the default is slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) { s.log = log }
}

// New builds a Store. No network activity happens here; the first operation
// dials. A misconfigured store therefore fails on first use, loudly, with
// every missing setting named.
func New(cfg Config, opts ...Option) *Store {
	s := &Store{cfg: cfg, log: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	if s.conn == nil {
		s.conn = NewHTTPConn()
	}
	return s
}

func (s *Store) Users() store.Users               { return &usersRepo{s: s} }
func (s *Store) Sessions() store.Sessions         { return &sessionsRepo{s: s} }
func (s *Store) Projects() store.Projects         { return &projectsRepo{s: s} }
func (s *Store) Leaderboards() store.Leaderboards { return &leaderboardsRepo{s: s} }

// Ping dials if necessary and reports whether the engine is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.ensureConnected(ctx)
}

// Close tears down the transport. A later call dials from scratch.
func (s *Store) Close() error {
	s.mu.Lock()
	s.state = connIdle
	s.dialErr = nil
	s.mu.Unlock()
	return s.conn.Close(context.Background())
}

// ensureConnected is idempotent and concurrency safe. The first caller dials;
// callers arriving while a dial is in flight wait on that same attempt and
// observe its outcome. A failed dial resets the state so the next caller
// retries from scratch instead of replaying a poisoned attempt.
func (s *Store) ensureConnected(ctx context.Context) error {
	for {
		s.mu.Lock()
		switch s.state {
		case connReady:
			s.mu.Unlock()
			return nil

		case connIdle:
			done := make(chan struct{})
			s.attempt = done
			s.state = connConnecting
			s.mu.Unlock()

			err := s.dial(ctx)

			s.mu.Lock()
			if err != nil {
				s.state = connIdle
			} else {
				s.state = connReady
			}
			s.dialErr = err
			s.attempt = nil
			close(done)
			s.mu.Unlock()
			return err

		case connConnecting:
			done := s.attempt
			s.mu.Unlock()

			select {
			case <-done:
			case <-ctx.Done():
				// Only this waiter gives up; the dial itself continues.
				return ctx.Err()
			}

			s.mu.Lock()
			if s.state == connReady {
				s.mu.Unlock()
				return nil
			}
			err := s.dialErr
			s.mu.Unlock()
			if err != nil {
				return err
			}
			// The attempt we waited on succeeded but the store was closed
			// in between. Loop and take part in the next dial.
		}
	}
}

func (s *Store) dial(ctx context.Context) error {
	if err := s.cfg.validate(); err != nil {
		return err
	}

	if err := s.conn.Connect(ctx, s.cfg.URL); err != nil {
		return fmt.Errorf("surreal: connect %s: %w", s.cfg.URL, err)
	}
	if err := s.conn.Use(ctx, s.cfg.Namespace, s.cfg.Database); err != nil {
		return fmt.Errorf("surreal: use %s/%s: %w", s.cfg.Namespace, s.cfg.Database, err)
	}
	if err := s.conn.SignIn(ctx, Credentials{
		Namespace: s.cfg.Namespace,
		Database:  s.cfg.Database,
		Username:  s.cfg.Username,
		Password:  s.cfg.Password,
	}); err != nil {
		return fmt.Errorf("surreal: signin: %w", err)
	}

	s.log.Info("surreal connection established",
		"url", s.cfg.URL,
		"namespace", s.cfg.Namespace,
		"database", s.cfg.Database,
	)
	return nil
}

// exec runs a statement whose rows the caller does not care about.
func (s *Store) exec(ctx context.Context, statement string, vars map[string]any) error {
	_, err := queryMany[ignored](ctx, s, statement, vars)
	return err
}

// ignored swallows whatever shape a row has.
type ignored struct{}

func (*ignored) UnmarshalJSON([]byte) error { return nil }
