package sqlite

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/MasFana/fanapen/internal/fanapen/store"
)

// Store is the embedded SQLite implementation of store.Store. It is the
// zero-infrastructure option: a single file (or :memory:) instead of a
// running SurrealDB.
type Store struct {
	db  *sql.DB
	log *slog.Logger
	dsn string
}

var _ store.Store = (*Store)(nil)

type Option func(*Store)

func WithLogger(log *slog.Logger) Option {
	return func(s *Store) { s.log = log }
}

func NewStore(dsn string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// PRAGMAs are per-connection and database/sql pools them, so pin the
	// pool to a single connection. SQLite only supports one writer anyway.
	db.SetMaxOpenConns(1)

	// Enforce FKs
	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &Store{
		db:  db,
		log: slog.Default(),
		dsn: dsn,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Users() store.Users               { return &usersRepo{db: s.db} }
func (s *Store) Sessions() store.Sessions         { return &sessionsRepo{db: s.db, log: s.log} }
func (s *Store) Projects() store.Projects         { return &projectsRepo{db: s.db} }
func (s *Store) Leaderboards() store.Leaderboards { return &leaderboardsRepo{db: s.db} }

// timeLayout is the stored form for timestamps: UTC RFC 3339 with a
// fixed-width fractional part, so TEXT ordering matches chronological
// ordering (RFC3339Nano trims trailing zeros and does not sort).
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func wireTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
