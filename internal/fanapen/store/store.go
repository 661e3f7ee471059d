package store

import (
	"context"

	"github.com/MasFana/fanapen/internal/fanapen/domain"
)

// Store is the root data access contract. Concrete drivers (surreal, sqlite)
// implement this; nothing outside the store packages may issue raw queries.
// It exposes sub-repositories to keep concerns tidy and testable.
//
// Lookups report "no such record" as a nil pointer with a nil error. Errors
// are reserved for engine or transport failure, so callers can always tell
// "absent" apart from "query failed".
type Store interface {
	Users() Users
	Sessions() Sessions
	Projects() Projects
	Leaderboards() Leaderboards

	// InitSchema applies the driver's schema (tables, unique indexes,
	// migrations). Idempotent; run it once at startup.
	InitSchema(ctx context.Context) error

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any underlying resources.
	Close() error
}

type Users interface {
	// Create inserts a new user with the current timestamp. The password
	// hash is stored as an opaque string; hashing is the caller's concern.
	Create(ctx context.Context, username, passwordHash string) (domain.User, error)

	// GetByID returns the user or nil.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByUsername is used during login. Usernames match case-sensitively
	// as stored.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

type Sessions interface {
	// Create starts a session for the user expiring domain.SessionTTL from now.
	Create(ctx context.Context, userID string) (domain.UserSession, error)

	// Get returns the session or nil. A session read after its expiry is
	// deleted as a side effect and reported as nil (lazy expiry).
	Get(ctx context.Context, id string) (*domain.UserSession, error)

	// Delete is idempotent; deleting an absent session is not an error.
	Delete(ctx context.Context, id string) error
}

type Projects interface {
	// Create inserts a project with a slug derived from the name, retrying
	// with -1, -2, ... suffixes until the slug is free for that user.
	// Missing file fields get the default template; IsDeployed starts false
	// and Views at zero.
	Create(ctx context.Context, data domain.ProjectCreate) (domain.Project, error)

	// Get returns the project or nil.
	Get(ctx context.Context, id string) (*domain.Project, error)

	// ListByUser returns the user's projects, most recently updated first.
	ListByUser(ctx context.Context, userID string) ([]domain.Project, error)

	// GetBySlug looks a project up within one user's slug namespace.
	GetBySlug(ctx context.Context, userID, slug string) (*domain.Project, error)

	// GetDeployed resolves username then slug and only returns deployed
	// projects. An unknown username yields nil, not an error.
	GetDeployed(ctx context.Context, username, slug string) (*domain.Project, error)

	// IncrementViews bumps the view counter atomically at the storage layer.
	IncrementViews(ctx context.Context, id string) error

	// Update merges the patch over the existing record, refreshes UpdatedAt
	// and persists the whole record. Nil if the project does not exist or
	// the write returned no row; callers must check.
	Update(ctx context.Context, id string, patch domain.ProjectPatch) (*domain.Project, error)

	// Delete reports whether a record was actually removed.
	Delete(ctx context.Context, id string) (bool, error)
}

type Leaderboards interface {
	// TopProjects returns deployed projects ordered by views descending,
	// bounded to limit.
	TopProjects(ctx context.Context, limit int) ([]domain.Project, error)

	// TopUsers ranks users by the summed views of their deployed projects.
	// The reduction happens in memory, not in the query engine; entries
	// whose user cannot be resolved are dropped silently.
	TopUsers(ctx context.Context, limit int) ([]domain.UserViews, error)
}
