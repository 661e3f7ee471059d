package surreal

import (
	"context"

	json "github.com/goccy/go-json"
)

// Conn is the transport to the remote query engine. The production
// implementation is HTTPConn; tests inject scripted fakes through WithConn.
//
// Query returns the engine's response as an ordered sequence of
// per-statement batches, still encoded. Interpreting a batch (raw array vs
// status envelope) is the normalizer's job, not the transport's.
type Conn interface {
	// Connect opens the transport against the given endpoint.
	Connect(ctx context.Context, url string) error

	// Use selects the namespace and database for subsequent requests.
	Use(ctx context.Context, namespace, database string) error

	// SignIn authenticates. Must be called after Use.
	SignIn(ctx context.Context, creds Credentials) error

	// Query issues a statement with bound variables.
	Query(ctx context.Context, statement string, vars map[string]any) ([]json.RawMessage, error)

	// Close releases the transport. The store may dial again afterwards.
	Close(ctx context.Context) error
}

type Credentials struct {
	Namespace string
	Database  string
	Username  string
	Password  string
}
