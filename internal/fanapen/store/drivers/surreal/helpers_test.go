package surreal

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	json "github.com/goccy/go-json"
)

// fakeConn is a scripted transport. Tests point respond at a dispatcher
// keyed on the statement text and inspect the recorded traffic afterwards.
type fakeConn struct {
	mu           sync.Mutex
	connectErr   error
	signinErr    error
	connectDelay time.Duration
	connects     int
	statements   []string
	vars         []map[string]any
	respond      func(statement string, vars map[string]any) ([]json.RawMessage, error)
}

func (c *fakeConn) Connect(ctx context.Context, url string) error {
	c.mu.Lock()
	c.connects++
	err := c.connectErr
	delay := c.connectDelay
	c.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

func (c *fakeConn) Use(ctx context.Context, namespace, database string) error { return nil }

func (c *fakeConn) SignIn(ctx context.Context, creds Credentials) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.signinErr
}

func (c *fakeConn) Query(ctx context.Context, statement string, vars map[string]any) ([]json.RawMessage, error) {
	c.mu.Lock()
	c.statements = append(c.statements, statement)
	c.vars = append(c.vars, vars)
	respond := c.respond
	c.mu.Unlock()

	if respond != nil {
		return respond(statement, vars)
	}
	return okBatch(`[]`), nil
}

func (c *fakeConn) Close(ctx context.Context) error { return nil }

func (c *fakeConn) connectCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connects
}

func (c *fakeConn) recorded() ([]string, []map[string]any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.statements...), append([]map[string]any(nil), c.vars...)
}

// okBatch wraps a result payload in a single OK envelope, the way the engine
// answers a one-statement query.
func okBatch(resultJSON string) []json.RawMessage {
	return []json.RawMessage{json.RawMessage(`{"status":"OK","result":` + resultJSON + `}`)}
}

func errBatch(detail string) []json.RawMessage {
	return []json.RawMessage{json.RawMessage(`{"status":"ERR","detail":` + detail + `}`)}
}

func testConfig() Config {
	return Config{
		URL:       "http://surreal.test:8000",
		Namespace: "fanapen",
		Database:  "fanapen",
		Username:  "root",
		Password:  "root",
	}
}

func newTestStore(t *testing.T, conn Conn) *Store {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(testConfig(), WithConn(conn), WithLogger(logger))
}
