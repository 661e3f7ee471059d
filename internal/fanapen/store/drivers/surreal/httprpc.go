package surreal

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"

	json "github.com/goccy/go-json"
)

// HTTPConn speaks the engine's HTTP API: GET /health to verify the endpoint
// and one-shot POST /rpc requests for everything else. The namespace and
// database selected by Use travel as headers on every request; SignIn keeps
// the returned token and sends it as a bearer credential.
//
// The connection is safe for concurrent Query use. Connect/Use/SignIn are
// serialized by the Store's dial, so the guarded fields only change while no
// queries are running.
type HTTPConn struct {
	client *http.Client
	nextID atomic.Uint64

	mu        sync.RWMutex
	baseURL   string
	namespace string
	database  string
	token     string
}

func NewHTTPConn() *HTTPConn {
	// No client timeout: this layer applies no deadline of its own, callers
	// bound requests through ctx if they want one.
	return &HTTPConn{client: &http.Client{}}
}

func (c *HTTPConn) Connect(ctx context.Context, rawURL string) error {
	base := normalizeBaseURL(rawURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned %s", resp.Status)
	}

	c.mu.Lock()
	c.baseURL = base
	c.mu.Unlock()
	return nil
}

func (c *HTTPConn) Use(ctx context.Context, namespace, database string) error {
	c.mu.Lock()
	c.namespace = namespace
	c.database = database
	c.mu.Unlock()
	return nil
}

func (c *HTTPConn) SignIn(ctx context.Context, creds Credentials) error {
	var token string
	if err := c.rpc(ctx, "signin", []any{map[string]any{
		"ns":   creds.Namespace,
		"db":   creds.Database,
		"user": creds.Username,
		"pass": creds.Password,
	}}, &token); err != nil {
		return err
	}

	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
	return nil
}

func (c *HTTPConn) Query(ctx context.Context, statement string, vars map[string]any) ([]json.RawMessage, error) {
	if vars == nil {
		vars = map[string]any{}
	}

	var batches []json.RawMessage
	if err := c.rpc(ctx, "query", []any{statement, vars}, &batches); err != nil {
		return nil, err
	}
	return batches, nil
}

func (c *HTTPConn) Close(ctx context.Context) error {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
	c.client.CloseIdleConnections()
	return nil
}

type rpcRequest struct {
	ID     uint64 `json:"id"`
	Method string `json:"method"`
	Params []any  `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

func (c *HTTPConn) rpc(ctx context.Context, method string, params []any, out any) error {
	c.mu.RLock()
	base := c.baseURL
	namespace := c.namespace
	database := c.database
	token := c.token
	c.mu.RUnlock()

	if base == "" {
		return fmt.Errorf("not connected")
	}

	payload, err := json.Marshal(rpcRequest{
		ID:     c.nextID.Add(1),
		Method: method,
		Params: params,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/rpc", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if namespace != "" {
		req.Header.Set("Surreal-NS", namespace)
	}
	if database != "" {
		req.Header.Set("Surreal-DB", database)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var decoded rpcResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return fmt.Errorf("%s returned %s: %s", method, resp.Status, snippet(body))
	}
	if decoded.Error != nil {
		return fmt.Errorf("%s failed: %s (code %d)", method, decoded.Error.Message, decoded.Error.Code)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%s returned %s: %s", method, resp.Status, snippet(body))
	}

	if out != nil && len(decoded.Result) > 0 {
		if err := json.Unmarshal(decoded.Result, out); err != nil {
			return fmt.Errorf("%s: decoding result: %w", method, err)
		}
	}
	return nil
}

// snippet bounds response bodies quoted in error messages.
func snippet(body []byte) string {
	const max = 256
	s := strings.TrimSpace(string(body))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}

// normalizeBaseURL accepts the websocket form of the endpoint too; the
// driver always talks HTTP.
func normalizeBaseURL(rawURL string) string {
	url := strings.TrimRight(rawURL, "/")
	switch {
	case strings.HasPrefix(url, "ws://"):
		url = "http://" + strings.TrimPrefix(url, "ws://")
	case strings.HasPrefix(url, "wss://"):
		url = "https://" + strings.TrimPrefix(url, "wss://")
	}
	return strings.TrimSuffix(url, "/rpc")
}
