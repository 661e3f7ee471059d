package surreal

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/MasFana/fanapen/internal/fanapen/store"
)

// envelope is the status-tagged wrapper some engine responses use. Status is
// a pointer so "field absent" is distinguishable from an empty status.
type envelope struct {
	Status *string         `json:"status"`
	Detail string          `json:"detail"`
	Result json.RawMessage `json:"result"`
}

var nullLiteral = []byte("null")

// queryMany ensures the connection, issues the statement and narrows the
// engine's response to rows decoded as T. A single statement yields exactly
// one batch; extra batches are ignored.
//
// Transport errors that are not already a store.QueryError are rewrapped into
// one with the original message attached, so callers see one error type for
// "the engine failed".
func queryMany[T any](ctx context.Context, s *Store, statement string, vars map[string]any) ([]T, error) {
	if err := s.ensureConnected(ctx); err != nil {
		return nil, err
	}

	batches, err := s.conn.Query(ctx, statement, vars)
	if err != nil {
		var qe *store.QueryError
		if errors.As(err, &qe) {
			return nil, err
		}
		return nil, &store.QueryError{Detail: err.Error(), Cause: err}
	}
	if len(batches) == 0 {
		return nil, nil
	}

	rows, err := normalizeBatch(batches[0])
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(rows))
	for _, raw := range rows {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, &store.QueryError{Detail: fmt.Sprintf("decoding row: %v", err), Cause: err}
		}
		out = append(out, v)
	}
	return out, nil
}

// queryOne is queryMany narrowed to the first row, or nil when there is none.
func queryOne[T any](ctx context.Context, s *Store, statement string, vars map[string]any) (*T, error) {
	rows, err := queryMany[T](ctx, s, statement, vars)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return &rows[0], nil
}

// normalizeBatch narrows one per-statement batch to a flat row list. A batch
// is either a plain array of rows or a status/result envelope; anything else
// is a protocol violation reported as a QueryError carrying the raw payload.
func normalizeBatch(batch json.RawMessage) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(batch)
	if len(trimmed) == 0 || bytes.Equal(trimmed, nullLiteral) {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var rows []json.RawMessage
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return nil, &store.QueryError{Detail: fmt.Sprintf("malformed batch: %v", err), Cause: err}
		}
		return rows, nil
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil || env.Status == nil {
		return nil, &store.QueryError{Detail: string(trimmed)}
	}

	if *env.Status != "OK" {
		detail := env.Detail
		if detail == "" {
			// The engine gave no detail; dump the whole envelope instead.
			detail = string(trimmed)
		}
		return nil, &store.QueryError{Detail: detail}
	}

	return unwrapResult(env.Result)
}

// unwrapResult flattens an envelope's result: arrays pass through, null and
// absent become empty, a bare value becomes a one-row sequence.
func unwrapResult(result json.RawMessage) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(result)
	if len(trimmed) == 0 || bytes.Equal(trimmed, nullLiteral) {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var rows []json.RawMessage
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return nil, &store.QueryError{Detail: fmt.Sprintf("malformed result: %v", err), Cause: err}
		}
		return rows, nil
	}

	return []json.RawMessage{trimmed}, nil
}
