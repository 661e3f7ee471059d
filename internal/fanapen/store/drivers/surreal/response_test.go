package surreal

import (
	"context"
	"errors"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/MasFana/fanapen/internal/fanapen/store"
)

func TestNormalizeBatch(t *testing.T) {
	t.Parallel()

	rowsOf := func(t *testing.T, raw string) []json.RawMessage {
		t.Helper()
		rows, err := normalizeBatch(json.RawMessage(raw))
		require.NoError(t, err)
		return rows
	}

	t.Run("plain array passes through verbatim", func(t *testing.T) {
		rows := rowsOf(t, `[{"a":1},{"a":2}]`)
		require.Len(t, rows, 2)
		require.JSONEq(t, `{"a":1}`, string(rows[0]))
	})

	t.Run("absent batch is empty", func(t *testing.T) {
		require.Empty(t, rowsOf(t, `null`))
		require.Empty(t, rowsOf(t, ``))
	})

	t.Run("OK envelope with array result", func(t *testing.T) {
		rows := rowsOf(t, `{"status":"OK","result":[{"a":1}]}`)
		require.Len(t, rows, 1)
	})

	t.Run("OK envelope with single value wraps into one row", func(t *testing.T) {
		rows := rowsOf(t, `{"status":"OK","result":{"a":1}}`)
		require.Len(t, rows, 1)
		require.JSONEq(t, `{"a":1}`, string(rows[0]))
	})

	t.Run("OK envelope with null result is empty", func(t *testing.T) {
		require.Empty(t, rowsOf(t, `{"status":"OK","result":null}`))
		require.Empty(t, rowsOf(t, `{"status":"OK"}`))
	})

	t.Run("error status carries the engine detail", func(t *testing.T) {
		_, err := normalizeBatch(json.RawMessage(`{"status":"ERR","detail":"Index violation"}`))

		var qe *store.QueryError
		require.ErrorAs(t, err, &qe)
		require.Equal(t, "Index violation", qe.Detail)
	})

	t.Run("error status without detail dumps the envelope", func(t *testing.T) {
		_, err := normalizeBatch(json.RawMessage(`{"status":"ERR","result":"boom"}`))

		var qe *store.QueryError
		require.ErrorAs(t, err, &qe)
		require.Contains(t, qe.Detail, `"status":"ERR"`)
	})

	t.Run("object without status field is a protocol violation", func(t *testing.T) {
		_, err := normalizeBatch(json.RawMessage(`{"unexpected":true}`))

		var qe *store.QueryError
		require.ErrorAs(t, err, &qe)
		require.Contains(t, qe.Detail, "unexpected")
	})

	t.Run("scalar batch is a protocol violation", func(t *testing.T) {
		_, err := normalizeBatch(json.RawMessage(`42`))

		var qe *store.QueryError
		require.ErrorAs(t, err, &qe)
	})
}

func TestQueryManyWrapsTransportErrors(t *testing.T) {
	cause := errors.New("connection reset by peer")
	conn := &fakeConn{
		respond: func(string, map[string]any) ([]json.RawMessage, error) {
			return nil, cause
		},
	}
	s := newTestStore(t, conn)

	_, err := queryMany[ignored](context.Background(), s, "SELECT * FROM user", nil)

	var qe *store.QueryError
	require.ErrorAs(t, err, &qe)
	require.Equal(t, cause.Error(), qe.Detail)
	require.ErrorIs(t, err, cause)
}

func TestQueryManyKeepsQueryErrors(t *testing.T) {
	original := &store.QueryError{Detail: "already wrapped"}
	conn := &fakeConn{
		respond: func(string, map[string]any) ([]json.RawMessage, error) {
			return nil, original
		},
	}
	s := newTestStore(t, conn)

	_, err := queryMany[ignored](context.Background(), s, "SELECT * FROM user", nil)

	// Not double-wrapped: the original error surfaces as-is.
	var qe *store.QueryError
	require.ErrorAs(t, err, &qe)
	require.Same(t, original, qe)
}

func TestQueryManyEmptyResponse(t *testing.T) {
	conn := &fakeConn{
		respond: func(string, map[string]any) ([]json.RawMessage, error) {
			return nil, nil
		},
	}
	s := newTestStore(t, conn)

	rows, err := queryMany[ignored](context.Background(), s, "SELECT * FROM user", nil)
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestQueryOne(t *testing.T) {
	t.Run("first row", func(t *testing.T) {
		conn := &fakeConn{
			respond: func(string, map[string]any) ([]json.RawMessage, error) {
				return okBatch(`[{"username":"ana"},{"username":"ben"}]`), nil
			},
		}
		s := newTestStore(t, conn)

		rec, err := queryOne[userRecord](context.Background(), s, "SELECT * FROM user", nil)
		require.NoError(t, err)
		require.NotNil(t, rec)
		require.Equal(t, "ana", rec.Username)
	})

	t.Run("no rows is nil, not an error", func(t *testing.T) {
		conn := &fakeConn{}
		s := newTestStore(t, conn)

		rec, err := queryOne[userRecord](context.Background(), s, "SELECT * FROM user", nil)
		require.NoError(t, err)
		require.Nil(t, rec)
	})
}
