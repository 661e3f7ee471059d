package surreal

import (
	"context"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/MasFana/fanapen/internal/fanapen/domain"
)

func TestSessionsCreate(t *testing.T) {
	before := time.Now()
	conn := &fakeConn{
		respond: func(statement string, vars map[string]any) ([]json.RawMessage, error) {
			data := vars["data"].(map[string]any)
			return okBatch(`[{
				"id": {"tb":"session","id":"` + vars["id"].(string) + `"},
				"userId": "` + data["userId"].(string) + `",
				"expiresAt": "` + data["expiresAt"].(string) + `"
			}]`), nil
		},
	}
	s := newTestStore(t, conn)

	sess, err := s.Sessions().Create(context.Background(), "user:u1")
	require.NoError(t, err)
	require.Equal(t, "user:u1", sess.UserID)

	// Expiry is a fixed seven-day policy.
	require.WithinDuration(t, before.Add(domain.SessionTTL), sess.ExpiresAt, 5*time.Second)
}

func TestSessionsGetLive(t *testing.T) {
	expires := time.Now().Add(time.Hour).UTC().Format(time.RFC3339Nano)
	conn := &fakeConn{
		respond: func(statement string, vars map[string]any) ([]json.RawMessage, error) {
			return okBatch(`[{"id":"session:s1","userId":"user:u1","expiresAt":"` + expires + `"}]`), nil
		},
	}
	s := newTestStore(t, conn)

	sess, err := s.Sessions().Get(context.Background(), "session:s1")
	require.NoError(t, err)
	require.NotNil(t, sess)
	require.Equal(t, "session:s1", sess.ID)

	statements, _ := conn.recorded()
	require.Len(t, statements, 1) // no delete issued for a live session
}

func TestSessionsGetExpiredPurges(t *testing.T) {
	expires := time.Now().Add(-time.Minute).UTC().Format(time.RFC3339Nano)
	conn := &fakeConn{
		respond: func(statement string, vars map[string]any) ([]json.RawMessage, error) {
			if strings.HasPrefix(statement, "DELETE") {
				return okBatch(`[]`), nil
			}
			return okBatch(`[{"id":"session:s1","userId":"user:u1","expiresAt":"` + expires + `"}]`), nil
		},
	}
	s := newTestStore(t, conn)

	sess, err := s.Sessions().Get(context.Background(), "session:s1")
	require.NoError(t, err)

	// Expired on read: reported absent and deleted as a side effect.
	require.Nil(t, sess)

	statements, vars := conn.recorded()
	require.Len(t, statements, 2)
	require.True(t, strings.HasPrefix(statements[1], "DELETE"))
	require.Equal(t, "session", vars[1]["table"])
	require.Equal(t, "s1", vars[1]["id"])
}

func TestSessionsGetAbsent(t *testing.T) {
	conn := &fakeConn{}
	s := newTestStore(t, conn)

	sess, err := s.Sessions().Get(context.Background(), "session:gone")
	require.NoError(t, err)
	require.Nil(t, sess)
}

func TestSessionsDeleteIdempotent(t *testing.T) {
	conn := &fakeConn{} // empty result, as for an already-absent record
	s := newTestStore(t, conn)

	require.NoError(t, s.Sessions().Delete(context.Background(), "session:gone"))
	require.NoError(t, s.Sessions().Delete(context.Background(), "session:gone"))
}
