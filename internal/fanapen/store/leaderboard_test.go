package store_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MasFana/fanapen/internal/fanapen/store"
)

func TestSumViews(t *testing.T) {
	rows := []store.ProjectViews{
		{UserID: "user:a", Views: 20},
		{UserID: "user:b", Views: 30},
		{UserID: "user:a", Views: 30},
		{UserID: "user:c", Views: 10},
	}

	t.Run("sums per user and ranks descending", func(t *testing.T) {
		ranked := store.SumViews(rows, 10)
		require.Equal(t, []store.UserTotal{
			{UserID: "user:a", Views: 50},
			{UserID: "user:b", Views: 30},
			{UserID: "user:c", Views: 10},
		}, ranked)
	})

	t.Run("truncates to limit", func(t *testing.T) {
		ranked := store.SumViews(rows, 2)
		require.Len(t, ranked, 2)
		require.Equal(t, "user:a", ranked[0].UserID)
		require.Equal(t, "user:b", ranked[1].UserID)
	})

	t.Run("ties break by user id for determinism", func(t *testing.T) {
		ranked := store.SumViews([]store.ProjectViews{
			{UserID: "user:z", Views: 5},
			{UserID: "user:a", Views: 5},
		}, 10)
		require.Equal(t, "user:a", ranked[0].UserID)
		require.Equal(t, "user:z", ranked[1].UserID)
	})

	t.Run("non-positive limit yields nothing", func(t *testing.T) {
		require.Empty(t, store.SumViews(rows, 0))
		require.Empty(t, store.SumViews(rows, -1))
	})

	t.Run("empty input yields nothing", func(t *testing.T) {
		require.Empty(t, store.SumViews(nil, 5))
	})
}
