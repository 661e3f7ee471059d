package store

import "sort"

// ProjectViews is the raw (owner, views) pair drivers fetch for the user
// leaderboard. Aggregation stays in memory on purpose: the contract never
// asks the query engine to aggregate, which keeps drivers interchangeable.
type ProjectViews struct {
	UserID string
	Views  int64
}

// UserTotal is a summed, ranked leaderboard row before user resolution.
type UserTotal struct {
	UserID string
	Views  int64
}

// SumViews reduces per-project view counts into per-user totals, sorts them
// by total descending and truncates to limit. Ties order by user id so the
// ranking is deterministic. A non-positive limit yields an empty slice.
func SumViews(rows []ProjectViews, limit int) []UserTotal {
	if limit <= 0 {
		return nil
	}

	totals := make(map[string]int64, len(rows))
	for _, row := range rows {
		totals[row.UserID] += row.Views
	}

	ranked := make([]UserTotal, 0, len(totals))
	for userID, views := range totals {
		ranked = append(ranked, UserTotal{UserID: userID, Views: views})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Views != ranked[j].Views {
			return ranked[i].Views > ranked[j].Views
		}
		return ranked[i].UserID < ranked[j].UserID
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
