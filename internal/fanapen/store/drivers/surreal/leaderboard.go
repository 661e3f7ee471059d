package surreal

import (
	"context"

	"github.com/MasFana/fanapen/internal/fanapen/domain"
	"github.com/MasFana/fanapen/internal/fanapen/store"
)

type leaderboardsRepo struct {
	s *Store
}

func (r *leaderboardsRepo) TopProjects(ctx context.Context, limit int) ([]domain.Project, error) {
	if limit <= 0 {
		return nil, nil
	}

	recs, err := queryMany[projectRecord](ctx, r.s, "SELECT * FROM project WHERE isDeployed = true ORDER BY views DESC LIMIT $limit", map[string]any{
		"limit": limit,
	})
	if err != nil {
		return nil, err
	}

	projects := make([]domain.Project, 0, len(recs))
	for _, rec := range recs {
		projects = append(projects, rec.toDomain())
	}
	return projects, nil
}

// TopUsers fetches every deployed project's (owner, views) pair and reduces
// them in memory; the engine is deliberately not asked to aggregate so the
// contract stays portable across drivers. Ranked entries whose user no
// longer resolves are dropped silently: a consistency anomaly, not an error.
func (r *leaderboardsRepo) TopUsers(ctx context.Context, limit int) ([]domain.UserViews, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := queryMany[viewsRecord](ctx, r.s, "SELECT userId, views FROM project WHERE isDeployed = true", nil)
	if err != nil {
		return nil, err
	}

	pairs := make([]store.ProjectViews, 0, len(rows))
	for _, row := range rows {
		pairs = append(pairs, store.ProjectViews{UserID: string(row.UserID), Views: row.Views})
	}

	users := r.s.Users()
	ranked := store.SumViews(pairs, limit)
	out := make([]domain.UserViews, 0, len(ranked))
	for _, total := range ranked {
		user, err := users.GetByID(ctx, total.UserID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			r.s.log.Debug("dropping leaderboard entry for missing user", "user", total.UserID)
			continue
		}
		out = append(out, domain.UserViews{User: *user, TotalViews: total.Views})
	}
	return out, nil
}
