package sqlite

import (
	"context"
	"database/sql"

	"github.com/MasFana/fanapen/internal/fanapen/domain"
	"github.com/MasFana/fanapen/internal/fanapen/store"
)

type leaderboardsRepo struct {
	db *sql.DB
}

func (r *leaderboardsRepo) TopProjects(ctx context.Context, limit int) ([]domain.Project, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE is_deployed = 1 ORDER BY views DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProjects(rows)
}

// TopUsers fetches the raw per-project view counts and ranks them with the
// shared reducer, so both drivers agree on ordering and tie-breaks.
func (r *leaderboardsRepo) TopUsers(ctx context.Context, limit int) ([]domain.UserViews, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `SELECT user_id, views FROM projects WHERE is_deployed = 1`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []store.ProjectViews
	for rows.Next() {
		var pv store.ProjectViews
		if err := rows.Scan(&pv.UserID, &pv.Views); err != nil {
			return nil, err
		}
		views = append(views, pv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	users := &usersRepo{db: r.db}
	totals := store.SumViews(views, limit)
	out := make([]domain.UserViews, 0, len(totals))
	for _, total := range totals {
		user, err := users.GetByID(ctx, total.UserID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			continue
		}
		out = append(out, domain.UserViews{User: *user, TotalViews: total.Views})
	}
	return out, nil
}
