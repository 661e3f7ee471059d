package service

import (
	"context"
	"log/slog"

	"github.com/MasFana/fanapen/internal/fanapen/domain"
	"github.com/MasFana/fanapen/internal/fanapen/store"
	"github.com/MasFana/fanapen/pkg/slogx"
)

// HomepageLimit caps both leaderboard panels on the landing page.
const HomepageLimit = 10

type LeaderboardService struct {
	Store store.Store
}

// RankedPen pairs a leaderboard project with its resolved author, ready for
// the "trending pens" panel.
type RankedPen struct {
	Project domain.Project
	Author  domain.User
}

// Homepage is the landing page snapshot: the most viewed deployed pens and
// the creators with the most accumulated views.
type Homepage struct {
	TopPens  []RankedPen
	TopUsers []domain.UserViews
}

// Snapshot assembles the homepage leaderboards. Pens whose author no longer
// resolves are dropped rather than shown anonymously.
func (s *LeaderboardService) Snapshot(ctx context.Context, limit int) (Homepage, error) {
	log := slogx.FromContext(ctx)

	if limit <= 0 {
		limit = HomepageLimit
	}

	projects, err := s.Store.Leaderboards().TopProjects(ctx, limit)
	if err != nil {
		log.Error("failed to fetch top projects", slog.Any("error", err))
		return Homepage{}, err
	}

	users := s.Store.Users()
	pens := make([]RankedPen, 0, len(projects))
	for _, project := range projects {
		author, err := users.GetByID(ctx, project.UserID)
		if err != nil {
			log.Error("failed to resolve pen author", slog.Any("error", err))
			return Homepage{}, err
		}
		if author == nil {
			log.Debug("dropping trending pen with missing author", slog.String("project_id", project.ID))
			continue
		}
		pens = append(pens, RankedPen{Project: project, Author: *author})
	}

	topUsers, err := s.Store.Leaderboards().TopUsers(ctx, limit)
	if err != nil {
		log.Error("failed to fetch top users", slog.Any("error", err))
		return Homepage{}, err
	}

	return Homepage{TopPens: pens, TopUsers: topUsers}, nil
}
