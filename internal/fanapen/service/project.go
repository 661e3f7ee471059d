package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/MasFana/fanapen/internal/fanapen/domain"
	"github.com/MasFana/fanapen/internal/fanapen/store"
	"github.com/MasFana/fanapen/pkg/slogx"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrNotOwner        = errors.New("project belongs to another user")
)

// DefaultProjectName is used when a pen is created from the editor's blank
// "new project" action without naming it first.
const DefaultProjectName = "Untitled Project"

type ProjectService struct {
	Store store.Store
}

// Create makes a new pen for the user. An empty name falls back to the
// default; starter files fill any editors the caller left out.
func (s *ProjectService) Create(ctx context.Context, userID, name string, files domain.FilesPatch) (domain.Project, error) {
	log := slogx.FromContext(ctx)

	if name == "" {
		name = DefaultProjectName
	}

	project, err := s.Store.Projects().Create(ctx, domain.ProjectCreate{
		UserID: userID,
		Name:   name,
		Files:  files,
	})
	if err != nil {
		log.Error("failed to create project", slog.Any("error", err))
		return domain.Project{}, err
	}

	log.Info("project created",
		slog.String("project_id", project.ID),
		slog.String("slug", project.Slug),
	)
	return project, nil
}

// Get loads a project for its owner, for the editor view.
func (s *ProjectService) Get(ctx context.Context, userID, projectID string) (domain.Project, error) {
	return s.owned(ctx, userID, projectID)
}

// Save applies an editor save to an owned project.
func (s *ProjectService) Save(ctx context.Context, userID, projectID string, patch domain.ProjectPatch) (domain.Project, error) {
	log := slogx.FromContext(ctx)

	if _, err := s.owned(ctx, userID, projectID); err != nil {
		return domain.Project{}, err
	}

	updated, err := s.Store.Projects().Update(ctx, projectID, patch)
	if err != nil {
		log.Error("failed to update project", slog.Any("error", err))
		return domain.Project{}, err
	}
	if updated == nil {
		// Deleted between the ownership check and the write.
		return domain.Project{}, ErrProjectNotFound
	}
	return *updated, nil
}

// ToggleDeploy flips a project between draft and publicly viewable.
func (s *ProjectService) ToggleDeploy(ctx context.Context, userID, projectID string) (domain.Project, error) {
	project, err := s.owned(ctx, userID, projectID)
	if err != nil {
		return domain.Project{}, err
	}

	deployed := !project.IsDeployed
	return s.Save(ctx, userID, projectID, domain.ProjectPatch{IsDeployed: &deployed})
}

// Delete removes an owned project.
func (s *ProjectService) Delete(ctx context.Context, userID, projectID string) error {
	log := slogx.FromContext(ctx)

	if _, err := s.owned(ctx, userID, projectID); err != nil {
		return err
	}

	removed, err := s.Store.Projects().Delete(ctx, projectID)
	if err != nil {
		log.Error("failed to delete project", slog.Any("error", err))
		return err
	}
	if !removed {
		return ErrProjectNotFound
	}

	log.Info("project deleted", slog.String("project_id", projectID))
	return nil
}

// Dashboard lists the user's projects, most recently touched first.
func (s *ProjectService) Dashboard(ctx context.Context, userID string) ([]domain.Project, error) {
	return s.Store.Projects().ListByUser(ctx, userID)
}

// PublicPen is a deployed project as the anonymous viewer page needs it:
// the pen itself plus its author, with the view counter already including
// this visit.
type PublicPen struct {
	Project domain.Project
	Author  domain.User
}

// ViewPublic serves the public /username/slug page: it resolves the deployed
// pen and counts the visit. Draft or unknown pens are simply not found; the
// URL gives no hint whether the project exists undeployed.
func (s *ProjectService) ViewPublic(ctx context.Context, username, slug string) (PublicPen, error) {
	log := slogx.FromContext(ctx)

	project, err := s.Store.Projects().GetDeployed(ctx, username, slug)
	if err != nil {
		log.Error("failed to fetch deployed project", slog.Any("error", err))
		return PublicPen{}, err
	}
	if project == nil {
		return PublicPen{}, ErrProjectNotFound
	}

	author, err := s.Store.Users().GetByID(ctx, project.UserID)
	if err != nil {
		log.Error("failed to fetch project author", slog.Any("error", err))
		return PublicPen{}, err
	}
	if author == nil {
		return PublicPen{}, ErrProjectNotFound
	}

	if err := s.Store.Projects().IncrementViews(ctx, project.ID); err != nil {
		log.Error("failed to count view", slog.Any("error", err))
		return PublicPen{}, err
	}
	project.Views++

	return PublicPen{Project: *project, Author: *author}, nil
}

// owned fetches a project and checks it belongs to userID.
func (s *ProjectService) owned(ctx context.Context, userID, projectID string) (domain.Project, error) {
	log := slogx.FromContext(ctx)

	project, err := s.Store.Projects().Get(ctx, projectID)
	if err != nil {
		log.Error("failed to fetch project", slog.Any("error", err))
		return domain.Project{}, err
	}
	if project == nil {
		return domain.Project{}, ErrProjectNotFound
	}
	if project.UserID != userID {
		log.Warn("rejected cross-user project access",
			slog.String("project_id", projectID),
			slog.String("user_id", userID),
		)
		return domain.Project{}, ErrNotOwner
	}
	return *project, nil
}
