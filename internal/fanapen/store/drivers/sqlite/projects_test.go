package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MasFana/fanapen/internal/fanapen/domain"
)

func strPtr(s string) *string { return &s }

func seedUser(t *testing.T, s *Store, username string) domain.User {
	t.Helper()
	user, err := s.Users().Create(context.Background(), username, "h")
	require.NoError(t, err)
	return user
}

func TestProjectsCreateDefaults(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, s, "ana")

	project, err := s.Projects().Create(ctx, domain.ProjectCreate{
		UserID: user.ID,
		Name:   "My First Pen!",
	})
	require.NoError(t, err)

	require.Equal(t, "my-first-pen", project.Slug)
	require.Equal(t, domain.DefaultProjectFiles(), project.Files)
	require.False(t, project.IsDeployed)
	require.EqualValues(t, 0, project.Views)

	stored, err := s.Projects().Get(ctx, project.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Equal(t, project.Files, stored.Files)
	require.Equal(t, project.CreatedAt.Unix(), stored.CreatedAt.Unix())
}

func TestProjectsSlugCollision(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, s, "ana")

	first, err := s.Projects().Create(ctx, domain.ProjectCreate{UserID: user.ID, Name: "Snake"})
	require.NoError(t, err)
	require.Equal(t, "snake", first.Slug)

	second, err := s.Projects().Create(ctx, domain.ProjectCreate{UserID: user.ID, Name: "Snake"})
	require.NoError(t, err)
	require.Equal(t, "snake-1", second.Slug)

	third, err := s.Projects().Create(ctx, domain.ProjectCreate{UserID: user.ID, Name: "snake?!"})
	require.NoError(t, err)
	require.Equal(t, "snake-2", third.Slug)
}

func TestProjectsSlugScopedPerUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	ana := seedUser(t, s, "ana")
	ben := seedUser(t, s, "ben")

	p1, err := s.Projects().Create(ctx, domain.ProjectCreate{UserID: ana.ID, Name: "Pen"})
	require.NoError(t, err)
	p2, err := s.Projects().Create(ctx, domain.ProjectCreate{UserID: ben.ID, Name: "Pen"})
	require.NoError(t, err)

	// Different owners may share a slug.
	require.Equal(t, "pen", p1.Slug)
	require.Equal(t, "pen", p2.Slug)
}

func TestProjectsUpdatePartial(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, s, "ana")

	project, err := s.Projects().Create(ctx, domain.ProjectCreate{UserID: user.ID, Name: "Pen"})
	require.NoError(t, err)

	deployed := true
	updated, err := s.Projects().Update(ctx, project.ID, domain.ProjectPatch{
		IsDeployed: &deployed,
		Files:      domain.FilesPatch{CSS: strPtr("")},
	})
	require.NoError(t, err)
	require.NotNil(t, updated)

	require.True(t, updated.IsDeployed)
	require.Equal(t, "", updated.Files.CSS)
	// Untouched fields survive the write.
	require.Equal(t, project.Name, updated.Name)
	require.Equal(t, project.Files.HTML, updated.Files.HTML)
	require.Equal(t, project.CreatedAt.Unix(), updated.CreatedAt.Unix())
	require.False(t, updated.UpdatedAt.Before(project.UpdatedAt))
}

func TestProjectsUpdateAbsent(t *testing.T) {
	s := newTestStore(t)

	updated, err := s.Projects().Update(context.Background(), "gone", domain.ProjectPatch{})
	require.NoError(t, err)
	require.Nil(t, updated)
}

func TestProjectsDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, s, "ana")

	project, err := s.Projects().Create(ctx, domain.ProjectCreate{UserID: user.ID, Name: "Pen"})
	require.NoError(t, err)

	removed, err := s.Projects().Delete(ctx, project.ID)
	require.NoError(t, err)
	require.True(t, removed)

	removed, err = s.Projects().Delete(ctx, project.ID)
	require.NoError(t, err)
	require.False(t, removed)
}

func TestProjectsIncrementViews(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, s, "ana")

	project, err := s.Projects().Create(ctx, domain.ProjectCreate{UserID: user.ID, Name: "Pen"})
	require.NoError(t, err)

	require.NoError(t, s.Projects().IncrementViews(ctx, project.ID))
	require.NoError(t, s.Projects().IncrementViews(ctx, project.ID))

	stored, err := s.Projects().Get(ctx, project.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, stored.Views)
}

func TestProjectsGetDeployed(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, s, "ana")

	project, err := s.Projects().Create(ctx, domain.ProjectCreate{UserID: user.ID, Name: "Pen"})
	require.NoError(t, err)

	// Undeployed projects are invisible on the public surface.
	got, err := s.Projects().GetDeployed(ctx, "ana", project.Slug)
	require.NoError(t, err)
	require.Nil(t, got)

	deployed := true
	_, err = s.Projects().Update(ctx, project.ID, domain.ProjectPatch{IsDeployed: &deployed})
	require.NoError(t, err)

	got, err = s.Projects().GetDeployed(ctx, "ana", project.Slug)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, project.ID, got.ID)

	got, err = s.Projects().GetDeployed(ctx, "ghost", project.Slug)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestProjectsListByUserOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, s, "ana")

	older, err := s.Projects().Create(ctx, domain.ProjectCreate{UserID: user.ID, Name: "Older"})
	require.NoError(t, err)
	newer, err := s.Projects().Create(ctx, domain.ProjectCreate{UserID: user.ID, Name: "Newer"})
	require.NoError(t, err)

	// Touching the older project bumps it to the front.
	_, err = s.Projects().Update(ctx, older.ID, domain.ProjectPatch{Name: strPtr("Touched")})
	require.NoError(t, err)

	list, err := s.Projects().ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, older.ID, list[0].ID)
	require.Equal(t, newer.ID, list[1].ID)
}
