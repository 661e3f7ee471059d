package surreal

import (
	"context"
	"fmt"
	"time"

	"github.com/MasFana/fanapen/internal/fanapen/domain"
	"github.com/MasFana/fanapen/internal/fanapen/store"
	"github.com/MasFana/fanapen/pkg/idx"
	"github.com/MasFana/fanapen/pkg/slugx"
)

const projectTable = "project"

type projectsRepo struct {
	s *Store
}

// Create derives the slug from the name and retries with -1, -2, ... until it
// is free for this user. The read-then-write loop is not atomic: two
// concurrent creations with the same base name can race, in which case the
// unique (userId, slug) index fails the loser with a QueryError.
func (r *projectsRepo) Create(ctx context.Context, data domain.ProjectCreate) (domain.Project, error) {
	base := slugx.Make(data.Name)
	slug := base
	for n := 1; ; n++ {
		existing, err := r.GetBySlug(ctx, data.UserID, slug)
		if err != nil {
			return domain.Project{}, err
		}
		if existing == nil {
			break
		}
		r.s.log.Debug("slug taken, retrying", "user", data.UserID, "slug", slug)
		slug = slugx.WithSuffix(base, n)
	}

	files := data.Files.Resolve()
	now := time.Now()

	rec, err := queryOne[projectRecord](ctx, r.s, "CREATE type::thing($table, $id) CONTENT $data", map[string]any{
		"table": projectTable,
		"id":    idx.New().String(),
		"data": map[string]any{
			"userId": data.UserID,
			"name":   data.Name,
			"slug":   slug,
			"files": map[string]any{
				"html": files.HTML,
				"css":  files.CSS,
				"js":   files.JS,
			},
			"isDeployed": false,
			"views":      0,
			"createdAt":  wireTime(now),
			"updatedAt":  wireTime(now),
		},
	})
	if err != nil {
		return domain.Project{}, err
	}
	if rec == nil {
		return domain.Project{}, fmt.Errorf("create project: %w", store.ErrCreateFailed)
	}
	return rec.toDomain(), nil
}

func (r *projectsRepo) Get(ctx context.Context, id string) (*domain.Project, error) {
	table, key := splitRecordID(id, projectTable)
	rec, err := queryOne[projectRecord](ctx, r.s, "SELECT * FROM type::record($table, $id)", map[string]any{
		"table": table,
		"id":    key,
	})
	if err != nil || rec == nil {
		return nil, err
	}

	p := rec.toDomain()
	return &p, nil
}

func (r *projectsRepo) ListByUser(ctx context.Context, userID string) ([]domain.Project, error) {
	recs, err := queryMany[projectRecord](ctx, r.s, "SELECT * FROM project WHERE userId = $userId ORDER BY updatedAt DESC", map[string]any{
		"userId": userID,
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

func (r *projectsRepo) GetBySlug(ctx context.Context, userID, slug string) (*domain.Project, error) {
	rec, err := queryOne[projectRecord](ctx, r.s, "SELECT * FROM project WHERE userId = $userId AND slug = $slug LIMIT 1", map[string]any{
		"userId": userID,
		"slug":   slug,
	})
	if err != nil || rec == nil {
		return nil, err
	}

	p := rec.toDomain()
	return &p, nil
}

// GetDeployed resolves the username first; an unknown username is an absent
// project, not an error. Undeployed projects stay invisible here.
func (r *projectsRepo) GetDeployed(ctx context.Context, username, slug string) (*domain.Project, error) {
	user, err := r.s.Users().GetByUsername(ctx, username)
	if err != nil || user == nil {
		return nil, err
	}

	rec, err := queryOne[projectRecord](ctx, r.s, "SELECT * FROM project WHERE userId = $userId AND slug = $slug AND isDeployed = true LIMIT 1", map[string]any{
		"userId": user.ID,
		"slug":   slug,
	})
	if err != nil || rec == nil {
		return nil, err
	}

	p := rec.toDomain()
	return &p, nil
}

// IncrementViews bumps the counter in the engine itself, never
// read-modify-write in application code.
func (r *projectsRepo) IncrementViews(ctx context.Context, id string) error {
	table, key := splitRecordID(id, projectTable)
	return r.s.exec(ctx, "UPDATE type::record($table, $id) SET views += 1", map[string]any{
		"table": table,
		"id":    key,
	})
}

// Update merges the patch over the current record and writes the full merged
// record back, refreshing updatedAt and leaving createdAt untouched. Returns
// nil without error when the project does not exist or the write yields no
// row; callers decide whether that is expected.
func (r *projectsRepo) Update(ctx context.Context, id string, patch domain.ProjectPatch) (*domain.Project, error) {
	existing, err := r.Get(ctx, id)
	if err != nil || existing == nil {
		return nil, err
	}

	merged := patch.Apply(*existing)
	merged.UpdatedAt = time.Now()

	table, key := splitRecordID(id, projectTable)
	rec, err := queryOne[projectRecord](ctx, r.s, "UPDATE type::record($table, $id) CONTENT $data", map[string]any{
		"table": table,
		"id":    key,
		"data": map[string]any{
			"userId": merged.UserID,
			"name":   merged.Name,
			"slug":   merged.Slug,
			"files": map[string]any{
				"html": merged.Files.HTML,
				"css":  merged.Files.CSS,
				"js":   merged.Files.JS,
			},
			"isDeployed": merged.IsDeployed,
			"views":      merged.Views,
			"createdAt":  wireTime(merged.CreatedAt),
			"updatedAt":  wireTime(merged.UpdatedAt),
		},
	})
	if err != nil || rec == nil {
		return nil, err
	}

	p := rec.toDomain()
	return &p, nil
}

// Delete reports whether a record was actually removed; RETURN BEFORE makes
// the engine hand back what it deleted.
func (r *projectsRepo) Delete(ctx context.Context, id string) (bool, error) {
	table, key := splitRecordID(id, projectTable)
	rec, err := queryOne[projectRecord](ctx, r.s, "DELETE type::record($table, $id) RETURN BEFORE", map[string]any{
		"table": table,
		"id":    key,
	})
	if err != nil {
		return false, err
	}
	return rec != nil, nil
}
