package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MasFana/fanapen/internal/fanapen/domain"
	"github.com/MasFana/fanapen/pkg/idx"
	"github.com/MasFana/fanapen/pkg/slugx"
)

type projectsRepo struct {
	db *sql.DB
}

const projectColumns = `id, user_id, name, slug, html, css, js, is_deployed, views, created_at, updated_at`

func (r *projectsRepo) Create(ctx context.Context, create domain.ProjectCreate) (domain.Project, error) {
	slug, err := r.freeSlug(ctx, create.UserID, slugx.Make(create.Name))
	if err != nil {
		return domain.Project{}, err
	}

	now := time.Now().UTC()
	project := domain.Project{
		ID:        idx.New().String(),
		UserID:    create.UserID,
		Name:      create.Name,
		Slug:      slug,
		Files:     create.Files.Resolve(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO projects (`+projectColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		project.ID, project.UserID, project.Name, project.Slug,
		project.Files.HTML, project.Files.CSS, project.Files.JS,
		project.IsDeployed, project.Views,
		wireTime(project.CreatedAt), wireTime(project.UpdatedAt),
	)
	if err != nil {
		return domain.Project{}, fmt.Errorf("create project: %w", err)
	}
	return project, nil
}

// freeSlug walks base, base-1, base-2... until a slug is unused by this user.
func (r *projectsRepo) freeSlug(ctx context.Context, userID, base string) (string, error) {
	candidate := base
	for n := 1; ; n++ {
		existing, err := r.GetBySlug(ctx, userID, candidate)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return candidate, nil
		}
		candidate = slugx.WithSuffix(base, n)
	}
}

func (r *projectsRepo) Get(ctx context.Context, id string) (*domain.Project, error) {
	return scanProject(r.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = ?`, id))
}

func (r *projectsRepo) ListByUser(ctx context.Context, userID string) ([]domain.Project, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE user_id = ? ORDER BY updated_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProjects(rows)
}

func (r *projectsRepo) GetBySlug(ctx context.Context, userID, slug string) (*domain.Project, error) {
	return scanProject(r.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE user_id = ? AND slug = ?`, userID, slug))
}

func (r *projectsRepo) GetDeployed(ctx context.Context, username, slug string) (*domain.Project, error) {
	return scanProject(r.db.QueryRowContext(ctx,
		`SELECT p.id, p.user_id, p.name, p.slug, p.html, p.css, p.js, p.is_deployed, p.views, p.created_at, p.updated_at
		 FROM projects p JOIN users u ON u.id = p.user_id
		 WHERE u.username = ? AND p.slug = ? AND p.is_deployed = 1`, username, slug))
}

func (r *projectsRepo) IncrementViews(ctx context.Context, id string) error {
	// The increment runs inside the engine so concurrent viewers never lose
	// a count to read-modify-write races.
	_, err := r.db.ExecContext(ctx, `UPDATE projects SET views = views + 1 WHERE id = ?`, id)
	return err
}

func (r *projectsRepo) Update(ctx context.Context, id string, patch domain.ProjectPatch) (*domain.Project, error) {
	existing, err := r.Get(ctx, id)
	if err != nil || existing == nil {
		return nil, err
	}

	updated := patch.Apply(*existing)
	updated.UpdatedAt = time.Now().UTC()

	_, err = r.db.ExecContext(ctx,
		`UPDATE projects SET name = ?, slug = ?, html = ?, css = ?, js = ?, is_deployed = ?, updated_at = ? WHERE id = ?`,
		updated.Name, updated.Slug,
		updated.Files.HTML, updated.Files.CSS, updated.Files.JS,
		updated.IsDeployed, wireTime(updated.UpdatedAt), id,
	)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *projectsRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func scanProject(row *sql.Row) (*domain.Project, error) {
	var p domain.Project
	var createdAt, updatedAt string
	err := row.Scan(
		&p.ID, &p.UserID, &p.Name, &p.Slug,
		&p.Files.HTML, &p.Files.CSS, &p.Files.JS,
		&p.IsDeployed, &p.Views, &createdAt, &updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.CreatedAt = parseTime(createdAt)
	p.UpdatedAt = parseTime(updatedAt)
	return &p, nil
}

func collectProjects(rows *sql.Rows) ([]domain.Project, error) {
	var out []domain.Project
	for rows.Next() {
		var p domain.Project
		var createdAt, updatedAt string
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.Name, &p.Slug,
			&p.Files.HTML, &p.Files.CSS, &p.Files.JS,
			&p.IsDeployed, &p.Views, &createdAt, &updatedAt,
		); err != nil {
			return nil, err
		}
		p.CreatedAt = parseTime(createdAt)
		p.UpdatedAt = parseTime(updatedAt)
		out = append(out, p)
	}
	return out, rows.Err()
}
