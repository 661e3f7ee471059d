package domain

import "time"

// Project is a user-owned pen: three text files, a slug for shareable URLs
// and a deploy flag gating public visibility.
type Project struct {
	ID         string
	UserID     string // immutable after creation
	Name       string
	Slug       string // unique per owning user, URL-safe
	Files      ProjectFiles
	IsDeployed bool
	Views      int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type ProjectFiles struct {
	HTML string
	CSS  string
	JS   string
}

// ProjectCreate carries the fields a caller may provide at creation time.
// Nil file fields get the default template; a pointer to "" means an
// intentionally empty file.
type ProjectCreate struct {
	UserID string
	Name   string
	Files  FilesPatch
}

// ProjectPatch is a partial update. Nil means "leave unchanged", which keeps
// "field omitted" distinguishable from "field cleared".
type ProjectPatch struct {
	Name       *string
	Slug       *string
	IsDeployed *bool
	Files      FilesPatch
}

type FilesPatch struct {
	HTML *string
	CSS  *string
	JS   *string
}

// Apply merges the patch over p and returns the result. The zero patch is a
// no-op; callers bump UpdatedAt themselves since "now" is theirs to define.
func (patch ProjectPatch) Apply(p Project) Project {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Slug != nil {
		p.Slug = *patch.Slug
	}
	if patch.IsDeployed != nil {
		p.IsDeployed = *patch.IsDeployed
	}
	if patch.Files.HTML != nil {
		p.Files.HTML = *patch.Files.HTML
	}
	if patch.Files.CSS != nil {
		p.Files.CSS = *patch.Files.CSS
	}
	if patch.Files.JS != nil {
		p.Files.JS = *patch.Files.JS
	}
	return p
}

// UserViews is a leaderboard entry: a user and the summed view count of their
// deployed projects. Derived, never persisted.
type UserViews struct {
	User       User
	TotalViews int64
}
