package surreal

import (
	"bytes"
	"fmt"
	"time"

	json "github.com/goccy/go-json"

	"github.com/MasFana/fanapen/internal/fanapen/domain"
)

// datetime coerces the engine's timestamp representations into time.Time.
// Fields arrive as RFC3339 strings (with or without fractional seconds) or
// not at all. Absent and null stay the zero time: read paths never invent a
// timestamp, only writes set them.
type datetime struct{ time.Time }

var datetimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
}

func (d *datetime) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || bytes.Equal(trimmed, nullLiteral) {
		d.Time = time.Time{}
		return nil
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return fmt.Errorf("surreal: invalid datetime %s", trimmed)
	}
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("surreal: invalid datetime %q", s)
}

// wireTime is how this driver writes timestamps.
func wireTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

type userRecord struct {
	ID           recordID `json:"id"`
	Username     string   `json:"username"`
	PasswordHash string   `json:"passwordHash"`
	CreatedAt    datetime `json:"createdAt"`
}

func (r userRecord) toDomain() domain.User {
	return domain.User{
		ID:           string(r.ID),
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt.Time,
	}
}

type sessionRecord struct {
	ID        recordID `json:"id"`
	UserID    recordID `json:"userId"`
	ExpiresAt datetime `json:"expiresAt"`
}

func (r sessionRecord) toDomain() domain.UserSession {
	return domain.UserSession{
		ID:        string(r.ID),
		UserID:    string(r.UserID),
		ExpiresAt: r.ExpiresAt.Time,
	}
}

type filesRecord struct {
	HTML string `json:"html"`
	CSS  string `json:"css"`
	JS   string `json:"js"`
}

type projectRecord struct {
	ID         recordID    `json:"id"`
	UserID     recordID    `json:"userId"`
	Name       string      `json:"name"`
	Slug       string      `json:"slug"`
	Files      filesRecord `json:"files"`
	IsDeployed bool        `json:"isDeployed"`
	Views      int64       `json:"views"`
	CreatedAt  datetime    `json:"createdAt"`
	UpdatedAt  datetime    `json:"updatedAt"`
}

func (r projectRecord) toDomain() domain.Project {
	return domain.Project{
		ID:     string(r.ID),
		UserID: string(r.UserID),
		Name:   r.Name,
		Slug:   r.Slug,
		Files: domain.ProjectFiles{
			HTML: r.Files.HTML,
			CSS:  r.Files.CSS,
			JS:   r.Files.JS,
		},
		IsDeployed: r.IsDeployed,
		Views:      r.Views,
		CreatedAt:  r.CreatedAt.Time,
		UpdatedAt:  r.UpdatedAt.Time,
	}
}

// viewsRecord is the projection the user leaderboard fetches.
type viewsRecord struct {
	UserID recordID `json:"userId"`
	Views  int64    `json:"views"`
}
