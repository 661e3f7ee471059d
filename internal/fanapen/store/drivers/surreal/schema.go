package surreal

import "context"

// schemaStatements keep the tables schemaless (rows carry their own shape)
// but pin down the two invariants reads alone cannot enforce: usernames are
// globally unique, slugs are unique per owning user.
var schemaStatements = []string{
	"DEFINE TABLE OVERWRITE user SCHEMALESS",
	"DEFINE INDEX OVERWRITE user_username ON user FIELDS username UNIQUE",
	"DEFINE TABLE OVERWRITE session SCHEMALESS",
	"DEFINE TABLE OVERWRITE project SCHEMALESS",
	"DEFINE INDEX OVERWRITE project_owner_slug ON project FIELDS userId, slug UNIQUE",
}

// InitSchema applies the schema definitions. Idempotent; run once at startup.
func (s *Store) InitSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if err := s.exec(ctx, stmt, nil); err != nil {
			return err
		}
	}
	return nil
}
