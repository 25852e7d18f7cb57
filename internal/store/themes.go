package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/museboxapp/musebox/internal/errors"
	"github.com/museboxapp/musebox/internal/note"
)

// CreateTheme stores a new theme. An empty ID or CreatedAt is assigned here
// so callers only provide the fields they care about.
func (s *Store) CreateTheme(ctx context.Context, t *note.Theme) error {
	if t.ID == "" {
		t.ID = NewID()
	}
	if t.CreatedAt == 0 {
		t.CreatedAt = time.Now().Unix()
	}

	query := `
		INSERT INTO themes (id, name, icon, color, note_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		t.ID, t.Name, t.Icon, t.Color, t.NoteCount, t.CreatedAt,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return errors.NewNameAlreadyExists(t.Name)
		}
		return errors.NewStoreFailure("create theme", err)
	}

	return nil
}

// ThemeExists checks if a theme with the given name exists.
func (s *Store) ThemeExists(ctx context.Context, name string) (bool, error) {
	query := `SELECT 1 FROM themes WHERE name = ? LIMIT 1`

	var exists int
	err := s.db.QueryRowContext(ctx, query, name).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, errors.NewStoreFailure("check theme", err)
	}

	return true, nil
}

// GetTheme retrieves a theme by its exact name.
func (s *Store) GetTheme(ctx context.Context, name string) (*note.Theme, error) {
	query := `
		SELECT id, name, icon, color, note_count, created_at
		FROM themes
		WHERE name = ?
	`

	var t note.Theme
	err := s.db.QueryRowContext(ctx, query, name).Scan(
		&t.ID, &t.Name, &t.Icon, &t.Color, &t.NoteCount, &t.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound("theme", name)
	}
	if err != nil {
		return nil, errors.NewStoreFailure("get theme", err)
	}

	return &t, nil
}

// ListThemes returns all themes in creation order.
func (s *Store) ListThemes(ctx context.Context) ([]note.Theme, error) {
	query := `
		SELECT id, name, icon, color, note_count, created_at
		FROM themes
		ORDER BY created_at ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.NewStoreFailure("list themes", err)
	}
	defer rows.Close()

	themes := make([]note.Theme, 0)
	for rows.Next() {
		var t note.Theme
		if err := rows.Scan(&t.ID, &t.Name, &t.Icon, &t.Color, &t.NoteCount, &t.CreatedAt); err != nil {
			return nil, errors.NewStoreFailure("scan theme", err)
		}
		themes = append(themes, t)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStoreFailure("list themes", err)
	}

	return themes, nil
}

// ListThemeNames returns theme names in creation order.
func (s *Store) ListThemeNames(ctx context.Context) ([]string, error) {
	themes, err := s.ListThemes(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names, nil
}

// DeleteAllThemes removes every theme. Used by restore.
func (s *Store) DeleteAllThemes(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM themes`); err != nil {
		return errors.NewStoreFailure("delete all themes", err)
	}
	return nil
}

// isUniqueConstraintError checks if the error is a SQLite UNIQUE constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	// SQLite returns "UNIQUE constraint failed: ..." for unique violations
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
