package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/museboxapp/musebox/internal/errors"
	"github.com/museboxapp/musebox/internal/note"
)

// InsertNote stores a new note and bumps the owning theme's cached counter
// in the same transaction. An empty ID or CreatedAt is assigned here.
func (s *Store) InsertNote(ctx context.Context, n *note.Note) error {
	if n.ID == "" {
		n.ID = NewID()
	}
	if n.CreatedAt == 0 {
		n.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewStoreFailure("insert note", err)
	}
	defer tx.Rollback() //nolint:errcheck

	query := `
		INSERT INTO notes (id, content, theme_name, word_count, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	if _, err := tx.ExecContext(ctx, query,
		n.ID, n.Content, n.ThemeName, n.WordCount, n.CreatedAt,
	); err != nil {
		return errors.NewStoreFailure("insert note", err)
	}

	if err := bumpThemeCount(ctx, tx, n.ThemeName, 1); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.NewStoreFailure("insert note", err)
	}

	return nil
}

// GetNote retrieves a note by its ULID.
func (s *Store) GetNote(ctx context.Context, id string) (*note.Note, error) {
	query := `
		SELECT id, content, theme_name, word_count, created_at
		FROM notes
		WHERE id = ?
	`

	var n note.Note
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&n.ID, &n.Content, &n.ThemeName, &n.WordCount, &n.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound("note", id)
	}
	if err != nil {
		return nil, errors.NewStoreFailure("get note", err)
	}

	return &n, nil
}

// DeleteNote removes a note and decrements the owning theme's cached counter.
func (s *Store) DeleteNote(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewStoreFailure("delete note", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var themeName string
	err = tx.QueryRowContext(ctx, `SELECT theme_name FROM notes WHERE id = ?`, id).Scan(&themeName)
	if err == sql.ErrNoRows {
		return errors.NewNotFound("note", id)
	}
	if err != nil {
		return errors.NewStoreFailure("delete note", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id); err != nil {
		return errors.NewStoreFailure("delete note", err)
	}

	if err := bumpThemeCount(ctx, tx, themeName, -1); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.NewStoreFailure("delete note", err)
	}

	return nil
}

// ListAllNotes returns every note, oldest first. Used by export and the
// integrity check.
func (s *Store) ListAllNotes(ctx context.Context) ([]note.Note, error) {
	query := `
		SELECT id, content, theme_name, word_count, created_at
		FROM notes
		ORDER BY created_at ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.NewStoreFailure("list notes", err)
	}
	defer rows.Close()

	return scanNotes(rows)
}

// ListNotes returns a page of notes, newest first. An empty theme matches
// all notes.
func (s *Store) ListNotes(ctx context.Context, theme string, limit, offset int) ([]note.Note, int, error) {
	where := ""
	args := []any{}
	if theme != "" {
		where = "WHERE theme_name = ?"
		args = append(args, theme)
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM notes " + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, errors.NewStoreFailure("count notes", err)
	}

	query := `
		SELECT id, content, theme_name, word_count, created_at
		FROM notes ` + where + `
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`
	args = append(args, limit, offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, errors.NewStoreFailure("list notes", err)
	}
	defer rows.Close()

	notes, err := scanNotes(rows)
	if err != nil {
		return nil, 0, err
	}
	return notes, total, nil
}

// SearchNotes returns a page of notes whose content contains the query
// substring, newest first, along with the total match count.
func (s *Store) SearchNotes(ctx context.Context, query string, limit, offset int) ([]note.Note, int, error) {
	pattern := "%" + escapeLike(query) + "%"

	var total int
	countQuery := `SELECT COUNT(*) FROM notes WHERE content LIKE ? ESCAPE '\'`
	if err := s.db.QueryRowContext(ctx, countQuery, pattern).Scan(&total); err != nil {
		return nil, 0, errors.NewStoreFailure("search notes", err)
	}

	pageQuery := `
		SELECT id, content, theme_name, word_count, created_at
		FROM notes
		WHERE content LIKE ? ESCAPE '\'
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`
	rows, err := s.db.QueryContext(ctx, pageQuery, pattern, limit, offset)
	if err != nil {
		return nil, 0, errors.NewStoreFailure("search notes", err)
	}
	defer rows.Close()

	notes, err := scanNotes(rows)
	if err != nil {
		return nil, 0, err
	}
	return notes, total, nil
}

// CountNotes returns the total number of notes.
func (s *Store) CountNotes(ctx context.Context) (int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notes`).Scan(&total); err != nil {
		return 0, errors.NewStoreFailure("count notes", err)
	}
	return total, nil
}

// CountNotesByTheme returns the actual per-theme note counts, bypassing the
// cached note_count column.
func (s *Store) CountNotesByTheme(ctx context.Context) (map[string]int, error) {
	query := `SELECT theme_name, COUNT(*) FROM notes GROUP BY theme_name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.NewStoreFailure("count notes by theme", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var name string
		var count int
		if err := rows.Scan(&name, &count); err != nil {
			return nil, errors.NewStoreFailure("scan note count", err)
		}
		counts[name] = count
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStoreFailure("count notes by theme", err)
	}

	return counts, nil
}

// DeleteAllNotes removes every note and zeroes the cached counters.
// Used by restore.
func (s *Store) DeleteAllNotes(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewStoreFailure("delete all notes", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM notes`); err != nil {
		return errors.NewStoreFailure("delete all notes", err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE themes SET note_count = 0`); err != nil {
		return errors.NewStoreFailure("delete all notes", err)
	}

	if err := tx.Commit(); err != nil {
		return errors.NewStoreFailure("delete all notes", err)
	}

	return nil
}

// bumpThemeCount adjusts a theme's cached note_count. The counter is
// advisory; a missing theme row is not an error here.
func bumpThemeCount(ctx context.Context, tx *sql.Tx, name string, delta int) error {
	query := `UPDATE themes SET note_count = MAX(note_count + ?, 0) WHERE name = ?`
	if _, err := tx.ExecContext(ctx, query, delta, name); err != nil {
		return errors.NewStoreFailure("update theme count", err)
	}
	return nil
}

// scanNotes scans all rows into notes.
func scanNotes(rows *sql.Rows) ([]note.Note, error) {
	notes := make([]note.Note, 0)
	for rows.Next() {
		var n note.Note
		if err := rows.Scan(&n.ID, &n.Content, &n.ThemeName, &n.WordCount, &n.CreatedAt); err != nil {
			return nil, errors.NewStoreFailure("scan note", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStoreFailure("list notes", err)
	}
	return notes, nil
}

// escapeLike escapes LIKE wildcards in a user query so it matches literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
