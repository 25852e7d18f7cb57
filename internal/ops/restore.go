package ops

import (
	"context"
	"log/slog"

	"github.com/museboxapp/musebox/internal/backup"
	"github.com/museboxapp/musebox/internal/config"
	"github.com/museboxapp/musebox/internal/errors"
	"github.com/museboxapp/musebox/internal/reconcile"
	"github.com/museboxapp/musebox/internal/store"
)

// RestoreBackupInput contains parameters for the RestoreBackup operation.
// Exactly one of Path and Data must be set.
type RestoreBackupInput struct {
	Path   string       // backup file to read
	Data   []byte       // raw backup bytes
	Logger *slog.Logger // optional trace
}

// RestoreBackupOutput contains the result of the RestoreBackup operation.
type RestoreBackupOutput struct {
	DeletedNotes  int                        `json:"deleted_notes"`
	DeletedThemes int                        `json:"deleted_themes"`
	Report        *reconcile.ImportReport    `json:"report"`
	Integrity     *reconcile.IntegrityReport `json:"integrity"`
	ThemeErrors   []backup.RecordError       `json:"theme_errors,omitempty"`
}

// RestoreBackup replaces the store's contents with the backup: every
// existing note and theme is deleted, then the backup imports into the
// now-empty store. With nothing local to reconcile against, every theme
// in the backup is recreated as written (identity mapping only).
//
// The backup is validated before anything is deleted; an unreadable
// file never wipes the store. There is no undo once deletion starts.
func RestoreBackup(ctx context.Context, st *store.Store, cfg *config.Config, input RestoreBackupInput) (*RestoreBackupOutput, error) {
	raw, err := readBackupInput(input.Path, input.Data, cfg)
	if err != nil {
		return nil, err
	}

	doc, result, err := backup.Parse(raw, backup.ParseOptions{
		BatchTolerant:   true,
		MaxContentChars: cfg.NoteMaxChars,
	})
	if err != nil {
		return nil, err
	}

	// Last point of no return.
	select {
	case <-ctx.Done():
		return nil, errors.NewCancelled("restore")
	default:
	}

	deletedNotes, err := st.CountNotes(ctx)
	if err != nil {
		return nil, err
	}
	themes, err := st.ListThemes(ctx)
	if err != nil {
		return nil, err
	}
	deletedThemes := len(themes)

	if err := st.DeleteAllNotes(ctx); err != nil {
		return nil, err
	}
	if err := st.DeleteAllThemes(ctx); err != nil {
		return nil, err
	}

	// The store is empty now, so the plan degenerates to creations and
	// identity mappings; no smart matching can occur.
	plan := reconcile.BuildPlan(doc, nil, input.Logger)

	report, err := reconcile.Execute(ctx, plan, doc, result.InvalidNoteReasons(), st, st)
	if err != nil {
		return nil, err
	}

	integrity, err := reconcile.Verify(ctx, st, st)
	if err != nil {
		return nil, err
	}

	return &RestoreBackupOutput{
		DeletedNotes:  deletedNotes,
		DeletedThemes: deletedThemes,
		Report:        report,
		Integrity:     integrity,
		ThemeErrors:   result.ThemeErrors,
	}, nil
}
