package ops

import (
	"context"
	"io"
	"log/slog"

	"github.com/museboxapp/musebox/internal/backup"
	"github.com/museboxapp/musebox/internal/config"
	"github.com/museboxapp/musebox/internal/errors"
	"github.com/museboxapp/musebox/internal/reconcile"
	"github.com/museboxapp/musebox/internal/store"
)

// ImportBackupInput contains parameters for the ImportBackup operation.
// Exactly one of Path and Data must be set.
type ImportBackupInput struct {
	Path   string       // backup file to read
	Data   []byte       // raw backup bytes, for callers that already hold them
	Logger *slog.Logger // optional reconciliation trace
}

// ImportBackupOutput contains the result of the ImportBackup operation.
type ImportBackupOutput struct {
	Report      *reconcile.ImportReport    `json:"report"`
	Integrity   *reconcile.IntegrityReport `json:"integrity"`
	ThemeErrors []backup.RecordError       `json:"theme_errors,omitempty"`
}

// ImportBackup runs the full pipeline against the current store: parse
// and validate the backup, reconcile its theme names against the local
// vocabulary, execute the merge, then verify store integrity.
//
// Fatal validation errors (MALFORMED, UNSUPPORTED_VERSION,
// STRUCTURAL_INVALID) return before any store mutation. Per-note
// violations are folded into the report as failed notes; the rest of
// the batch imports.
func ImportBackup(ctx context.Context, st *store.Store, cfg *config.Config, input ImportBackupInput) (*ImportBackupOutput, error) {
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

	existing, err := st.ListThemeNames(ctx)
	if err != nil {
		return nil, err
	}

	plan := reconcile.BuildPlan(doc, existing, input.Logger)

	report, err := reconcile.Execute(ctx, plan, doc, result.InvalidNoteReasons(), st, st)
	if err != nil {
		return nil, err
	}

	integrity, err := reconcile.Verify(ctx, st, st)
	if err != nil {
		return nil, err
	}

	return &ImportBackupOutput{
		Report:      report,
		Integrity:   integrity,
		ThemeErrors: result.ThemeErrors,
	}, nil
}

// readBackupInput resolves the two input forms to raw bytes. A path is
// validated and opened with the same restrictions as export targets.
func readBackupInput(path string, data []byte, cfg *config.Config) ([]byte, error) {
	if len(data) > 0 {
		if path != "" {
			return nil, errors.NewInvalidRequest("specify either path or data, not both")
		}
		return data, nil
	}

	if err := ValidatePath(path, PathCheckRead, cfg); err != nil {
		return nil, err
	}

	file, err := openFileNoFollowRead(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return raw, nil
}
