package ops

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/museboxapp/musebox/internal/backup"
	"github.com/museboxapp/musebox/internal/config"
	"github.com/museboxapp/musebox/internal/errors"
	"github.com/museboxapp/musebox/internal/store"
)

// ExportBackupInput contains parameters for the ExportBackup operation.
type ExportBackupInput struct {
	Path       string // optional, default: ~/.musebox/exports/musebox-<timestamp>.json
	Name       string // optional label for the default filename; ignored when Path is set
	NoFile     bool   // skip writing to disk, return the raw document only
	AppVersion string // recorded in the backup header
}

// ExportBackupOutput contains the result of the ExportBackup operation.
type ExportBackupOutput struct {
	Path       string `json:"path,omitempty"` // empty when NoFile
	Themes     int    `json:"themes"`
	Notes      int    `json:"notes"`
	ExportedAt string `json:"exported_at"`
	Raw        []byte `json:"-"` // the serialized document
}

// ExportBackup serializes the whole store into a backup document.
// Exporting then importing into an empty store round-trips theme and
// note counts; note identities and timestamps are regenerated on import.
//
// When writing to disk the document goes to a temp file first and is
// renamed into place, so a failed export never corrupts an existing
// backup file.
func ExportBackup(ctx context.Context, st *store.Store, cfg *config.Config, input ExportBackupInput) (*ExportBackupOutput, error) {
	now := time.Now().UTC()

	doc, err := buildBackupDocument(ctx, st, input.AppVersion, now)
	if err != nil {
		return nil, err
	}

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	raw = append(raw, '\n')

	output := &ExportBackupOutput{
		Themes:     len(doc.Themes),
		Notes:      len(doc.Inspirations),
		ExportedAt: doc.ExportTime,
		Raw:        raw,
	}
	if input.NoFile {
		return output, nil
	}

	// Determine export path
	exportPath := input.Path
	if exportPath == "" {
		exportPath, err = defaultExportPath(input.Name, now)
		if err != nil {
			return nil, err
		}
	}

	// Validate all paths (both user-provided and default) for safety
	if err := ValidatePath(exportPath, PathCheckWrite, cfg); err != nil {
		return nil, err
	}

	// Ensure parent directory exists
	dir := filepath.Dir(exportPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create export directory: %w", err))
	}

	// Write to temp file first, then atomic rename to preserve any
	// existing file on failure
	randBytes := make([]byte, 8)
	if _, err := rand.Read(randBytes); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to generate temp file name: %w", err))
	}
	tempPath := exportPath + "." + hex.EncodeToString(randBytes) + ".tmp"
	file, err := openFileNoFollow(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create export file: %w", err))
	}

	// Clean up temp file on failure (original file is preserved)
	success := false
	defer func() {
		if file != nil {
			file.Close()
		}
		if !success {
			os.Remove(tempPath)
		}
	}()

	if _, err := file.Write(raw); err != nil {
		return nil, errors.NewInternal(err)
	}

	if err := file.Sync(); err != nil {
		return nil, errors.NewInternal(err)
	}

	// Close before atomic replace (required on Windows; fine elsewhere).
	if err := file.Close(); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to close export file: %w", err))
	}
	file = nil

	// Check if destination is a symlink (os.Rename would follow it)
	if info, err := os.Lstat(exportPath); err == nil && info.Mode()&os.ModeSymlink != 0 {
		return nil, errors.NewInternal(fmt.Errorf("export path is a symlink"))
	}

	// Finalize by renaming the temp file into place.
	//
	// Note: on Windows, os.Rename fails if the destination exists. We
	// fail safely (preserving the existing file) instead of doing a
	// non-atomic delete+rename that could lose the original.
	if err := os.Rename(tempPath, exportPath); err != nil {
		if runtime.GOOS == "windows" {
			if _, statErr := os.Stat(exportPath); statErr == nil {
				return nil, errors.NewInvalidRequest("export destination already exists; overwriting is not supported on Windows yet (choose a new path or delete the existing file)")
			}
		}
		return nil, errors.NewInternal(fmt.Errorf("failed to finalize export: %w", err))
	}

	success = true
	output.Path = exportPath
	return output, nil
}

// buildBackupDocument snapshots the store into the wire format. Themes
// keep creation order, notes keep chronological order, and the per-theme
// counts are recounted rather than taken from the cached counters.
func buildBackupDocument(ctx context.Context, st *store.Store, appVersion string, now time.Time) (*backup.Document, error) {
	select {
	case <-ctx.Done():
		return nil, errors.NewCancelled("export")
	default:
	}

	themes, err := st.ListThemes(ctx)
	if err != nil {
		return nil, err
	}
	notes, err := st.ListAllNotes(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := st.CountNotesByTheme(ctx)
	if err != nil {
		return nil, err
	}

	if appVersion == "" {
		appVersion = "dev"
	}

	doc := &backup.Document{
		Version:           backup.SupportedVersion,
		ExportTime:        now.Format(time.RFC3339),
		AppVersion:        appVersion,
		TotalInspirations: len(notes),
		TotalThemes:       len(themes),
		Themes:            make([]backup.ThemeRecord, len(themes)),
		Inspirations:      make([]backup.NoteRecord, len(notes)),
	}

	for i, th := range themes {
		doc.Themes[i] = backup.ThemeRecord{
			Name:             th.Name,
			Icon:             th.Icon,
			Color:            th.Color,
			InspirationCount: counts[th.Name],
		}
	}

	for i, n := range notes {
		doc.Inspirations[i] = backup.NoteRecord{
			// ULIDs contain no characters that need JSON escaping.
			ID:        json.RawMessage(strconv.Quote(n.ID)),
			Content:   n.Content,
			ThemeName: n.ThemeName,
			CreatedAt: time.Unix(n.CreatedAt, 0).UTC().Format(time.RFC3339),
			WordCount: n.WordCount,
		}
	}

	return doc, nil
}

// defaultExportPath generates the default export path.
// Format: ~/.musebox/exports/musebox-<timestamp>.json, with an optional
// sanitized label between the prefix and the timestamp.
func defaultExportPath(label string, now time.Time) (string, error) {
	exportsDir, err := DefaultExportsDir()
	if err != nil {
		return "", err
	}

	timestamp := now.Format("2006-01-02T150405")
	name := "musebox"
	if label != "" {
		name = "musebox-" + SanitizeForFilename(label)
	}

	filename := fmt.Sprintf("%s-%s.json", name, timestamp)
	return filepath.Join(exportsDir, filename), nil
}
