package web

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/museboxapp/musebox/internal/config"
	"github.com/museboxapp/musebox/internal/errors"
	"github.com/museboxapp/musebox/internal/ops"
	"github.com/museboxapp/musebox/internal/store"
)

// maxUploadBytes caps the size of an uploaded backup file.
const maxUploadBytes = 10 << 20

// Handlers contains HTTP route handlers for the web UI.
type Handlers struct {
	st       *store.Store
	cfg      *config.Config
	renderer *Renderer
}

// HandleNotes handles GET /notes: list notes, optionally filtered by theme.
func (h *Handlers) HandleNotes(w http.ResponseWriter, r *http.Request) {
	theme := r.URL.Query().Get("theme")

	themes, err := ops.ListThemes(r.Context(), h.st)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	result, err := ops.ListNotes(r.Context(), h.st, ops.ListNotesInput{
		Theme:  theme,
		Limit:  parseIntParam(r, "limit", 20),
		Offset: parseIntParam(r, "offset", 0),
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, r, "notes", NotesPageData{
		PageData: PageData{
			Title:   "Notes",
			Version: h.renderer.version,
			Nav:     "notes",
		},
		Items:      result.Items,
		Themes:     themes.Items,
		Pagination: result.Pagination,
		Theme:      theme,
	})
}

// HandleSearch handles GET /notes/search: substring search over note content.
func (h *Handlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	data := SearchPageData{
		PageData: PageData{
			Title:   "Search",
			Version: h.renderer.version,
			Nav:     "search",
		},
		Query:    query,
		HasQuery: strings.TrimSpace(query) != "",
	}

	if !data.HasQuery {
		h.renderer.renderPage(w, r, "search", data)
		return
	}

	result, err := ops.SearchNotes(r.Context(), h.st, ops.SearchNotesInput{
		Query:  query,
		Limit:  parseIntParam(r, "limit", 20),
		Offset: parseIntParam(r, "offset", 0),
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	data.Items = result.Items
	data.Pagination = result.Pagination

	h.renderer.renderPage(w, r, "search", data)
}

// HandleNoteDetail handles GET /notes/{id}: view a single note.
func (h *Handlers) HandleNoteDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("note ID is required"))
		return
	}

	result, err := ops.GetNote(r.Context(), h.st, ops.GetNoteInput{ID: id})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, r, "detail", DetailPageData{
		PageData: PageData{
			Title:   noteTitle(result.Content),
			Version: h.renderer.version,
			Nav:     "notes",
		},
		Note:         result,
		RenderedHTML: renderMarkdown(result.Content),
	})
}

// HandleDeleteNote handles DELETE /notes/{id}: permanently delete a note.
func (h *Handlers) HandleDeleteNote(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("note ID is required"))
		return
	}

	result, err := ops.DeleteNote(r.Context(), h.st, ops.DeleteNoteInput{ID: id})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	// JSON request
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		renderJSON(w, http.StatusOK, map[string]any{
			"deleted": result.Deleted,
			"id":      result.ID,
		})
		return
	}

	// Default: redirect
	http.Redirect(w, r, "/notes", http.StatusFound)
}

// HandleThemes handles GET /themes: list themes with live note counts.
func (h *Handlers) HandleThemes(w http.ResponseWriter, r *http.Request) {
	result, err := ops.ListThemes(r.Context(), h.st)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, r, "themes", ThemesPageData{
		PageData: PageData{
			Title:   "Themes",
			Version: h.renderer.version,
			Nav:     "themes",
		},
		Items: result.Items,
		Total: result.Total,
	})
}

// HandleImportForm handles GET /import: render the backup upload form.
func (h *Handlers) HandleImportForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.renderPage(w, r, "import", ImportPageData{
		PageData: PageData{
			Title:   "Import backup",
			Version: h.renderer.version,
			Nav:     "import",
		},
	})
}

// HandleImportUpload handles POST /import: run the import pipeline on an
// uploaded backup file and render the report.
func (h *Handlers) HandleImportUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid upload form"))
		return
	}

	file, header, err := r.FormFile("backup")
	if err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("backup file is required"))
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		h.renderer.renderError(w, r, errors.NewInternal(err))
		return
	}
	if len(raw) > maxUploadBytes {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("backup file exceeds the upload limit"))
		return
	}

	result, err := ops.ImportBackup(r.Context(), h.st, h.cfg, ops.ImportBackupInput{Data: raw})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, r, "import_result", ImportResultPageData{
		PageData: PageData{
			Title:   "Import report",
			Version: h.renderer.version,
			Nav:     "import",
		},
		FileName:    header.Filename,
		Report:      result.Report,
		Integrity:   result.Integrity,
		ThemeErrors: result.ThemeErrors,
	})
}

// HandleIntegrity handles GET /integrity: run the store health check.
func (h *Handlers) HandleIntegrity(w http.ResponseWriter, r *http.Request) {
	result, err := ops.VerifyIntegrity(r.Context(), h.st)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, r, "integrity", IntegrityPageData{
		PageData: PageData{
			Title:   "Integrity",
			Version: h.renderer.version,
			Nav:     "integrity",
		},
		Result: result,
	})
}

// HandleExportDownload handles GET /export.json: download the store as a
// backup document.
func (h *Handlers) HandleExportDownload(w http.ResponseWriter, r *http.Request) {
	result, err := ops.ExportBackup(r.Context(), h.st, h.cfg, ops.ExportBackupInput{
		NoFile:     true,
		AppVersion: h.renderer.version,
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="musebox-backup.json"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Raw)
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	s := r.URL.Query().Get(name)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

// noteTitle shortens note content to a heading-sized title.
func noteTitle(content string) string {
	runes := []rune(content)
	if len(runes) > 30 {
		return string(runes[:30]) + "..."
	}
	return content
}
