package mcp

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/museboxapp/musebox/internal/config"
	"github.com/museboxapp/musebox/internal/errors"
	"github.com/museboxapp/musebox/internal/ops"
	"github.com/museboxapp/musebox/internal/store"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	st      *store.Store
	cfg     *config.Config
	version string
	logger  *slog.Logger
}

// NewHandlers creates a new Handlers instance. The logger receives the
// reconciliation trace of import and restore; nil disables the trace.
func NewHandlers(st *store.Store, cfg *config.Config, version string, logger *slog.Logger) *Handlers {
	return &Handlers{st: st, cfg: cfg, version: version, logger: logger}
}

// Request types for each tool

// ImportBackupRequest represents the arguments for import_backup.
type ImportBackupRequest struct {
	Path string `json:"path"`
}

// RestoreBackupRequest represents the arguments for restore_backup.
type RestoreBackupRequest struct {
	Path string `json:"path"`
}

// ExportBackupRequest represents the arguments for export_backup.
type ExportBackupRequest struct {
	Path string `json:"path,omitempty"`
	Name string `json:"name,omitempty"`
}

// AddNoteRequest represents the arguments for add_note.
type AddNoteRequest struct {
	Content string `json:"content"`
	Theme   string `json:"theme,omitempty"`
}

// ListNotesRequest represents the arguments for list_notes.
type ListNotesRequest struct {
	Theme  string `json:"theme,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

// SearchNotesRequest represents the arguments for search_notes.
type SearchNotesRequest struct {
	Query  string `json:"query"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

// Handler implementations

// HandleImportBackup handles the import_backup tool call.
func (h *Handlers) HandleImportBackup(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ImportBackupRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.ImportBackup(ctx, h.st, h.cfg, ops.ImportBackupInput{
		Path:   input.Path,
		Logger: h.logger,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleRestoreBackup handles the restore_backup tool call.
func (h *Handlers) HandleRestoreBackup(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[RestoreBackupRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.RestoreBackup(ctx, h.st, h.cfg, ops.RestoreBackupInput{
		Path:   input.Path,
		Logger: h.logger,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleVerifyIntegrity handles the verify_integrity tool call.
func (h *Handlers) HandleVerifyIntegrity(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.VerifyIntegrity(ctx, h.st)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleExportBackup handles the export_backup tool call.
func (h *Handlers) HandleExportBackup(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ExportBackupRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.ExportBackup(ctx, h.st, h.cfg, ops.ExportBackupInput{
		Path:       input.Path,
		Name:       input.Name,
		AppVersion: h.version,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleAddNote handles the add_note tool call.
func (h *Handlers) HandleAddNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[AddNoteRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.AddNote(ctx, h.st, h.cfg, ops.AddNoteInput{
		Content: input.Content,
		Theme:   input.Theme,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleListNotes handles the list_notes tool call.
func (h *Handlers) HandleListNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListNotesRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.ListNotes(ctx, h.st, ops.ListNotesInput{
		Theme:  input.Theme,
		Limit:  input.Limit,
		Offset: input.Offset,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleListThemes handles the list_themes tool call.
func (h *Handlers) HandleListThemes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.ListThemes(ctx, h.st)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleSearchNotes handles the search_notes tool call.
func (h *Handlers) HandleSearchNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SearchNotesRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.SearchNotes(ctx, h.st, ops.SearchNotesInput{
		Query:  input.Query,
		Limit:  input.Limit,
		Offset: input.Offset,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Note: Internal error details are not exposed to prevent leaking sensitive info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	var mbErr *errors.MuseboxError
	if stderrors.As(err, &mbErr) {
		// Wrapping adds caller context to the message; keep it.
		message := mbErr.Message
		if err.Error() != mbErr.Error() {
			message = err.Error()
		}
		errorObj := map[string]any{
			"code":    mbErr.Code,
			"message": message,
			"status":  mbErr.Status,
		}
		// Only include details for non-internal errors to avoid leaking
		// sensitive info like file paths or SQL errors
		if mbErr.Code != errors.ErrInternal && mbErr.Details != nil {
			errorObj["details"] = mbErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
