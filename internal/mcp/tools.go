package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// Tool definitions. Descriptions are what MCP clients show the model, so
// they spell out side effects and defaults.

var importBackupToolDef = mcp.NewTool("import_backup",
	mcp.WithDescription("Import a musebox backup file into the store. Backup theme names are reconciled against existing themes (exact match, containment, semantic group, translation) and missing themes are created. Invalid notes are reported per index; the rest of the batch imports. Returns the import report plus an integrity check."),
	mcp.WithString("path",
		mcp.Description("Backup file to read (.json, directly inside an allowed directory)"),
		mcp.Required(),
	),
)

var restoreBackupToolDef = mcp.NewTool("restore_backup",
	mcp.WithDescription("Replace the entire store with a backup file. Deletes every existing note and theme first, then imports the backup as written with no reconciliation. The backup is validated before anything is deleted, but once deletion starts there is no undo."),
	mcp.WithString("path",
		mcp.Description("Backup file to read (.json, directly inside an allowed directory)"),
		mcp.Required(),
	),
)

var verifyIntegrityToolDef = mcp.NewTool("verify_integrity",
	mcp.WithDescription("Check store health without changing anything: recount per-theme note counters and verify every note's theme reference. Counter drift is a warning; a note pointing at a missing theme makes the store invalid."),
)

var exportBackupToolDef = mcp.NewTool("export_backup",
	mcp.WithDescription("Export the whole store to a backup file. Exporting then importing into an empty store preserves theme and note counts."),
	mcp.WithString("path",
		mcp.Description("Destination file (.json). Default: ~/.musebox/exports/musebox-<timestamp>.json"),
	),
	mcp.WithString("name",
		mcp.Description("Label folded into the default filename; ignored when path is set"),
	),
)

var addNoteToolDef = mcp.NewTool("add_note",
	mcp.WithDescription("Add a note. The theme is created on first use with derived icon and color defaults; without a theme the configured default theme is used."),
	mcp.WithString("content",
		mcp.Description("Note content (max 1000 characters)"),
		mcp.Required(),
	),
	mcp.WithString("theme",
		mcp.Description("Theme name (max 20 characters)"),
	),
)

var listNotesToolDef = mcp.NewTool("list_notes",
	mcp.WithDescription("List notes newest first, optionally filtered by theme."),
	mcp.WithString("theme",
		mcp.Description("Only notes in this theme"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Page size (default 20, max 100)"),
	),
	mcp.WithNumber("offset",
		mcp.Description("Pagination offset (default 0)"),
	),
)

var listThemesToolDef = mcp.NewTool("list_themes",
	mcp.WithDescription("List all themes in creation order with live note counts."),
)

var searchNotesToolDef = mcp.NewTool("search_notes",
	mcp.WithDescription("Substring search over note content, newest first. Each result carries a snippet of context around the first match."),
	mcp.WithString("query",
		mcp.Description("Search text (max 200 characters)"),
		mcp.Required(),
	),
	mcp.WithNumber("limit",
		mcp.Description("Page size (default 20, max 100)"),
	),
	mcp.WithNumber("offset",
		mcp.Description("Pagination offset (default 0)"),
	),
)
