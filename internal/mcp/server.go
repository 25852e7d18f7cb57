package mcp

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/museboxapp/musebox/internal/config"
	"github.com/museboxapp/musebox/internal/store"
)

// KnownTypes lists all valid type names.
var KnownTypes = []string{"note", "backup"}

// toolEntry pairs a tool definition with its type and a handler factory.
type toolEntry struct {
	def     mcp.Tool
	typ     string
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"import_backup": {
		def:     importBackupToolDef,
		typ:     "backup",
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleImportBackup },
	},
	"restore_backup": {
		def:     restoreBackupToolDef,
		typ:     "backup",
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleRestoreBackup },
	},
	"verify_integrity": {
		def:     verifyIntegrityToolDef,
		typ:     "backup",
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleVerifyIntegrity },
	},
	"export_backup": {
		def:     exportBackupToolDef,
		typ:     "backup",
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleExportBackup },
	},
	"add_note": {
		def:     addNoteToolDef,
		typ:     "note",
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleAddNote },
	},
	"list_notes": {
		def:     listNotesToolDef,
		typ:     "note",
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleListNotes },
	},
	"list_themes": {
		def:     listThemesToolDef,
		typ:     "note",
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleListThemes },
	},
	"search_notes": {
		def:     searchNotesToolDef,
		typ:     "note",
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSearchNotes },
	},
}

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// ValidateDisabledTypes returns a list of unknown type names from the given list.
func ValidateDisabledTypes(names []string) []string {
	known := make(map[string]bool, len(KnownTypes))
	for _, t := range KnownTypes {
		known[t] = true
	}

	unknown := make([]string, 0)
	for _, name := range names {
		if !known[name] {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// GetTypeForTool returns the type a tool belongs to ("" for unknown tools).
func GetTypeForTool(toolName string) string {
	if entry, ok := toolRegistry[toolName]; ok {
		return entry.typ
	}
	return ""
}

// ExpandTypesToTools returns all tool names belonging to the given types.
func ExpandTypesToTools(types []string) []string {
	if len(types) == 0 {
		return nil
	}

	// Build set of types for O(1) lookup
	typeSet := make(map[string]bool, len(types))
	for _, t := range types {
		typeSet[t] = true
	}

	// Collect tools belonging to disabled types
	tools := make([]string, 0)
	for name, entry := range toolRegistry {
		if typeSet[entry.typ] {
			tools = append(tools, name)
		}
	}
	return tools
}

// NewServer creates a new MCP server with musebox tools registered.
// Tools listed in cfg.DisabledTools or belonging to cfg.DisabledTypes
// are excluded from registration.
func NewServer(st *store.Store, cfg *config.Config, version string, logger *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer(
		"musebox",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(st, cfg, version, logger)

	// Build set of disabled tools: first expand types, then add individual tools
	disabled := make(map[string]bool)
	for _, tool := range ExpandTypesToTools(cfg.DisabledTypes) {
		disabled[tool] = true
	}
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}

	// Register tools (skip disabled)
	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport. Unknown names in the
// disable lists are warned about and otherwise ignored.
func Run(st *store.Store, cfg *config.Config, version string, logger *slog.Logger) error {
	for _, name := range ValidateDisabledTools(cfg.DisabledTools) {
		logger.Warn("ignoring unknown tool in disabled_tools", "tool", name)
	}
	for _, name := range ValidateDisabledTypes(cfg.DisabledTypes) {
		logger.Warn("ignoring unknown type in disabled_types", "type", name)
	}
	s := NewServer(st, cfg, version, logger)
	return server.ServeStdio(s)
}

// ToolHandlerFunc is the signature for tool handlers.
type ToolHandlerFunc func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)
